package handlers

import (
  "encoding/json"
  "testing"

  "github.com/a-beduc/dh-toolbox/internal/types"
)

func TestWireDecodeDistinguishesAbsentAndNull(t *testing.T) {
  var wire adversaryWire
  payload := `{"name": "acid burrower", "description": null, "tier": 2}`
  if err := json.Unmarshal([]byte(payload), &wire); err != nil {
    t.Fatalf("unmarshal: %v", err)
  }
  if wire.Source.IsNull() || !wire.Source.IsUnset() {
    t.Fatalf("absent source should stay unset")
  }
  if !wire.Description.IsNull() {
    t.Fatalf("explicit null description should decode as null")
  }
  patch, err := wire.toPatch()
  if err != nil {
    t.Fatalf("toPatch: %v", err)
  }
  if name, ok := patch.Name.Get(); !ok || name != "acid burrower" {
    t.Fatalf("unexpected name: %q ok=%v", name, ok)
  }
  if tier, ok := patch.Tier.Get(); !ok || tier != types.TierTwo {
    t.Fatalf("numeric tier should normalize, got %d ok=%v", tier, ok)
  }
  if !patch.Description.IsNull() {
    t.Fatalf("null should survive into the patch document")
  }
  if !patch.Tactics.IsUnset() {
    t.Fatalf("untouched collections must stay unset")
  }
}

func TestWireDecodeNormalizesNestedEnums(t *testing.T) {
  var wire adversaryWire
  payload := `{
    "basic_attack": {
      "name": "claws",
      "range": "very close",
      "damage": {"dice_number": 1, "dice_type": 12, "damage_type": "magical"}
    },
    "features": [{"name": "relentless", "type": "passive", "description": "acts twice"}]
  }`
  if err := json.Unmarshal([]byte(payload), &wire); err != nil {
    t.Fatalf("unmarshal: %v", err)
  }
  in, err := wire.toInput()
  if err != nil {
    t.Fatalf("toInput: %v", err)
  }
  if in.BasicAttack == nil || in.BasicAttack.Range != types.AttackRangeVeryClose {
    t.Fatalf("unexpected attack: %+v", in.BasicAttack)
  }
  if in.BasicAttack.Damage == nil || in.BasicAttack.Damage.DamageType != types.DamageTypeMagical {
    t.Fatalf("unexpected damage: %+v", in.BasicAttack.Damage)
  }
  if len(in.Features) != 1 || in.Features[0].Type != types.FeatureTypePassive {
    t.Fatalf("unexpected features: %+v", in.Features)
  }
}

func TestWireDecodeRejectsUnknownChoice(t *testing.T) {
  var wire adversaryWire
  if err := json.Unmarshal([]byte(`{"type": "dragon"}`), &wire); err != nil {
    t.Fatalf("unmarshal: %v", err)
  }
  if _, err := wire.toPatch(); err == nil {
    t.Fatalf("expected an invalid choice error")
  }
  if _, err := wire.toInput(); err == nil {
    t.Fatalf("expected an invalid choice error")
  }
}

func TestWireNullBasicAttackPatchesToNull(t *testing.T) {
  var wire adversaryWire
  if err := json.Unmarshal([]byte(`{"basic_attack": null}`), &wire); err != nil {
    t.Fatalf("unmarshal: %v", err)
  }
  patch, err := wire.toPatch()
  if err != nil {
    t.Fatalf("toPatch: %v", err)
  }
  if !patch.BasicAttack.IsNull() {
    t.Fatalf("null attack should stay null in the patch")
  }
}

func TestWireOmittedStatusStaysEmptyForCreate(t *testing.T) {
  var wire adversaryWire
  if err := json.Unmarshal([]byte(`{"name": "acid burrower"}`), &wire); err != nil {
    t.Fatalf("unmarshal: %v", err)
  }
  in, err := wire.toInput()
  if err != nil {
    t.Fatalf("toInput: %v", err)
  }
  if in.Status != "" {
    t.Fatalf("omitted status must stay empty for the draft default, got %q", in.Status)
  }

  wire = adversaryWire{}
  if err := json.Unmarshal([]byte(`{"name": "acid burrower", "status": null}`), &wire); err != nil {
    t.Fatalf("unmarshal: %v", err)
  }
  if in, err = wire.toInput(); err != nil {
    t.Fatalf("toInput: %v", err)
  }
  if in.Status != "" {
    t.Fatalf("null status must stay empty for the draft default, got %q", in.Status)
  }

  wire = adversaryWire{}
  if err := json.Unmarshal([]byte(`{"name": "acid burrower", "status": "published"}`), &wire); err != nil {
    t.Fatalf("unmarshal: %v", err)
  }
  if in, err = wire.toInput(); err != nil {
    t.Fatalf("toInput: %v", err)
  }
  if in.Status != types.AdversaryStatusPublished {
    t.Fatalf("explicit status should normalize, got %q", in.Status)
  }
}
