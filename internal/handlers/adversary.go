package handlers

import (
  "errors"
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/a-beduc/dh-toolbox/internal/dberr"
  "github.com/a-beduc/dh-toolbox/internal/normalize"
  "github.com/a-beduc/dh-toolbox/internal/requestdata"
  "github.com/a-beduc/dh-toolbox/internal/services"
)

type AdversaryHandler struct {
  adversaryService services.AdversaryService
}

func NewAdversaryHandler(adversaryService services.AdversaryService) *AdversaryHandler {
  return &AdversaryHandler{adversaryService: adversaryService}
}

func (ah *AdversaryHandler) List(c *gin.Context) {
  advs, err := ah.adversaryService.List(c.Request.Context())
  if err != nil {
    respondServiceError(c, err)
    return
  }
  items := make([]*AdversaryListItemView, 0, len(advs))
  for _, adv := range advs {
    items = append(items, toAdversaryListItemView(adv))
  }
  RespondOK(c, items)
}

func (ah *AdversaryHandler) Get(c *gin.Context) {
  id, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  adv, err := ah.adversaryService.Get(c.Request.Context(), id)
  if err != nil {
    respondServiceError(c, err)
    return
  }
  RespondOK(c, toAdversaryDetailView(adv))
}

func (ah *AdversaryHandler) Create(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.AccountID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("no authenticated account"))
    return
  }
  var wire adversaryWire
  if err := c.ShouldBindJSON(&wire); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_payload", err)
    return
  }
  in, err := wire.toInput()
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_choice", err)
    return
  }
  adv, err := ah.adversaryService.Create(c.Request.Context(), rd.AccountID, in)
  if err != nil {
    respondServiceError(c, err)
    return
  }
  RespondCreated(c, toAdversaryDetailView(adv))
}

func (ah *AdversaryHandler) Put(c *gin.Context) {
  id, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  var wire adversaryWire
  if err := c.ShouldBindJSON(&wire); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_payload", err)
    return
  }
  in, err := wire.toInput()
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_choice", err)
    return
  }
  adv, err := ah.adversaryService.Put(c.Request.Context(), id, in)
  if err != nil {
    respondServiceError(c, err)
    return
  }
  RespondOK(c, toAdversaryDetailView(adv))
}

func (ah *AdversaryHandler) Patch(c *gin.Context) {
  id, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  var wire adversaryWire
  if err := c.ShouldBindJSON(&wire); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_payload", err)
    return
  }
  patch, err := wire.toPatch()
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_choice", err)
    return
  }
  adv, err := ah.adversaryService.Patch(c.Request.Context(), id, patch)
  if err != nil {
    respondServiceError(c, err)
    return
  }
  RespondOK(c, toAdversaryDetailView(adv))
}

func (ah *AdversaryHandler) Delete(c *gin.Context) {
  id, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  if err := ah.adversaryService.Delete(c.Request.Context(), id); err != nil {
    respondServiceError(c, err)
    return
  }
  c.Status(http.StatusNoContent)
}

func respondServiceError(c *gin.Context, err error) {
  var choiceErr *normalize.InvalidChoiceError
  switch {
  case errors.Is(err, gorm.ErrRecordNotFound):
    RespondError(c, http.StatusNotFound, "not_found", err)
  case errors.Is(err, services.ErrNameRequired),
    errors.Is(err, services.ErrMissingAuthor),
    errors.Is(err, services.ErrInvalidDamage),
    errors.As(err, &choiceErr):
    RespondError(c, http.StatusBadRequest, "invalid_payload", err)
  case dberr.IsUniqueViolation(err):
    RespondError(c, http.StatusConflict, "conflict", err)
  case dberr.IsCheckViolation(err):
    RespondError(c, http.StatusBadRequest, "constraint_violation", err)
  default:
    RespondError(c, http.StatusInternalServerError, "internal", err)
  }
}
