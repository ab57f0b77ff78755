// Package dberr classifies driver-level constraint failures so
// handlers can tell a uniqueness conflict (409) from a shape
// violation (400) without parsing error strings in every caller.
package dberr

import (
  "errors"
  "strings"

  "github.com/jackc/pgx/v5/pgconn"
  "gorm.io/gorm"
)

const (
  pgUniqueViolation = "23505"
  pgCheckViolation  = "23514"
)

// IsUniqueViolation reports whether err is a unique-constraint
// failure, from postgres (pgconn), the gorm translator, or the
// sqlite driver used in tests.
func IsUniqueViolation(err error) bool {
  if err == nil {
    return false
  }
  if errors.Is(err, gorm.ErrDuplicatedKey) {
    return true
  }
  var pgErr *pgconn.PgError
  if errors.As(err, &pgErr) {
    return pgErr.Code == pgUniqueViolation
  }
  msg := err.Error()
  return strings.Contains(msg, "UNIQUE constraint failed")
}

// IsCheckViolation reports whether err is a check-constraint failure
// (e.g. the damage-profile shape constraint).
func IsCheckViolation(err error) bool {
  if err == nil {
    return false
  }
  var pgErr *pgconn.PgError
  if errors.As(err, &pgErr) {
    return pgErr.Code == pgCheckViolation
  }
  msg := err.Error()
  return strings.Contains(msg, "CHECK constraint failed")
}

// IsConstraint reports any constraint-class failure.
func IsConstraint(err error) bool {
  return IsUniqueViolation(err) || IsCheckViolation(err)
}
