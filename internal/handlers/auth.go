package handlers

import (
  "errors"
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/a-beduc/dh-toolbox/internal/dberr"
  "github.com/a-beduc/dh-toolbox/internal/services"
)

type AuthHandler struct {
  authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
  return &AuthHandler{authService: authService}
}

type registerRequest struct {
  Username string `json:"username" binding:"required"`
  Email    string `json:"email" binding:"required"`
  Password string `json:"password" binding:"required"`
}

type loginRequest struct {
  Username string `json:"username" binding:"required"`
  Password string `json:"password" binding:"required"`
}

type tokenPairResponse struct {
  AccessToken  string `json:"access_token"`
  RefreshToken string `json:"refresh_token"`
}

func (ah *AuthHandler) Register(c *gin.Context) {
  var req registerRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_payload", err)
    return
  }
  account, err := ah.authService.Register(c.Request.Context(), req.Username, req.Email, req.Password)
  if err != nil {
    if errors.Is(err, services.ErrAccountExists) || dberr.IsUniqueViolation(err) {
      RespondError(c, http.StatusConflict, "conflict", errors.New("username or email already taken"))
      return
    }
    RespondError(c, http.StatusBadRequest, "registration_failed", err)
    return
  }
  RespondCreated(c, account)
}

func (ah *AuthHandler) Login(c *gin.Context) {
  var req loginRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_payload", err)
    return
  }
  access, refresh, err := ah.authService.Login(c.Request.Context(), req.Username, req.Password)
  if err != nil {
    if errors.Is(err, services.ErrInvalidCredentials) {
      RespondError(c, http.StatusUnauthorized, "invalid_credentials", err)
      return
    }
    RespondError(c, http.StatusInternalServerError, "internal", err)
    return
  }
  RespondOK(c, tokenPairResponse{AccessToken: access, RefreshToken: refresh})
}

func (ah *AuthHandler) Refresh(c *gin.Context) {
  access, refresh, err := ah.authService.Refresh(c.Request.Context())
  if err != nil {
    RespondError(c, http.StatusUnauthorized, "invalid_token", err)
    return
  }
  RespondOK(c, tokenPairResponse{AccessToken: access, RefreshToken: refresh})
}

func (ah *AuthHandler) Logout(c *gin.Context) {
  if err := ah.authService.Logout(c.Request.Context()); err != nil {
    RespondError(c, http.StatusUnauthorized, "invalid_token", err)
    return
  }
  c.Status(http.StatusNoContent)
}
