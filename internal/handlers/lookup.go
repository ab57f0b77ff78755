package handlers

import (
  "github.com/gin-gonic/gin"

  "github.com/a-beduc/dh-toolbox/internal/services"
)

type LookupHandler struct {
  lookupService services.LookupService
}

func NewLookupHandler(lookupService services.LookupService) *LookupHandler {
  return &LookupHandler{lookupService: lookupService}
}

func (lh *LookupHandler) Experiences(c *gin.Context) {
  names, err := lh.lookupService.ExperienceNames(c.Request.Context())
  if err != nil {
    respondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"experiences": names})
}

func (lh *LookupHandler) Choices(c *gin.Context) {
  RespondOK(c, lh.lookupService.Choices())
}
