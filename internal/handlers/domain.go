package handlers

import (
  "github.com/gin-gonic/gin"
  "github.com/kirdar-ai/kirdar-backend/internal/domain"
)

// ListDomains exposes the static domain registry so clients can render
// domain and category pickers without hardcoding the taxonomy.
func ListDomains(c *gin.Context) {
  RespondOK(c, gin.H{"domains": domain.List()})
}
