package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/kirdar-ai/kirdar-backend/internal/logger"
  "github.com/kirdar-ai/kirdar-backend/internal/repos"
  "github.com/kirdar-ai/kirdar-backend/internal/requestdata"
  "github.com/kirdar-ai/kirdar-backend/internal/services"
)

type PersonaHandler struct {
  log            *logger.Logger
  personaService services.PersonaService
}

func NewPersonaHandler(log *logger.Logger, personaService services.PersonaService) *PersonaHandler {
  return &PersonaHandler{
    log:            log.With("handler", "PersonaHandler"),
    personaService: personaService,
  }
}

func (h *PersonaHandler) List(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  filter := repos.PersonaFilter{
    Domain:   c.Query("domain"),
    Category: c.Query("category"),
  }
  personas, err := h.personaService.List(c.Request.Context(), rd.UserID, rd.IsAdmin, filter)
  if err != nil {
    h.log.Error("List personas failed", "error", err, "user_id", rd.UserID)
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, gin.H{"personas": personas})
}

type generateRequest struct {
  Domain      string `json:"domain"`
  Category    string `json:"category"`
  SubCategory string `json:"subCategory"`
  Count       int    `json:"count"`
  Description string `json:"description"`
}

func (h *PersonaHandler) Generate(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  var body generateRequest
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  if body.Count == 0 {
    body.Count = 1
  }
  result, err := h.personaService.Generate(c.Request.Context(), rd.UserID, body.Domain, services.GenerateOptions{
    Category:    body.Category,
    SubCategory: body.SubCategory,
    Count:       body.Count,
    Description: body.Description,
  })
  if err != nil {
    h.log.Error("Generate personas failed", "error", err, "domain", body.Domain)
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, result)
}

func (h *PersonaHandler) CreateBulk(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  var body struct {
    Personas []services.PersonaInput `json:"personas"`
  }
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  results, err := h.personaService.CreateBulk(c.Request.Context(), rd.UserID, body.Personas)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, gin.H{"results": results})
}

func (h *PersonaHandler) Update(c *gin.Context) {
  personaID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  var update services.PersonaUpdate
  if err := c.ShouldBindJSON(&update); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  persona, err := h.personaService.Update(c.Request.Context(), personaID, update)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, gin.H{"persona": persona})
}

func (h *PersonaHandler) Delete(c *gin.Context) {
  personaID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  if err := h.personaService.SoftDelete(c.Request.Context(), personaID); err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, gin.H{"message": "Persona deactivated"})
}

func (h *PersonaHandler) Reset(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  var body struct {
    Domain string `json:"domain"`
  }
  // body optional: empty domain resets every domain
  _ = c.ShouldBindJSON(&body)
  personas, err := h.personaService.Reset(c.Request.Context(), rd.UserID, body.Domain)
  if err != nil {
    h.log.Error("Reset personas failed", "error", err, "domain", body.Domain)
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, gin.H{"message": "Reset successful", "personas": personas})
}

func (h *PersonaHandler) Refresh(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  domainID := c.Param("domain")
  var body generateRequest
  _ = c.ShouldBindJSON(&body)
  result, err := h.personaService.Refresh(c.Request.Context(), rd.UserID, domainID, services.GenerateOptions{
    Category:    body.Category,
    SubCategory: body.SubCategory,
    Count:       body.Count,
    Description: body.Description,
  })
  if err != nil {
    h.log.Error("Refresh personas failed", "error", err, "domain", domainID)
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, result)
}
