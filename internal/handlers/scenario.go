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

type ScenarioHandler struct {
  log             *logger.Logger
  scenarioService services.ScenarioService
}

func NewScenarioHandler(log *logger.Logger, scenarioService services.ScenarioService) *ScenarioHandler {
  return &ScenarioHandler{
    log:             log.With("handler", "ScenarioHandler"),
    scenarioService: scenarioService,
  }
}

func (h *ScenarioHandler) List(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  filter := repos.ScenarioFilter{
    Domain:      c.Query("domain"),
    Category:    c.Query("category"),
    SubCategory: c.Query("subCategory"),
    Difficulty:  c.Query("difficulty"),
  }
  scenarios, err := h.scenarioService.List(c.Request.Context(), rd.UserID, rd.IsAdmin, filter)
  if err != nil {
    h.log.Error("List scenarios failed", "error", err, "user_id", rd.UserID)
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, gin.H{"scenarios": scenarios})
}

func (h *ScenarioHandler) Create(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  var input services.ScenarioInput
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  scenario, err := h.scenarioService.Create(c.Request.Context(), rd.UserID, input)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, gin.H{"scenario": scenario})
}

func (h *ScenarioHandler) CreateBulk(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  var body struct {
    Scenarios []services.ScenarioInput `json:"scenarios"`
  }
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  results, err := h.scenarioService.CreateBulk(c.Request.Context(), rd.UserID, body.Scenarios)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, gin.H{"results": results})
}

func (h *ScenarioHandler) Generate(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  var body generateRequest
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  if body.Count == 0 {
    body.Count = 5
  }
  result, err := h.scenarioService.Generate(c.Request.Context(), rd.UserID, body.Domain, services.GenerateOptions{
    Category:    body.Category,
    SubCategory: body.SubCategory,
    Count:       body.Count,
    Description: body.Description,
  })
  if err != nil {
    h.log.Error("Generate scenarios failed", "error", err, "domain", body.Domain)
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, result)
}

func (h *ScenarioHandler) Update(c *gin.Context) {
  scenarioID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  var update services.ScenarioUpdate
  if err := c.ShouldBindJSON(&update); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  scenario, err := h.scenarioService.Update(c.Request.Context(), scenarioID, update)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, gin.H{"scenario": scenario})
}

func (h *ScenarioHandler) Delete(c *gin.Context) {
  scenarioID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  if err := h.scenarioService.SoftDelete(c.Request.Context(), scenarioID); err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, gin.H{"message": "Scenario deactivated"})
}

func (h *ScenarioHandler) Reset(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  var body struct {
    Domain string `json:"domain"`
  }
  _ = c.ShouldBindJSON(&body)
  scenarios, err := h.scenarioService.Reset(c.Request.Context(), rd.UserID, body.Domain)
  if err != nil {
    h.log.Error("Reset scenarios failed", "error", err, "domain", body.Domain)
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, gin.H{"message": "Reset successful", "scenarios": scenarios})
}

func (h *ScenarioHandler) Refresh(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  domainID := c.Param("domain")
  var body generateRequest
  _ = c.ShouldBindJSON(&body)
  result, err := h.scenarioService.Refresh(c.Request.Context(), rd.UserID, domainID, services.GenerateOptions{
    Category:    body.Category,
    SubCategory: body.SubCategory,
    Count:       body.Count,
    Description: body.Description,
  })
  if err != nil {
    h.log.Error("Refresh scenarios failed", "error", err, "domain", domainID)
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, result)
}
