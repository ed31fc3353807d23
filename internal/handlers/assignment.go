package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/kirdar-ai/kirdar-backend/internal/logger"
  "github.com/kirdar-ai/kirdar-backend/internal/requestdata"
  "github.com/kirdar-ai/kirdar-backend/internal/services"
)

type AssignmentHandler struct {
  log               *logger.Logger
  assignmentService services.AssignmentService
}

func NewAssignmentHandler(log *logger.Logger, assignmentService services.AssignmentService) *AssignmentHandler {
  return &AssignmentHandler{
    log:               log.With("handler", "AssignmentHandler"),
    assignmentService: assignmentService,
  }
}

type assignRequest struct {
  UserID uuid.UUID   `json:"userId"`
  IDs    []uuid.UUID `json:"ids"`
}

func (h *AssignmentHandler) AssignPersonas(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  var body assignRequest
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  assignments, err := h.assignmentService.AssignPersonas(c.Request.Context(), rd.UserID, body.UserID, body.IDs)
  if err != nil {
    h.log.Error("Assign personas failed", "error", err, "user_id", body.UserID)
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, gin.H{"assignments": assignments})
}

func (h *AssignmentHandler) AssignScenarios(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  var body assignRequest
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  assignments, err := h.assignmentService.AssignScenarios(c.Request.Context(), rd.UserID, body.UserID, body.IDs)
  if err != nil {
    h.log.Error("Assign scenarios failed", "error", err, "user_id", body.UserID)
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, gin.H{"assignments": assignments})
}

func (h *AssignmentHandler) Deactivate(c *gin.Context) {
  assignmentID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  switch c.Param("kind") {
  case "personas":
    err = h.assignmentService.DeactivatePersonaAssignment(c.Request.Context(), assignmentID)
  case "scenarios":
    err = h.assignmentService.DeactivateScenarioAssignment(c.Request.Context(), assignmentID)
  default:
    RespondError(c, http.StatusBadRequest, "invalid_kind", nil)
    return
  }
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, gin.H{"message": "Assignment deactivated"})
}
