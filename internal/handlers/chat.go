package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/kirdar-ai/kirdar-backend/internal/logger"
  "github.com/kirdar-ai/kirdar-backend/internal/requestdata"
  "github.com/kirdar-ai/kirdar-backend/internal/services"
)

type ChatHandler struct {
  log         *logger.Logger
  chatService services.ChatService
}

func NewChatHandler(log *logger.Logger, chatService services.ChatService) *ChatHandler {
  return &ChatHandler{
    log:         log.With("handler", "ChatHandler"),
    chatService: chatService,
  }
}

func (h *ChatHandler) Chat(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  var body struct {
    Message string                  `json:"message"`
    History []services.ChatMessage  `json:"conversationHistory"`
    Type    string                  `json:"type"`
    Context struct {
      Data services.SimulationContext `json:"data"`
    } `json:"context"`
  }
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  in := services.SimulateTurnInput{
    Message: body.Message,
    History: body.History,
    Context: body.Context.Data,
  }
  in.Context.Type = body.Type
  reply, err := h.chatService.SimulateTurn(c.Request.Context(), rd.UserID, in)
  if err != nil {
    h.log.Error("Chat turn failed", "error", err)
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, gin.H{"response": reply})
}

func (h *ChatHandler) Evaluate(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  var body struct {
    Messages []services.ChatMessage `json:"messages"`
  }
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  result, err := h.chatService.EvaluateConversation(c.Request.Context(), rd.UserID, body.Messages)
  if err != nil {
    h.log.Error("Evaluation failed", "error", err)
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, result)
}

func (h *ChatHandler) Suggestions(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  var body struct {
    Messages []services.ChatMessage `json:"messages"`
  }
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  advice, err := h.chatService.MentorSuggestions(c.Request.Context(), rd.UserID, body.Messages)
  if err != nil {
    h.log.Error("Mentor suggestions failed", "error", err)
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, advice)
}
