package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/kirdar-ai/kirdar-backend/internal/logger"
  "github.com/kirdar-ai/kirdar-backend/internal/services"
)

type AuthHandler struct {
  log         *logger.Logger
  authService services.AuthService
}

func NewAuthHandler(log *logger.Logger, authService services.AuthService) *AuthHandler {
  return &AuthHandler{
    log:         log.With("handler", "AuthHandler"),
    authService: authService,
  }
}

func (h *AuthHandler) Register(c *gin.Context) {
  var in services.RegisterInput
  if err := c.ShouldBindJSON(&in); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  user, token, err := h.authService.RegisterUser(c.Request.Context(), in)
  if err != nil {
    h.log.Warn("Register failed", "error", err)
    RespondError(c, http.StatusBadRequest, "register_failed", err)
    return
  }
  RespondOK(c, gin.H{"user": user, "token": token})
}

func (h *AuthHandler) Login(c *gin.Context) {
  var body struct {
    Email    string `json:"email"`
    Password string `json:"password"`
  }
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  user, token, err := h.authService.LoginUser(c.Request.Context(), body.Email, body.Password)
  if err != nil {
    RespondError(c, http.StatusUnauthorized, "login_failed", err)
    return
  }
  RespondOK(c, gin.H{"user": user, "token": token})
}
