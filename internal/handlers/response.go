package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/kirdar-ai/kirdar-backend/internal/apierr"
)

type APIError struct {
  Message string `json:"message"`
  Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
  Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
  msg := "unknown error"
  if err != nil {
    msg = err.Error()
  }
  c.JSON(status, ErrorEnvelope{
    Error: APIError{
      Message: msg,
      Code:    code,
    },
  })
}

// RespondAPIError maps a tagged error to its HTTP status and code. Untagged
// errors fall back to 500 internal_error.
func RespondAPIError(c *gin.Context, err error) {
  code := apierr.KindOf(err)
  if code == "" {
    code = "internal_error"
  }
  RespondError(c, apierr.StatusOf(err), code, err)
}

func RespondOK(c *gin.Context, payload any) {
  c.JSON(http.StatusOK, payload)
}
