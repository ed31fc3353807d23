package services

import (
  "context"
  "time"

  "github.com/google/uuid"

  "github.com/kirdar-ai/kirdar-backend/internal/logger"
  "github.com/kirdar-ai/kirdar-backend/internal/repos"
  "github.com/kirdar-ai/kirdar-backend/internal/types"
)

// auditAICall records one model call for the audit trail. Best-effort: a
// failed insert is logged and swallowed so auditing never fails the caller.
func auditAICall(ctx context.Context, repo repos.AICallLogRepo, log *logger.Logger, userID uuid.UUID, profile ModelProfile, domainID string, started time.Time, callErr error) {
  entry := &types.AICallLog{
    Purpose:   profile.Purpose,
    Model:     profile.Model,
    Domain:    domainID,
    Success:   callErr == nil,
    LatencyMS: time.Since(started).Milliseconds(),
  }
  if userID != uuid.Nil {
    entry.UserID = &userID
  }
  if callErr != nil {
    entry.Error = callErr.Error()
  }
  if _, err := repo.Create(ctx, nil, entry); err != nil {
    log.Warn("Failed to persist AI call log", "purpose", profile.Purpose, "error", err)
  }
}
