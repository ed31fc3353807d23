package app

import (
  "time"

  "github.com/kirdar-ai/kirdar-backend/internal/logger"
  "github.com/kirdar-ai/kirdar-backend/internal/utils"
)

type Config struct {
  JWTSecretKey   string
  AccessTokenTTL time.Duration
}

func LoadConfig(log *logger.Logger) Config {
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
  return Config{
    JWTSecretKey:   jwtSecretKey,
    AccessTokenTTL: time.Duration(accessTokenTTLSeconds) * time.Second,
  }
}
