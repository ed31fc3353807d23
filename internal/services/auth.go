package services

import (
  "context"
  "fmt"
  "strings"
  "time"

  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"
  "golang.org/x/crypto/bcrypt"

  "github.com/kirdar-ai/kirdar-backend/internal/logger"
  "github.com/kirdar-ai/kirdar-backend/internal/repos"
  "github.com/kirdar-ai/kirdar-backend/internal/requestdata"
  "github.com/kirdar-ai/kirdar-backend/internal/types"
)

type JWTClaims struct {
  jwt.RegisteredClaims
  IsAdmin bool `json:"is_admin"`
}

type RegisterInput struct {
  Email     string `json:"email"`
  Password  string `json:"password"`
  FirstName string `json:"first_name"`
  LastName  string `json:"last_name"`
}

type AuthService interface {
  RegisterUser(ctx context.Context, in RegisterInput) (*types.User, string, error)
  LoginUser(ctx context.Context, email, password string) (*types.User, string, error)
  SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
  log          *logger.Logger
  userRepo     repos.UserRepo
  jwtSecretKey string
  accessTTL    time.Duration
}

func NewAuthService(userRepo repos.UserRepo, jwtSecretKey string, accessTTL time.Duration, baseLog *logger.Logger) AuthService {
  serviceLog := baseLog.With("service", "AuthService")
  return &authService{
    log:          serviceLog,
    userRepo:     userRepo,
    jwtSecretKey: jwtSecretKey,
    accessTTL:    accessTTL,
  }
}

func (as *authService) RegisterUser(ctx context.Context, in RegisterInput) (*types.User, string, error) {
  email := strings.ToLower(strings.TrimSpace(in.Email))
  if email == "" || !strings.Contains(email, "@") {
    return nil, "", fmt.Errorf("Invalid email")
  }
  if len(in.Password) < 8 {
    return nil, "", fmt.Errorf("Password must be at least 8 characters")
  }
  if existing, err := as.userRepo.GetByEmail(ctx, nil, email); err == nil && existing != nil {
    return nil, "", fmt.Errorf("Email already registered")
  }

  hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
  if err != nil {
    return nil, "", fmt.Errorf("Failed to hash password: %w", err)
  }

  user := &types.User{
    ID:        uuid.New(),
    Email:     email,
    Password:  string(hashed),
    FirstName: strings.TrimSpace(in.FirstName),
    LastName:  strings.TrimSpace(in.LastName),
  }
  if _, err := as.userRepo.Create(ctx, nil, user); err != nil {
    return nil, "", fmt.Errorf("Failed to create user: %w", err)
  }

  token, err := as.generateAccessToken(user)
  if err != nil {
    return nil, "", err
  }
  as.log.Info("Registered user", "user_id", user.ID)
  return user, token, nil
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (*types.User, string, error) {
  email = strings.ToLower(strings.TrimSpace(email))

  user, err := as.userRepo.GetByEmail(ctx, nil, email)
  if err != nil {
    return nil, "", fmt.Errorf("Invalid email or password")
  }
  if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
    return nil, "", fmt.Errorf("Invalid email or password")
  }

  token, err := as.generateAccessToken(user)
  if err != nil {
    return nil, "", err
  }
  return user, token, nil
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
  claims := JWTClaims{
    RegisteredClaims: jwt.RegisteredClaims{
      Subject:   user.ID.String(),
      ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
      IssuedAt:  jwt.NewNumericDate(time.Now()),
    },
    IsAdmin: user.IsAdmin,
  }
  token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
  return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
  if tokenString == "" {
    return ctx, nil
  }
  parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
    return []byte(as.jwtSecretKey), nil
  })
  if err != nil {
    return ctx, fmt.Errorf("Failed to parse token: %w", err)
  }
  claims, ok := parsedToken.Claims.(*JWTClaims)
  if !ok || !parsedToken.Valid {
    return ctx, fmt.Errorf("Invalid or expired JWT token")
  }
  userID, err := uuid.Parse(claims.Subject)
  if err != nil {
    return ctx, fmt.Errorf("Invalid user id in token: %w", err)
  }
  rd := &requestdata.RequestData{
    TokenString: tokenString,
    UserID:      userID,
    IsAdmin:     claims.IsAdmin,
  }
  return requestdata.WithRequestData(ctx, rd), nil
}
