package services

import (
  "context"
  "testing"
  "time"

  "github.com/kirdar-ai/kirdar-backend/internal/requestdata"
)

func newAuthService(t *testing.T) (AuthService, *fakeUserRepo) {
  t.Helper()
  userRepo := &fakeUserRepo{}
  svc := NewAuthService(userRepo, "test-secret", time.Hour, testLogger(t))
  return svc, userRepo
}

func TestRegisterLoginRoundtrip(t *testing.T) {
  svc, _ := newAuthService(t)

  user, token, err := svc.RegisterUser(context.Background(), RegisterInput{
    Email:     "  Trainee@Example.com ",
    Password:  "correct horse",
    FirstName: "Ada",
    LastName:  "Lovelace",
  })
  if err != nil {
    t.Fatalf("RegisterUser failed: %v", err)
  }
  if user.Email != "trainee@example.com" {
    t.Fatalf("email not normalized: %q", user.Email)
  }
  if token == "" {
    t.Fatal("register returned empty token")
  }
  if user.Password == "correct horse" {
    t.Fatal("password stored in plaintext")
  }

  loggedIn, loginToken, err := svc.LoginUser(context.Background(), "TRAINEE@example.com", "correct horse")
  if err != nil {
    t.Fatalf("LoginUser failed: %v", err)
  }
  if loggedIn.ID != user.ID {
    t.Fatal("login returned wrong user")
  }
  if loginToken == "" {
    t.Fatal("login returned empty token")
  }

  if _, _, err := svc.LoginUser(context.Background(), "trainee@example.com", "wrong password"); err == nil {
    t.Fatal("wrong password accepted")
  }
}

func TestRegisterRejectsBadInput(t *testing.T) {
  svc, repo := newAuthService(t)

  if _, _, err := svc.RegisterUser(context.Background(), RegisterInput{Email: "nope", Password: "correct horse"}); err == nil {
    t.Fatal("invalid email accepted")
  }
  if _, _, err := svc.RegisterUser(context.Background(), RegisterInput{Email: "a@b.com", Password: "short"}); err == nil {
    t.Fatal("short password accepted")
  }
  if len(repo.users) != 0 {
    t.Fatal("rejected registration persisted a user")
  }
}

func TestRegisterDuplicateEmail(t *testing.T) {
  svc, _ := newAuthService(t)

  in := RegisterInput{Email: "dup@example.com", Password: "correct horse"}
  if _, _, err := svc.RegisterUser(context.Background(), in); err != nil {
    t.Fatalf("first registration failed: %v", err)
  }
  if _, _, err := svc.RegisterUser(context.Background(), in); err == nil {
    t.Fatal("duplicate email accepted")
  }
}

func TestSetContextFromTokenCarriesAdminFlag(t *testing.T) {
  svc, _ := newAuthService(t)

  user, token, err := svc.RegisterUser(context.Background(), RegisterInput{
    Email: "trainee@example.com", Password: "correct horse",
  })
  if err != nil {
    t.Fatalf("RegisterUser failed: %v", err)
  }

  ctx, err := svc.SetContextFromToken(context.Background(), token)
  if err != nil {
    t.Fatalf("SetContextFromToken failed: %v", err)
  }
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    t.Fatal("request data missing from context")
  }
  if rd.IsAdmin {
    t.Fatal("trainee token carried admin flag")
  }
  if rd.UserID != user.ID || rd.TokenString != token {
    t.Fatal("user id or token string not carried through")
  }

  // Promote the user and mint a fresh token via login.
  user.IsAdmin = true
  _, adminToken, err := svc.LoginUser(context.Background(), user.Email, "correct horse")
  if err != nil {
    t.Fatalf("LoginUser failed: %v", err)
  }
  adminCtx, err := svc.SetContextFromToken(context.Background(), adminToken)
  if err != nil {
    t.Fatalf("SetContextFromToken failed: %v", err)
  }
  if adminRD := requestdata.GetRequestData(adminCtx); adminRD == nil || !adminRD.IsAdmin {
    t.Fatal("admin token lost admin flag")
  }
}

func TestSetContextFromTokenRejectsGarbage(t *testing.T) {
  svc, _ := newAuthService(t)
  if _, err := svc.SetContextFromToken(context.Background(), "not.a.jwt"); err == nil {
    t.Fatal("garbage token accepted")
  }
}
