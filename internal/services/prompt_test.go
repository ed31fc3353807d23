package services

import (
  "strings"
  "testing"

  "github.com/kirdar-ai/kirdar-backend/internal/apierr"
  "github.com/kirdar-ai/kirdar-backend/internal/domain"
)

func TestComposePersonaPromptsCountBounds(t *testing.T) {
  cfg, _ := domain.Get("financial")

  for _, count := range []int{0, -1, 21, 100} {
    _, _, err := ComposePersonaPrompts(cfg, GenerateOptions{Count: count})
    if err == nil {
      t.Fatalf("count %d accepted", count)
    }
    if got := apierr.KindOf(err); got != apierr.KindLimitExceeded {
      t.Fatalf("count %d: error kind = %q, want %q", count, got, apierr.KindLimitExceeded)
    }
  }

  for _, count := range []int{1, 20} {
    if _, _, err := ComposePersonaPrompts(cfg, GenerateOptions{Count: count}); err != nil {
      t.Fatalf("count %d rejected: %v", count, err)
    }
  }
}

func TestComposePersonaPromptsEnumLiterals(t *testing.T) {
  cfg, _ := domain.Get("medical")
  system, user, err := ComposePersonaPrompts(cfg, GenerateOptions{Count: 3})
  if err != nil {
    t.Fatalf("compose failed: %v", err)
  }

  for _, literal := range []string{"Basic", "Intermediate", "Advanced"} {
    if !strings.Contains(system, literal) && !strings.Contains(user, literal) {
      t.Fatalf("knowledge level %q not spelled out in prompts", literal)
    }
  }
  if !strings.Contains(system, "18") || !strings.Contains(system, "80") {
    t.Fatal("age bounds not spelled out in system prompt")
  }
  for _, f := range cfg.FieldSchema {
    if !strings.Contains(user, f.Key) {
      t.Fatalf("schema field %q missing from user prompt", f.Key)
    }
  }
  if !strings.Contains(user, `"personas"`) {
    t.Fatal("user prompt does not pin the top-level personas key")
  }
}

func TestComposePersonaPromptsUnknownCategory(t *testing.T) {
  cfg, _ := domain.Get("financial")
  _, _, err := ComposePersonaPrompts(cfg, GenerateOptions{Count: 2, Category: "Couples Counseling"})
  if err == nil {
    t.Fatal("foreign category accepted")
  }
  if got := apierr.KindOf(err); got != apierr.KindUnknownDomain {
    t.Fatalf("error kind = %q, want %q", got, apierr.KindUnknownDomain)
  }
}

func TestComposeScenarioPromptsEnumLiterals(t *testing.T) {
  cfg, _ := domain.Get("sales")
  system, user, err := ComposeScenarioPrompts(cfg, GenerateOptions{
    Count:       5,
    Category:    "Automotive Sales",
    SubCategory: "Electric Vehicles",
  })
  if err != nil {
    t.Fatalf("compose failed: %v", err)
  }
  if !strings.Contains(system, "sales") {
    t.Fatal("system prompt missing domain")
  }
  for _, literal := range []string{"Intermediate", "Advanced", "Expert"} {
    if !strings.Contains(user, literal) {
      t.Fatalf("difficulty %q not spelled out in user prompt", literal)
    }
  }
  if !strings.Contains(user, "Automotive Sales") {
    t.Fatal("category missing from user prompt")
  }
  if !strings.Contains(user, "Electric Vehicles sector") {
    t.Fatal("subcategory sector phrase missing from user prompt")
  }
  if !strings.Contains(user, `"scenarios"`) {
    t.Fatal("user prompt does not pin the top-level scenarios key")
  }
}

func TestComposeScenarioPromptsInvalidSubCategory(t *testing.T) {
  cfg, _ := domain.Get("sales")
  _, _, err := ComposeScenarioPrompts(cfg, GenerateOptions{
    Count:       5,
    Category:    "Retail Sales",
    SubCategory: "Electric Vehicles",
  })
  if err == nil {
    t.Fatal("subcategory accepted under category without a subcategory list")
  }
}
