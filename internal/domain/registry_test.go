package domain

import (
  "testing"

  "github.com/kirdar-ai/kirdar-backend/internal/apierr"
)

func TestGetKnownDomains(t *testing.T) {
  for _, id := range []string{"financial", "sales", "medical", "legal", "counseling", "education"} {
    d, err := Get(id)
    if err != nil {
      t.Fatalf("Get(%q) returned error: %v", id, err)
    }
    if d.ID != id {
      t.Fatalf("Get(%q) returned domain %q", id, d.ID)
    }
    if len(d.Categories) == 0 {
      t.Fatalf("domain %q has no categories", id)
    }
    if len(d.FieldSchema) != 3 {
      t.Fatalf("domain %q has %d schema fields, want 3", id, len(d.FieldSchema))
    }
  }
}

func TestGetUnknownDomain(t *testing.T) {
  _, err := Get("astrology")
  if err == nil {
    t.Fatal("expected error for unknown domain")
  }
  if got := apierr.KindOf(err); got != apierr.KindUnknownDomain {
    t.Fatalf("error kind = %q, want %q", got, apierr.KindUnknownDomain)
  }
}

func TestListStableOrder(t *testing.T) {
  first := List()
  second := List()
  if len(first) != 6 {
    t.Fatalf("List returned %d domains, want 6", len(first))
  }
  for i := range first {
    if first[i].ID != second[i].ID {
      t.Fatalf("List order changed between calls: %q vs %q at %d", first[i].ID, second[i].ID, i)
    }
    if i > 0 && first[i-1].ID >= first[i].ID {
      t.Fatalf("List not sorted: %q before %q", first[i-1].ID, first[i].ID)
    }
  }
}

func TestValidCategory(t *testing.T) {
  sales, _ := Get("sales")
  if !sales.ValidCategory("") {
    t.Fatal("empty category should always be valid")
  }
  if !sales.ValidCategory("Automotive Sales") {
    t.Fatal("registered category rejected")
  }
  if sales.ValidCategory("Criminal Defense") {
    t.Fatal("category from another domain accepted")
  }
}

func TestValidSubCategory(t *testing.T) {
  sales, _ := Get("sales")
  if !sales.ValidSubCategory("Automotive Sales", "Electric Vehicles") {
    t.Fatal("registered subcategory rejected")
  }
  if sales.ValidSubCategory("Automotive Sales", "Life Insurance") {
    t.Fatal("subcategory from another category accepted")
  }
  if sales.ValidSubCategory("Retail Sales", "Electric Vehicles") {
    t.Fatal("subcategory accepted under category without a subcategory list")
  }
  if !sales.ValidSubCategory("Retail Sales", "") {
    t.Fatal("empty subcategory should always be valid")
  }

  legal, _ := Get("legal")
  if legal.ValidSubCategory("Family Law", "Residential") {
    t.Fatal("subcategory accepted in a domain without subcategories")
  }
}

func TestSeedsMatchRegistry(t *testing.T) {
  for _, s := range SeedScenarios("") {
    cfg, err := Get(s.Domain)
    if err != nil {
      t.Fatalf("seed scenario %q has unknown domain %q", s.Title, s.Domain)
    }
    if !cfg.ValidCategory(s.Category) {
      t.Fatalf("seed scenario %q has unregistered category %q", s.Title, s.Category)
    }
    if !cfg.ValidSubCategory(s.Category, s.SubCategory) {
      t.Fatalf("seed scenario %q has unregistered subcategory %q", s.Title, s.SubCategory)
    }
    if len(s.Objectives) == 0 {
      t.Fatalf("seed scenario %q has no objectives", s.Title)
    }
  }
  for _, p := range SeedPersonas("") {
    cfg, err := Get(p.Domain)
    if err != nil {
      t.Fatalf("seed persona %q has unknown domain %q", p.Name, p.Domain)
    }
    if !cfg.ValidCategory(p.Category) {
      t.Fatalf("seed persona %q has unregistered category %q", p.Name, p.Category)
    }
    if p.Age < 18 || p.Age > 80 {
      t.Fatalf("seed persona %q has age %d outside [18,80]", p.Name, p.Age)
    }
    allowed := make(map[string]bool)
    for _, f := range cfg.FieldSchema {
      allowed[f.Key] = true
    }
    for key := range p.DomainFields {
      if !allowed[key] {
        t.Fatalf("seed persona %q has unknown domain field %q", p.Name, key)
      }
    }
  }
}

func TestSeedsScopedByDomain(t *testing.T) {
  financial := SeedScenarios("financial")
  if len(financial) == 0 {
    t.Fatal("no financial seed scenarios")
  }
  for _, s := range financial {
    if s.Domain != "financial" {
      t.Fatalf("SeedScenarios(financial) leaked domain %q", s.Domain)
    }
  }
  if len(SeedScenarios("")) <= len(financial) {
    t.Fatal("global seed set should be larger than one domain's")
  }
}
