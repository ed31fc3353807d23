package services

import (
  "encoding/json"
  "errors"
  "fmt"
  "strings"

  "gorm.io/datatypes"

  "github.com/kirdar-ai/kirdar-backend/internal/apierr"
  "github.com/kirdar-ai/kirdar-backend/internal/domain"
  "github.com/kirdar-ai/kirdar-backend/internal/types"
)

// stripCodeFence removes a markdown code fence the model sometimes wraps
// around its JSON, with or without a language tag.
func stripCodeFence(raw string) string {
  s := strings.TrimSpace(raw)
  if !strings.HasPrefix(s, "```") {
    return s
  }
  s = strings.TrimPrefix(s, "```")
  if idx := strings.Index(s, "\n"); idx >= 0 {
    // drop the language tag line (```json etc)
    first := strings.TrimSpace(s[:idx])
    if first == "" || !strings.ContainsAny(first, "{[") {
      s = s[idx+1:]
    }
  }
  s = strings.TrimSuffix(strings.TrimSpace(s), "```")
  return strings.TrimSpace(s)
}

type rawPersona struct {
  Name           string            `json:"name"`
  Age            int               `json:"age"`
  KnowledgeLevel string            `json:"knowledgeLevel"`
  Goals          string            `json:"goals"`
  Concerns       string            `json:"concerns"`
  DomainFields   map[string]string `json:"domainFields"`
}

func validKnowledgeLevel(level string) bool {
  switch level {
  case types.KnowledgeBasic, types.KnowledgeIntermediate, types.KnowledgeAdvanced:
    return true
  }
  return false
}

func validDifficulty(level string) bool {
  switch level {
  case types.DifficultyIntermediate, types.DifficultyAdvanced, types.DifficultyExpert:
    return true
  }
  return false
}

func checkPersona(p rawPersona, cfg domain.Domain) error {
  if strings.TrimSpace(p.Name) == "" {
    return errors.New("missing name")
  }
  if p.Age < types.PersonaAgeMin || p.Age > types.PersonaAgeMax {
    return fmt.Errorf("age %d outside [%d,%d]", p.Age, types.PersonaAgeMin, types.PersonaAgeMax)
  }
  if !validKnowledgeLevel(p.KnowledgeLevel) {
    return fmt.Errorf("invalid knowledgeLevel %q", p.KnowledgeLevel)
  }
  if strings.TrimSpace(p.Goals) == "" {
    return errors.New("missing goals")
  }
  if strings.TrimSpace(p.Concerns) == "" {
    return errors.New("missing concerns")
  }
  allowed := make(map[string]bool, len(cfg.FieldSchema))
  for _, f := range cfg.FieldSchema {
    allowed[f.Key] = true
  }
  for key := range p.DomainFields {
    if !allowed[key] {
      return fmt.Errorf("unknown domain field %q", key)
    }
  }
  return nil
}

// ParsePersonaBatch validates one model response against the domain's rules.
// Elements fail individually; a bad persona costs only itself, not the batch.
// The returned rejected slice carries one reason per dropped element.
func ParsePersonaBatch(raw string, cfg domain.Domain) ([]*types.Persona, []string, error) {
  cleaned := stripCodeFence(raw)

  var envelope struct {
    Personas []json.RawMessage `json:"personas"`
  }
  if err := json.Unmarshal([]byte(cleaned), &envelope); err != nil {
    return nil, nil, apierr.MalformedResponse(fmt.Errorf("persona batch is not valid JSON: %w", err))
  }
  if envelope.Personas == nil {
    return nil, nil, apierr.MalformedResponse(errors.New(`persona batch missing "personas" array`))
  }

  var valid []*types.Persona
  var rejected []string
  for i, element := range envelope.Personas {
    var p rawPersona
    if err := json.Unmarshal(element, &p); err != nil {
      rejected = append(rejected, fmt.Sprintf("element %d: not an object: %v", i, err))
      continue
    }
    if err := checkPersona(p, cfg); err != nil {
      rejected = append(rejected, fmt.Sprintf("element %d: %v", i, err))
      continue
    }

    var fields datatypes.JSON
    if len(p.DomainFields) > 0 {
      encoded, err := json.Marshal(p.DomainFields)
      if err != nil {
        rejected = append(rejected, fmt.Sprintf("element %d: domainFields: %v", i, err))
        continue
      }
      fields = datatypes.JSON(encoded)
    }

    valid = append(valid, &types.Persona{
      Name:           p.Name,
      Domain:         cfg.ID,
      Age:            p.Age,
      KnowledgeLevel: p.KnowledgeLevel,
      Goals:          p.Goals,
      Concerns:       p.Concerns,
      DomainFields:   fields,
    })
  }

  if len(valid) == 0 {
    return nil, rejected, apierr.EmptyValidBatch(len(rejected))
  }
  return valid, rejected, nil
}

type rawScenario struct {
  Title         string   `json:"title"`
  Category      string   `json:"category"`
  SubCategory   string   `json:"subCategory"`
  Description   string   `json:"description"`
  Difficulty    string   `json:"difficulty"`
  Objectives    []string `json:"objectives"`
  EstimatedTime string   `json:"estimatedTime"`
  KeyPoints     []string `json:"keyPoints"`
}

func checkScenario(s rawScenario, cfg domain.Domain) error {
  // The prompt's JSON template uses "string" as the placeholder value, and
  // models occasionally echo it back for the optional taxonomy fields.
  if s.Category == "string" {
    s.Category = ""
  }
  if s.SubCategory == "string" {
    s.SubCategory = ""
  }
  if strings.TrimSpace(s.Title) == "" {
    return errors.New("missing title")
  }
  if strings.TrimSpace(s.Description) == "" {
    return errors.New("missing description")
  }
  if !validDifficulty(s.Difficulty) {
    return fmt.Errorf("invalid difficulty %q", s.Difficulty)
  }
  if len(s.Objectives) == 0 {
    return errors.New("missing objectives")
  }
  for i, o := range s.Objectives {
    if strings.TrimSpace(o) == "" {
      return fmt.Errorf("objective %d is empty", i)
    }
  }
  if !cfg.ValidCategory(s.Category) {
    return fmt.Errorf("unknown category %q", s.Category)
  }
  if !cfg.ValidSubCategory(s.Category, s.SubCategory) {
    return fmt.Errorf("unknown subcategory %q under %q", s.SubCategory, s.Category)
  }
  return nil
}

// ParseScenarioBatch mirrors ParsePersonaBatch for scenario generation.
func ParseScenarioBatch(raw string, cfg domain.Domain) ([]*types.Scenario, []string, error) {
  cleaned := stripCodeFence(raw)

  var envelope struct {
    Scenarios []json.RawMessage `json:"scenarios"`
  }
  if err := json.Unmarshal([]byte(cleaned), &envelope); err != nil {
    return nil, nil, apierr.MalformedResponse(fmt.Errorf("scenario batch is not valid JSON: %w", err))
  }
  if envelope.Scenarios == nil {
    return nil, nil, apierr.MalformedResponse(errors.New(`scenario batch missing "scenarios" array`))
  }

  var valid []*types.Scenario
  var rejected []string
  for i, element := range envelope.Scenarios {
    var s rawScenario
    if err := json.Unmarshal(element, &s); err != nil {
      rejected = append(rejected, fmt.Sprintf("element %d: not an object: %v", i, err))
      continue
    }
    if err := checkScenario(s, cfg); err != nil {
      rejected = append(rejected, fmt.Sprintf("element %d: %v", i, err))
      continue
    }

    objectives, err := json.Marshal(s.Objectives)
    if err != nil {
      rejected = append(rejected, fmt.Sprintf("element %d: objectives: %v", i, err))
      continue
    }
    var keyPoints datatypes.JSON
    if len(s.KeyPoints) > 0 {
      encoded, err := json.Marshal(s.KeyPoints)
      if err != nil {
        rejected = append(rejected, fmt.Sprintf("element %d: keyPoints: %v", i, err))
        continue
      }
      keyPoints = datatypes.JSON(encoded)
    }

    category := s.Category
    if category == "string" {
      category = ""
    }
    subCategory := s.SubCategory
    if subCategory == "string" {
      subCategory = ""
    }

    valid = append(valid, &types.Scenario{
      Title:         s.Title,
      Domain:        cfg.ID,
      Category:      category,
      SubCategory:   subCategory,
      Description:   s.Description,
      Difficulty:    s.Difficulty,
      Objectives:    datatypes.JSON(objectives),
      EstimatedTime: s.EstimatedTime,
      KeyPoints:     keyPoints,
    })
  }

  if len(valid) == 0 {
    return nil, rejected, apierr.EmptyValidBatch(len(rejected))
  }
  return valid, rejected, nil
}
