package services

import (
  "fmt"
  "strings"

  "github.com/kirdar-ai/kirdar-backend/internal/apierr"
  "github.com/kirdar-ai/kirdar-backend/internal/domain"
)

// MaxBatchSize caps one generation request. Enforced here so an oversized
// request never reaches the model at all.
const MaxBatchSize = 20

// GenerateOptions shape a single generation batch.
type GenerateOptions struct {
  Category    string
  SubCategory string
  Count       int
  Description string
}

func validateGenerateOptions(cfg domain.Domain, opts GenerateOptions) error {
  if opts.Count < 1 || opts.Count > MaxBatchSize {
    return apierr.LimitExceeded("count must be between 1 and %d, got %d", MaxBatchSize, opts.Count)
  }
  if !cfg.ValidCategory(opts.Category) {
    return apierr.New(400, apierr.KindUnknownDomain, fmt.Errorf("category %q is not registered for domain %q", opts.Category, cfg.ID))
  }
  if !cfg.ValidSubCategory(opts.Category, opts.SubCategory) {
    return apierr.New(400, apierr.KindUnknownDomain, fmt.Errorf("subcategory %q is not registered under %q in domain %q", opts.SubCategory, opts.Category, cfg.ID))
  }
  return nil
}

// scopeLabel is the human phrase for what the batch targets: the category
// when one is picked, otherwise the whole domain.
func scopeLabel(cfg domain.Domain, opts GenerateOptions) string {
  if opts.Category != "" {
    return opts.Category
  }
  return cfg.ID
}

func fieldSchemaLines(cfg domain.Domain) string {
  lines := make([]string, 0, len(cfg.FieldSchema))
  for _, f := range cfg.FieldSchema {
    lines = append(lines, fmt.Sprintf("        %q: %q", f.Key, f.Description))
  }
  return strings.Join(lines, ",\n")
}

// ComposePersonaPrompts builds the system and user prompts for one persona
// generation batch. Every legal enum literal is spelled out in the prompt so
// the model has no room to invent values the validator would reject.
func ComposePersonaPrompts(cfg domain.Domain, opts GenerateOptions) (string, string, error) {
  if err := validateGenerateOptions(cfg, opts); err != nil {
    return "", "", err
  }

  scope := scopeLabel(cfg, opts)

  var intent string
  if opts.Description != "" {
    intent = fmt.Sprintf("Generate personas matching this description: %q", opts.Description)
  } else {
    intent = fmt.Sprintf("Generate unique personas for %s scenarios", scope)
  }

  system := fmt.Sprintf(`You are an expert %s that creates detailed %s personas.
%s.
Return response in valid JSON format.

Important Guidelines:
1. Each persona must be unique and realistic for %s
2. Generate diverse characteristics appropriate for %s
3. Ensure proper JSON formatting
4. Knowledge level must be exactly "Basic", "Intermediate", or "Advanced"
5. Age must be between 18 and 80
6. Include specific, detailed goals and concerns related to %s`,
    cfg.Role, cfg.Client, intent, scope, cfg.Context, cfg.Topics)

  user := fmt.Sprintf(`Create %d detailed %s personas for %s scenarios in this exact JSON format:
{
  "personas": [
    {
      "name": "Full Name",
      "age": number,
      "knowledgeLevel": "Basic|Intermediate|Advanced",
      "goals": "specific goals related to %s",
      "concerns": "specific %s",
      "domainFields": {
%s
      }
    }
  ]
}`,
    opts.Count, cfg.Client, scope, cfg.Topics, cfg.Concerns, fieldSchemaLines(cfg))

  return system, user, nil
}

// ComposeScenarioPrompts builds the system and user prompts for one scenario
// generation batch.
func ComposeScenarioPrompts(cfg domain.Domain, opts GenerateOptions) (string, string, error) {
  if err := validateGenerateOptions(cfg, opts); err != nil {
    return "", "", err
  }

  system := fmt.Sprintf("You are an expert %s training scenario creator.", cfg.ID)

  var b strings.Builder
  fmt.Fprintf(&b, "Generate %d professional training scenarios for %s practitioners", opts.Count, cfg.ID)
  if opts.Category != "" {
    fmt.Fprintf(&b, " specifically for %s", opts.Category)
    if opts.SubCategory != "" {
      fmt.Fprintf(&b, " in the %s sector", opts.SubCategory)
    }
  }
  if opts.Description != "" {
    fmt.Fprintf(&b, " matching this description: %q", opts.Description)
  }

  category := opts.Category
  if category == "" {
    category = "string"
  }
  subCategory := opts.SubCategory
  if subCategory == "" {
    subCategory = "string"
  }

  fmt.Fprintf(&b, `.
Each scenario should be realistic and challenging, including:
1. A title
2. A detailed description of the client situation
3. Difficulty level, exactly "Intermediate", "Advanced", or "Expert"
4. 3-4 specific learning objectives
5. Estimated time (in minutes)
6. Key points or client profile details

Return them in this exact JSON format:
{
  "scenarios": [
    {
      "title": "string",
      "category": %q,
      "subCategory": %q,
      "description": "string",
      "difficulty": "Intermediate|Advanced|Expert",
      "objectives": ["string"],
      "estimatedTime": "string",
      "keyPoints": ["string"]
    }
  ]
}`, category, subCategory)

  return system, b.String(), nil
}
