package domain

import (
  "sort"

  "github.com/kirdar-ai/kirdar-backend/internal/apierr"
)

// Field describes one domain-specific persona attribute the generator is
// asked to fill in.
type Field struct {
  Key         string `json:"key"`
  Description string `json:"description"`
}

// Domain is one professional vertical the platform trains for. The set is
// fixed at startup; handlers and services resolve domains through Get and
// never hold their own copies of this data.
type Domain struct {
  ID            string              `json:"id"`
  Name          string              `json:"name"`
  Description   string              `json:"description"`
  Role          string              `json:"role"`
  Client        string              `json:"client"`
  Context       string              `json:"context"`
  Topics        string              `json:"topics"`
  Concerns      string              `json:"concerns"`
  MentorStyle   string              `json:"mentorStyle,omitempty"`
  Categories    []string            `json:"categories"`
  SubCategories map[string][]string `json:"subCategories,omitempty"`
  FieldSchema   []Field             `json:"fieldSchema"`
}

var registry = map[string]Domain{
  "financial": {
    ID:          "financial",
    Name:        "Financial",
    Description: "Investment, retirement, estate, tax, and risk management scenarios",
    Role:        "financial advisor",
    Client:      "investor",
    Context:     "financial planning and investment",
    Topics:      "financial goals and investment strategies",
    Concerns:    "financial risks and market uncertainties",
    MentorStyle: "seasoned financial educator coaching advisors",
    Categories: []string{
      "Investment Planning",
      "Retirement Planning",
      "Estate Planning",
      "Tax Planning",
      "Risk Management",
    },
    FieldSchema: []Field{
      {Key: "income", Description: "annual income with currency"},
      {Key: "portfolio", Description: "current investment details"},
      {Key: "riskTolerance", Description: "Low|Moderate|High"},
    },
  },
  "sales": {
    ID:          "sales",
    Name:        "Sales",
    Description: "Product and service sales scenarios across different industries",
    Role:        "sales representative",
    Client:      "customer",
    Context:     "sales consultation",
    Topics:      "product and service offerings",
    Concerns:    "purchase concerns",
    Categories: []string{
      "Automotive Sales",
      "Insurance Sales",
      "Real Estate Sales",
      "Software/Tech Sales",
      "Retail Sales",
      "B2B Sales",
      "Medical Device Sales",
    },
    SubCategories: map[string][]string{
      "Automotive Sales": {
        "Luxury Vehicles",
        "Electric Vehicles",
        "Commercial Vehicles",
        "Used Vehicles",
      },
      "Insurance Sales": {
        "Life Insurance",
        "Health Insurance",
        "Property Insurance",
        "Business Insurance",
      },
      "Real Estate Sales": {
        "Residential",
        "Commercial",
        "Industrial",
        "Investment Properties",
      },
      "Software/Tech Sales": {
        "Enterprise Solutions",
        "SaaS Products",
        "Cybersecurity",
        "Cloud Services",
      },
    },
    FieldSchema: []Field{
      {Key: "budget", Description: "spending capacity"},
      {Key: "purchaseHistory", Description: "relevant purchase history"},
      {Key: "decisionTimeline", Description: "expected purchase timeline"},
    },
  },
  "medical": {
    ID:          "medical",
    Name:        "Medical",
    Description: "Healthcare advice, patient counseling, diagnostic challenges",
    Role:        "healthcare professional",
    Client:      "patient",
    Context:     "healthcare and medical consultations",
    Topics:      "health goals, medical history, and lifestyle changes",
    Concerns:    "health-related concerns and medical conditions",
    MentorStyle: "experienced healthcare educator",
    Categories: []string{
      "Primary Care",
      "Emergency Medicine",
      "Specialist Consultation",
      "Preventive Care",
      "Chronic Disease Management",
    },
    FieldSchema: []Field{
      {Key: "healthHistory", Description: "relevant medical history"},
      {Key: "currentSymptoms", Description: "present health concerns"},
      {Key: "medications", Description: "current medications"},
    },
  },
  "legal": {
    ID:          "legal",
    Name:        "Legal",
    Description: "Client consultations, case strategy, negotiations",
    Role:        "lawyer",
    Client:      "client",
    Context:     "legal consultation",
    Topics:      "legal matters",
    Concerns:    "legal concerns",
    Categories: []string{
      "Criminal Defense",
      "Family Law",
      "Corporate Law",
      "Real Estate Law",
      "Immigration Law",
    },
    FieldSchema: []Field{
      {Key: "caseType", Description: "type of legal matter"},
      {Key: "urgency", Description: "case timeline/urgency"},
      {Key: "priorLegalHistory", Description: "relevant legal history"},
    },
  },
  "counseling": {
    ID:          "counseling",
    Name:        "Counseling",
    Description: "Therapeutic approaches, mental health scenarios, family therapy",
    Role:        "therapist",
    Client:      "client",
    Context:     "therapy session",
    Topics:      "mental health topics",
    Concerns:    "personal concerns",
    Categories: []string{
      "Individual Therapy",
      "Couples Counseling",
      "Family Therapy",
      "Grief Counseling",
      "Addiction Recovery",
    },
    FieldSchema: []Field{
      {Key: "presentingIssue", Description: "main reason for seeking therapy"},
      {Key: "supportSystem", Description: "available support network"},
      {Key: "priorTherapy", Description: "previous therapy experience"},
    },
  },
  "education": {
    ID:          "education",
    Name:        "Education",
    Description: "Classroom management, lesson planning, parent-teacher scenarios",
    Role:        "teacher",
    Client:      "student/parent",
    Context:     "educational consultation",
    Topics:      "educational matters",
    Concerns:    "academic concerns",
    Categories: []string{
      "Elementary Education",
      "Secondary Education",
      "Special Education",
      "College Counseling",
      "Career Guidance",
    },
    FieldSchema: []Field{
      {Key: "gradeLevel", Description: "current educational level"},
      {Key: "academicHistory", Description: "academic background"},
      {Key: "learningStyle", Description: "preferred learning approach"},
    },
  },
}

// Get resolves a domain id. Unknown ids come back as an unknown_domain error
// so callers can pass it straight up to the handler layer.
func Get(id string) (Domain, error) {
  d, ok := registry[id]
  if !ok {
    return Domain{}, apierr.UnknownDomain(id)
  }
  return d, nil
}

// List returns every registered domain sorted by id.
func List() []Domain {
  out := make([]Domain, 0, len(registry))
  for _, d := range registry {
    out = append(out, d)
  }
  sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
  return out
}

// ValidCategory reports whether category belongs to the domain's closed
// category set. The empty category is always allowed (domain-wide content).
func (d Domain) ValidCategory(category string) bool {
  if category == "" {
    return true
  }
  for _, c := range d.Categories {
    if c == category {
      return true
    }
  }
  return false
}

// ValidSubCategory reports whether sub is listed under category. Categories
// without a subcategory list accept only the empty subcategory.
func (d Domain) ValidSubCategory(category, sub string) bool {
  if sub == "" {
    return true
  }
  subs, ok := d.SubCategories[category]
  if !ok {
    return false
  }
  for _, s := range subs {
    if s == sub {
      return true
    }
  }
  return false
}
