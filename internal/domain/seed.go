package domain

// SeedScenario and SeedPersona are plain seed records. The lifecycle services
// stamp ownership and persistence fields when inserting them after a reset.
type SeedScenario struct {
  Domain        string
  Title         string
  Category      string
  SubCategory   string
  Description   string
  Difficulty    string
  Objectives    []string
  EstimatedTime string
}

type SeedPersona struct {
  Domain         string
  Name           string
  Category       string
  Age            int
  Goals          string
  Concerns       string
  KnowledgeLevel string
  DomainFields   map[string]string
}

var seedScenarios = []SeedScenario{
  {
    Domain:      "financial",
    Title:       "Portfolio Diversification Strategy",
    Category:    "Investment Planning",
    Description: "A high-net-worth client seeks guidance on diversifying a concentrated stock position without triggering an outsized tax bill.",
    Difficulty:  "Intermediate",
    Objectives: []string{
      "Assess current portfolio concentration risk",
      "Explain diversification principles",
      "Recommend optimal asset allocation",
      "Address concerns about potential return impact",
    },
    EstimatedTime: "20-25 min",
  },
  {
    Domain:      "financial",
    Title:       "ESG Investment Integration",
    Category:    "Investment Planning",
    Description: "A client wants to align their portfolio with environmental and social values while preserving long-term returns.",
    Difficulty:  "Advanced",
    Objectives: []string{
      "Define ESG investment criteria",
      "Maintain portfolio diversification",
      "Monitor ESG impact and performance",
      "Balance values with returns",
    },
    EstimatedTime: "25-30 min",
  },
  {
    Domain:      "sales",
    Title:       "First Electric Vehicle Purchase",
    Category:    "Automotive Sales",
    SubCategory: "Electric Vehicles",
    Description: "A long-time combustion-engine driver is curious about going electric but worried about range, charging, and resale value.",
    Difficulty:  "Intermediate",
    Objectives: []string{
      "Uncover the customer's real driving patterns",
      "Address range and charging anxiety with specifics",
      "Position total cost of ownership against a comparable gas model",
      "Close for a test drive",
    },
    EstimatedTime: "15-20 min",
  },
  {
    Domain:      "medical",
    Title:       "Newly Diagnosed Type 2 Diabetes",
    Category:    "Chronic Disease Management",
    Description: "A patient has just received a type 2 diabetes diagnosis and is overwhelmed by conflicting advice about diet, medication, and monitoring.",
    Difficulty:  "Intermediate",
    Objectives: []string{
      "Explain the diagnosis in plain language",
      "Set realistic lifestyle-change expectations",
      "Review the medication plan and monitoring routine",
      "Schedule structured follow-up",
    },
    EstimatedTime: "20-25 min",
  },
  {
    Domain:      "legal",
    Title:       "Contested Custody Consultation",
    Category:    "Family Law",
    Description: "A parent going through a difficult divorce wants to understand their custody options and the realistic range of outcomes.",
    Difficulty:  "Advanced",
    Objectives: []string{
      "Gather the relevant family history sensitively",
      "Explain custody standards and procedure",
      "Set honest expectations about timeline and cost",
      "Agree concrete next steps",
    },
    EstimatedTime: "25-30 min",
  },
  {
    Domain:      "counseling",
    Title:       "First Session After a Loss",
    Category:    "Grief Counseling",
    Description: "A client who recently lost a parent is attending therapy for the first time and is unsure what to expect from the process.",
    Difficulty:  "Intermediate",
    Objectives: []string{
      "Build safety and rapport in the first session",
      "Normalize the client's grief responses",
      "Assess support system and coping resources",
      "Collaboratively set initial therapy goals",
    },
    EstimatedTime: "25-30 min",
  },
  {
    Domain:      "education",
    Title:       "Struggling Reader Parent Conference",
    Category:    "Elementary Education",
    Description: "A parent is frustrated that their third-grader is falling behind in reading and wants to know what the school will do about it.",
    Difficulty:  "Intermediate",
    Objectives: []string{
      "Present assessment results without jargon",
      "Listen to the parent's concerns fully",
      "Propose a concrete intervention plan",
      "Define how progress will be communicated",
    },
    EstimatedTime: "15-20 min",
  },
}

var seedPersonas = []SeedPersona{
  {
    Domain:         "financial",
    Name:           "Margaret Chen",
    Category:       "Retirement Planning",
    Age:            58,
    Goals:          "Retire at 62 with enough income to travel twice a year",
    Concerns:       "Outliving her savings and a market downturn just before retirement",
    KnowledgeLevel: "Intermediate",
    DomainFields: map[string]string{
      "income":        "$140,000 per year",
      "portfolio":     "$900k across 401(k), brokerage, and company stock",
      "riskTolerance": "Moderate",
    },
  },
  {
    Domain:         "sales",
    Name:           "Derek Okafor",
    Category:       "Software/Tech Sales",
    Age:            41,
    Goals:          "Replace a patchwork of spreadsheets with one operations platform",
    Concerns:       "Migration effort and getting his team to actually adopt new software",
    KnowledgeLevel: "Basic",
    DomainFields: map[string]string{
      "budget":           "$60,000 annual software budget",
      "purchaseHistory":  "Bought a CRM two years ago that the team abandoned",
      "decisionTimeline": "Wants a decision before the next fiscal year",
    },
  },
  {
    Domain:         "medical",
    Name:           "Rosa Delgado",
    Category:       "Primary Care",
    Age:            67,
    Goals:          "Stay independent and manage her blood pressure without more pills",
    Concerns:       "Side effects of new medications and conflicting advice online",
    KnowledgeLevel: "Basic",
    DomainFields: map[string]string{
      "healthHistory":   "Hypertension for ten years, mild arthritis",
      "currentSymptoms": "Occasional dizziness in the mornings",
      "medications":     "Lisinopril 20mg daily, ibuprofen as needed",
    },
  },
  {
    Domain:         "legal",
    Name:           "Tomasz Nowak",
    Category:       "Immigration Law",
    Age:            34,
    Goals:          "Secure permanent residency for himself and his spouse",
    Concerns:       "Processing delays and the risk of a mistake on his application",
    KnowledgeLevel: "Intermediate",
    DomainFields: map[string]string{
      "caseType":          "Employment-based green card",
      "urgency":           "Visa expires in fourteen months",
      "priorLegalHistory": "One prior H-1B extension, no complications",
    },
  },
  {
    Domain:         "counseling",
    Name:           "Aisha Rahman",
    Category:       "Individual Therapy",
    Age:            29,
    Goals:          "Manage workplace anxiety before it affects her performance",
    Concerns:       "Being judged for seeking therapy and whether it will actually help",
    KnowledgeLevel: "Basic",
    DomainFields: map[string]string{
      "presentingIssue": "Escalating anxiety around deadlines and presentations",
      "supportSystem":   "Close to her sister, few friends locally",
      "priorTherapy":    "None",
    },
  },
  {
    Domain:         "education",
    Name:           "James Whitfield",
    Category:       "College Counseling",
    Age:            46,
    Goals:          "Help his daughter pick a college they can afford without loans",
    Concerns:       "Sticker prices and whether test-optional really means optional",
    KnowledgeLevel: "Intermediate",
    DomainFields: map[string]string{
      "gradeLevel":      "Parent of a high school junior",
      "academicHistory": "Daughter has a 3.7 GPA, strong in sciences",
      "learningStyle":   "Prefers structured checklists and deadlines",
    },
  },
}

// SeedScenarios returns the default scenario set for one domain, or every
// domain when id is empty.
func SeedScenarios(id string) []SeedScenario {
  if id == "" {
    out := make([]SeedScenario, len(seedScenarios))
    copy(out, seedScenarios)
    return out
  }
  var out []SeedScenario
  for _, s := range seedScenarios {
    if s.Domain == id {
      out = append(out, s)
    }
  }
  return out
}

// SeedPersonas returns the default persona set for one domain, or every
// domain when id is empty.
func SeedPersonas(id string) []SeedPersona {
  if id == "" {
    out := make([]SeedPersona, len(seedPersonas))
    copy(out, seedPersonas)
    return out
  }
  var out []SeedPersona
  for _, p := range seedPersonas {
    if p.Domain == id {
      out = append(out, p)
    }
  }
  return out
}
