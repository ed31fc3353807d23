package services

import (
  "context"
  "strings"
  "testing"

  "github.com/google/uuid"

  "github.com/kirdar-ai/kirdar-backend/internal/apierr"
)

func newChatService(t *testing.T, ai *fakeAIClient) ChatService {
  t.Helper()
  return NewChatService(&fakeAICallLogRepo{}, ai, testLogger(t))
}

func TestSimulateTurnPersonaPrompt(t *testing.T) {
  ai := &fakeAIClient{responses: []string{"I'm worried about my portfolio."}}
  svc := newChatService(t, ai)

  reply, err := svc.SimulateTurn(context.Background(), uuid.New(), SimulateTurnInput{
    Message: "What brings you in today?",
    History: []ChatMessage{
      {Role: "user", Content: "Hello"},
      {Role: "assistant", Content: "Hi"},
    },
    Context: SimulationContext{
      Type:           ChatTypePersona,
      Domain:         "financial",
      Name:           "Margaret Chen",
      Age:            58,
      Goals:          "retire at 62",
      Concerns:       "outliving savings",
      KnowledgeLevel: "Intermediate",
    },
  })
  if err != nil {
    t.Fatalf("SimulateTurn failed: %v", err)
  }
  if reply != "I'm worried about my portfolio." {
    t.Fatalf("reply = %q", reply)
  }
  if !strings.Contains(ai.lastSystem, "Margaret Chen") {
    t.Fatal("system prompt missing persona name")
  }
  if !strings.Contains(ai.lastSystem, "never break character") {
    t.Fatal("system prompt missing character guideline")
  }
  // system + 2 history + new message
  if len(ai.lastMessages) != 4 {
    t.Fatalf("sent %d messages, want 4", len(ai.lastMessages))
  }
  if ai.lastProfile.Purpose != ProfileSimulation.Purpose {
    t.Fatalf("used profile %q, want %q", ai.lastProfile.Purpose, ProfileSimulation.Purpose)
  }
}

func TestSimulateTurnScenarioPrompt(t *testing.T) {
  ai := &fakeAIClient{responses: []string{"ok"}}
  svc := newChatService(t, ai)

  _, err := svc.SimulateTurn(context.Background(), uuid.New(), SimulateTurnInput{
    Message: "Hi",
    Context: SimulationContext{
      Type:        ChatTypeScenario,
      Domain:      "legal",
      Title:       "Contested Custody Consultation",
      Category:    "Family Law",
      Description: "desc",
      Objectives:  []string{"listen", "advise"},
    },
  })
  if err != nil {
    t.Fatalf("SimulateTurn failed: %v", err)
  }
  if !strings.Contains(ai.lastSystem, "Contested Custody Consultation") {
    t.Fatal("system prompt missing scenario title")
  }
  if !strings.Contains(ai.lastSystem, "- listen") {
    t.Fatal("system prompt missing objectives")
  }
}

func TestSimulateTurnUnknownDomain(t *testing.T) {
  svc := newChatService(t, &fakeAIClient{})
  _, err := svc.SimulateTurn(context.Background(), uuid.New(), SimulateTurnInput{
    Message: "Hi",
    Context: SimulationContext{Type: ChatTypePersona, Domain: "astrology"},
  })
  if got := apierr.KindOf(err); got != apierr.KindUnknownDomain {
    t.Fatalf("error kind = %q, want %q", got, apierr.KindUnknownDomain)
  }
}

func TestEvaluateConversationParsesResult(t *testing.T) {
  raw := "```json\n" + `{
    "scores": {"communication": 8, "accuracy": 7},
    "strengths": ["clear explanations"],
    "improvementAreas": ["ask more questions"],
    "overallAssessment": "solid session",
    "overallScore": 7.5
  }` + "\n```"
  ai := &fakeAIClient{responses: []string{raw}}
  svc := newChatService(t, ai)

  result, err := svc.EvaluateConversation(context.Background(), uuid.New(), []ChatMessage{
    {Role: "system", Content: "evaluate"},
    {Role: "user", Content: "transcript"},
  })
  if err != nil {
    t.Fatalf("EvaluateConversation failed: %v", err)
  }
  if result.OverallScore != 7.5 {
    t.Fatalf("overallScore = %v, want 7.5", result.OverallScore)
  }
  if len(result.Scores) != 2 {
    t.Fatalf("got %d scores, want 2", len(result.Scores))
  }
}

func TestEvaluateConversationMalformed(t *testing.T) {
  ai := &fakeAIClient{responses: []string{`{"scores": {}}`}}
  svc := newChatService(t, ai)

  _, err := svc.EvaluateConversation(context.Background(), uuid.New(), []ChatMessage{
    {Role: "user", Content: "transcript"},
  })
  if got := apierr.KindOf(err); got != apierr.KindMalformedResponse {
    t.Fatalf("error kind = %q, want %q", got, apierr.KindMalformedResponse)
  }
}

func TestMentorSuggestionsTruncatesToThree(t *testing.T) {
  ai := &fakeAIClient{responses: []string{`{
    "suggestions": ["a", "b", "c", "d", "e"],
    "warning": "disclose fees",
    "tip": "good rapport"
  }`}}
  svc := newChatService(t, ai)

  advice, err := svc.MentorSuggestions(context.Background(), uuid.New(), []ChatMessage{
    {Role: "system", Content: "coach"},
    {Role: "user", Content: "transcript"},
  })
  if err != nil {
    t.Fatalf("MentorSuggestions failed: %v", err)
  }
  if len(advice.Suggestions) != 3 {
    t.Fatalf("got %d suggestions, want 3", len(advice.Suggestions))
  }
  if advice.Warning != "disclose fees" || advice.Tip != "good rapport" {
    t.Fatal("warning/tip not carried through")
  }
  if ai.lastProfile.Purpose != ProfileCoaching.Purpose {
    t.Fatalf("used profile %q, want %q", ai.lastProfile.Purpose, ProfileCoaching.Purpose)
  }
}

func TestMentorSuggestionsNeedsContext(t *testing.T) {
  svc := newChatService(t, &fakeAIClient{})
  _, err := svc.MentorSuggestions(context.Background(), uuid.New(), []ChatMessage{
    {Role: "user", Content: "just one message"},
  })
  if err == nil {
    t.Fatal("single-message request accepted")
  }
}
