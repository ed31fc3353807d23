package services

import (
  "context"
  "encoding/json"
  "errors"
  "fmt"
  "strings"
  "time"

  "github.com/google/uuid"

  "github.com/kirdar-ai/kirdar-backend/internal/apierr"
  "github.com/kirdar-ai/kirdar-backend/internal/domain"
  "github.com/kirdar-ai/kirdar-backend/internal/logger"
  "github.com/kirdar-ai/kirdar-backend/internal/repos"
)

const (
  ChatTypePersona  = "persona"
  ChatTypeScenario = "scenario"
)

// SimulationContext carries the persona or scenario the trainee is talking
// to. All conversation state lives with the caller; the server holds none.
type SimulationContext struct {
  Type           string            `json:"type"`
  Domain         string            `json:"domain"`
  Name           string            `json:"name,omitempty"`
  Age            int               `json:"age,omitempty"`
  Goals          string            `json:"goals,omitempty"`
  Concerns       string            `json:"concerns,omitempty"`
  KnowledgeLevel string            `json:"knowledgeLevel,omitempty"`
  Title          string            `json:"title,omitempty"`
  Category       string            `json:"category,omitempty"`
  Description    string            `json:"description,omitempty"`
  ClientProfile  map[string]string `json:"clientProfile,omitempty"`
  Objectives     []string          `json:"objectives,omitempty"`
}

type SimulateTurnInput struct {
  Message string        `json:"message"`
  History []ChatMessage `json:"conversationHistory"`
  Context SimulationContext
}

// Evaluation is the structured result of a conversation review.
type Evaluation struct {
  Scores            map[string]float64 `json:"scores"`
  Strengths         []string           `json:"strengths"`
  ImprovementAreas  []string           `json:"improvementAreas"`
  OverallAssessment string             `json:"overallAssessment"`
  OverallScore      float64            `json:"overallScore"`
}

// MentorAdvice is the coaching payload returned mid-conversation.
type MentorAdvice struct {
  Suggestions []string `json:"suggestions"`
  Warning     string   `json:"warning"`
  Tip         string   `json:"tip"`
}

type ChatService interface {
  SimulateTurn(ctx context.Context, userID uuid.UUID, in SimulateTurnInput) (string, error)
  EvaluateConversation(ctx context.Context, userID uuid.UUID, messages []ChatMessage) (*Evaluation, error)
  MentorSuggestions(ctx context.Context, userID uuid.UUID, messages []ChatMessage) (*MentorAdvice, error)
}

type chatService struct {
  log           *logger.Logger
  aiCallLogRepo repos.AICallLogRepo
  ai            OpenAIClient
}

func NewChatService(aiCallLogRepo repos.AICallLogRepo, ai OpenAIClient, baseLog *logger.Logger) ChatService {
  serviceLog := baseLog.With("service", "ChatService")
  return &chatService{log: serviceLog, aiCallLogRepo: aiCallLogRepo, ai: ai}
}

func personaSystemPrompt(cfg domain.Domain, sc SimulationContext) string {
  return fmt.Sprintf(`You are a %s seeking %s advice.

Your profile:
- Name: %s
- Age: %d
- Goals: %s
- Concerns: %s
- Knowledge Level: %s

IMPORTANT GUIDELINES:
1. You are ALWAYS the %s, never break character
2. Never acknowledge being AI or virtual
3. Express genuine concerns about %s
4. Ask relevant questions about your situation
5. Keep responses natural and conversational
6. Stay consistent with your profile details
7. Show appropriate knowledge level (%s)`,
    cfg.Client, cfg.Context,
    sc.Name, sc.Age, sc.Goals, sc.Concerns, sc.KnowledgeLevel,
    cfg.Client, sc.Concerns, sc.KnowledgeLevel)
}

func scenarioSystemPrompt(sc SimulationContext) string {
  var profile strings.Builder
  for key, value := range sc.ClientProfile {
    fmt.Fprintf(&profile, "%s: %s\n", key, value)
  }
  var objectives strings.Builder
  for _, o := range sc.Objectives {
    fmt.Fprintf(&objectives, "- %s\n", o)
  }

  return fmt.Sprintf(`You are a client in the following %s scenario:

SCENARIO CONTEXT:
Title: %s
Category: %s
Description: %s

CLIENT PROFILE:
%s
OBJECTIVES:
%s
IMPORTANT GUIDELINES:
1. Stay in character as a client seeking %s advice
2. Express concerns relevant to the %s context
3. Ask questions specific to %s matters
4. Never acknowledge being AI or simulated
5. Keep responses focused on the scenario context
6. Maintain consistent client perspective`,
    sc.Domain,
    sc.Title, sc.Category, sc.Description,
    profile.String(), objectives.String(),
    sc.Domain, sc.Category, sc.Domain)
}

func (s *chatService) SimulateTurn(ctx context.Context, userID uuid.UUID, in SimulateTurnInput) (string, error) {
  if strings.TrimSpace(in.Message) == "" {
    return "", apierr.New(400, apierr.KindMalformedResponse, errors.New("message is required"))
  }

  cfg, err := domain.Get(in.Context.Domain)
  if err != nil {
    return "", err
  }

  var system string
  switch in.Context.Type {
  case ChatTypeScenario:
    system = scenarioSystemPrompt(in.Context)
  case ChatTypePersona:
    system = personaSystemPrompt(cfg, in.Context)
  default:
    return "", apierr.New(400, apierr.KindMalformedResponse, fmt.Errorf("unknown chat type %q", in.Context.Type))
  }

  messages := make([]ChatMessage, 0, len(in.History)+2)
  messages = append(messages, ChatMessage{Role: "system", Content: system})
  messages = append(messages, in.History...)
  messages = append(messages, ChatMessage{Role: "user", Content: in.Message})

  started := time.Now()
  reply, callErr := s.ai.Chat(ctx, messages, ProfileSimulation)
  auditAICall(ctx, s.aiCallLogRepo, s.log, userID, ProfileSimulation, in.Context.Domain, started, callErr)
  if callErr != nil {
    return "", callErr
  }
  return reply, nil
}

func (s *chatService) EvaluateConversation(ctx context.Context, userID uuid.UUID, messages []ChatMessage) (*Evaluation, error) {
  if len(messages) == 0 {
    return nil, apierr.New(400, apierr.KindMalformedResponse, errors.New("messages array is required"))
  }

  started := time.Now()
  raw, callErr := s.ai.Chat(ctx, messages, ProfileEvaluation)
  auditAICall(ctx, s.aiCallLogRepo, s.log, userID, ProfileEvaluation, "", started, callErr)
  if callErr != nil {
    return nil, callErr
  }

  cleaned := stripCodeFence(raw)
  var result Evaluation
  if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
    return nil, apierr.MalformedResponse(fmt.Errorf("evaluation is not valid JSON: %w", err))
  }
  if len(result.Scores) == 0 ||
    len(result.Strengths) == 0 ||
    len(result.ImprovementAreas) == 0 ||
    result.OverallAssessment == "" {
    return nil, apierr.MalformedResponse(errors.New("evaluation result missing required fields"))
  }
  return &result, nil
}

func (s *chatService) MentorSuggestions(ctx context.Context, userID uuid.UUID, messages []ChatMessage) (*MentorAdvice, error) {
  if len(messages) < 2 {
    return nil, apierr.New(400, apierr.KindMalformedResponse, errors.New("messages array with system and user messages is required"))
  }

  withFormat := make([]ChatMessage, 0, len(messages)+1)
  withFormat = append(withFormat, messages...)
  withFormat = append(withFormat, ChatMessage{
    Role: "assistant",
    Content: `Please provide your response as a JSON object with exactly these fields:
{
  "suggestions": [string, string, string],
  "warning": string,
  "tip": string
}`,
  })

  started := time.Now()
  raw, callErr := s.ai.Chat(ctx, withFormat, ProfileCoaching)
  auditAICall(ctx, s.aiCallLogRepo, s.log, userID, ProfileCoaching, "", started, callErr)
  if callErr != nil {
    return nil, callErr
  }

  var parsed MentorAdvice
  if err := json.Unmarshal([]byte(stripCodeFence(raw)), &parsed); err != nil {
    return nil, apierr.MalformedResponse(fmt.Errorf("mentor advice is not valid JSON: %w", err))
  }
  if parsed.Suggestions == nil {
    return nil, apierr.MalformedResponse(errors.New("mentor advice missing suggestions"))
  }
  if len(parsed.Suggestions) > 3 {
    parsed.Suggestions = parsed.Suggestions[:3]
  }
  return &parsed, nil
}
