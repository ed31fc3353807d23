package services

import (
  "context"
  "fmt"
  "sync"
  "testing"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/kirdar-ai/kirdar-backend/internal/logger"
  "github.com/kirdar-ai/kirdar-backend/internal/repos"
  "github.com/kirdar-ai/kirdar-backend/internal/types"
)

func testLogger(t *testing.T) *logger.Logger {
  t.Helper()
  log, err := logger.New("development")
  if err != nil {
    t.Fatalf("init logger: %v", err)
  }
  return log
}

// fakeAIClient returns canned responses in order and counts calls.
type fakeAIClient struct {
  mu        sync.Mutex
  responses []string
  errs      []error
  calls     int

  lastSystem   string
  lastUser     string
  lastProfile  ModelProfile
  lastMessages []ChatMessage
}

func (f *fakeAIClient) Chat(ctx context.Context, messages []ChatMessage, profile ModelProfile) (string, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  idx := f.calls
  f.calls++
  f.lastMessages = messages
  f.lastProfile = profile
  if len(messages) > 0 && messages[0].Role == "system" {
    f.lastSystem = messages[0].Content
  }
  if len(messages) > 0 {
    f.lastUser = messages[len(messages)-1].Content
  }
  if idx < len(f.errs) && f.errs[idx] != nil {
    return "", f.errs[idx]
  }
  if idx < len(f.responses) {
    return f.responses[idx], nil
  }
  return "", fmt.Errorf("fakeAIClient: no response for call %d", idx)
}

func (f *fakeAIClient) Complete(ctx context.Context, system string, user string, profile ModelProfile) (string, error) {
  return f.Chat(ctx, []ChatMessage{
    {Role: "system", Content: system},
    {Role: "user", Content: user},
  }, profile)
}

func (f *fakeAIClient) callCount() int {
  f.mu.Lock()
  defer f.mu.Unlock()
  return f.calls
}

type fakePersonaRepo struct {
  mu       sync.Mutex
  personas []*types.Persona
}

func (f *fakePersonaRepo) Create(ctx context.Context, tx *gorm.DB, personas []*types.Persona) ([]*types.Persona, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  for _, p := range personas {
    if p.ID == uuid.Nil {
      p.ID = uuid.New()
    }
    f.personas = append(f.personas, p)
  }
  return personas, nil
}

func (f *fakePersonaRepo) GetByID(ctx context.Context, tx *gorm.DB, personaID uuid.UUID) (*types.Persona, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  for _, p := range f.personas {
    if p.ID == personaID {
      return p, nil
    }
  }
  return nil, gorm.ErrRecordNotFound
}

func (f *fakePersonaRepo) GetByIDs(ctx context.Context, tx *gorm.DB, personaIDs []uuid.UUID) ([]*types.Persona, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  want := make(map[uuid.UUID]bool, len(personaIDs))
  for _, id := range personaIDs {
    want[id] = true
  }
  var out []*types.Persona
  for _, p := range f.personas {
    if want[p.ID] {
      out = append(out, p)
    }
  }
  return out, nil
}

func (f *fakePersonaRepo) List(ctx context.Context, tx *gorm.DB, filter repos.PersonaFilter) ([]*types.Persona, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  var out []*types.Persona
  for _, p := range f.personas {
    if filter.Domain != "" && p.Domain != filter.Domain {
      continue
    }
    if filter.Category != "" && p.Category != filter.Category {
      continue
    }
    if filter.ActiveOnly && !p.IsActive {
      continue
    }
    out = append(out, p)
  }
  return out, nil
}

func (f *fakePersonaRepo) Update(ctx context.Context, tx *gorm.DB, persona *types.Persona) (*types.Persona, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  for i, p := range f.personas {
    if p.ID == persona.ID {
      f.personas[i] = persona
      return persona, nil
    }
  }
  return nil, gorm.ErrRecordNotFound
}

func (f *fakePersonaRepo) Deactivate(ctx context.Context, tx *gorm.DB, personaID uuid.UUID) error {
  f.mu.Lock()
  defer f.mu.Unlock()
  for _, p := range f.personas {
    if p.ID == personaID {
      p.IsActive = false
      return nil
    }
  }
  return gorm.ErrRecordNotFound
}

func (f *fakePersonaRepo) FullDeleteByDomain(ctx context.Context, tx *gorm.DB, domain string) (int64, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  var kept []*types.Persona
  var deleted int64
  for _, p := range f.personas {
    if p.Domain == domain {
      deleted++
      continue
    }
    kept = append(kept, p)
  }
  f.personas = kept
  return deleted, nil
}

func (f *fakePersonaRepo) FullDeleteAll(ctx context.Context, tx *gorm.DB) (int64, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  deleted := int64(len(f.personas))
  f.personas = nil
  return deleted, nil
}

func (f *fakePersonaRepo) countByDomain(domain string) int {
  f.mu.Lock()
  defer f.mu.Unlock()
  n := 0
  for _, p := range f.personas {
    if p.Domain == domain {
      n++
    }
  }
  return n
}

type fakeScenarioRepo struct {
  mu        sync.Mutex
  scenarios []*types.Scenario
}

func (f *fakeScenarioRepo) Create(ctx context.Context, tx *gorm.DB, scenarios []*types.Scenario) ([]*types.Scenario, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  for _, sc := range scenarios {
    if sc.ID == uuid.Nil {
      sc.ID = uuid.New()
    }
    f.scenarios = append(f.scenarios, sc)
  }
  return scenarios, nil
}

func (f *fakeScenarioRepo) GetByID(ctx context.Context, tx *gorm.DB, scenarioID uuid.UUID) (*types.Scenario, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  for _, sc := range f.scenarios {
    if sc.ID == scenarioID {
      return sc, nil
    }
  }
  return nil, gorm.ErrRecordNotFound
}

func (f *fakeScenarioRepo) GetByIDs(ctx context.Context, tx *gorm.DB, scenarioIDs []uuid.UUID) ([]*types.Scenario, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  want := make(map[uuid.UUID]bool, len(scenarioIDs))
  for _, id := range scenarioIDs {
    want[id] = true
  }
  var out []*types.Scenario
  for _, sc := range f.scenarios {
    if want[sc.ID] {
      out = append(out, sc)
    }
  }
  return out, nil
}

func (f *fakeScenarioRepo) List(ctx context.Context, tx *gorm.DB, filter repos.ScenarioFilter) ([]*types.Scenario, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  var out []*types.Scenario
  for _, sc := range f.scenarios {
    if filter.Domain != "" && sc.Domain != filter.Domain {
      continue
    }
    if filter.Category != "" && sc.Category != filter.Category {
      continue
    }
    if filter.SubCategory != "" && sc.SubCategory != filter.SubCategory {
      continue
    }
    if filter.Difficulty != "" && sc.Difficulty != filter.Difficulty {
      continue
    }
    if filter.ActiveOnly && !sc.IsActive {
      continue
    }
    out = append(out, sc)
  }
  return out, nil
}

func (f *fakeScenarioRepo) Update(ctx context.Context, tx *gorm.DB, scenario *types.Scenario) (*types.Scenario, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  for i, sc := range f.scenarios {
    if sc.ID == scenario.ID {
      f.scenarios[i] = scenario
      return scenario, nil
    }
  }
  return nil, gorm.ErrRecordNotFound
}

func (f *fakeScenarioRepo) Deactivate(ctx context.Context, tx *gorm.DB, scenarioID uuid.UUID) error {
  f.mu.Lock()
  defer f.mu.Unlock()
  for _, sc := range f.scenarios {
    if sc.ID == scenarioID {
      sc.IsActive = false
      return nil
    }
  }
  return gorm.ErrRecordNotFound
}

func (f *fakeScenarioRepo) FullDeleteByDomain(ctx context.Context, tx *gorm.DB, domain string) (int64, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  var kept []*types.Scenario
  var deleted int64
  for _, sc := range f.scenarios {
    if sc.Domain == domain {
      deleted++
      continue
    }
    kept = append(kept, sc)
  }
  f.scenarios = kept
  return deleted, nil
}

func (f *fakeScenarioRepo) FullDeleteAll(ctx context.Context, tx *gorm.DB) (int64, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  deleted := int64(len(f.scenarios))
  f.scenarios = nil
  return deleted, nil
}

func (f *fakeScenarioRepo) countByDomain(domain string) int {
  f.mu.Lock()
  defer f.mu.Unlock()
  n := 0
  for _, sc := range f.scenarios {
    if sc.Domain == domain {
      n++
    }
  }
  return n
}

type fakePersonaAssignmentRepo struct {
  mu          sync.Mutex
  assignments []*types.PersonaAssignment
}

func (f *fakePersonaAssignmentRepo) Create(ctx context.Context, tx *gorm.DB, assignments []*types.PersonaAssignment) ([]*types.PersonaAssignment, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  for _, a := range assignments {
    if a.ID == uuid.Nil {
      a.ID = uuid.New()
    }
    f.assignments = append(f.assignments, a)
  }
  return assignments, nil
}

func (f *fakePersonaAssignmentRepo) GetByID(ctx context.Context, tx *gorm.DB, assignmentID uuid.UUID) (*types.PersonaAssignment, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  for _, a := range f.assignments {
    if a.ID == assignmentID {
      return a, nil
    }
  }
  return nil, gorm.ErrRecordNotFound
}

func (f *fakePersonaAssignmentRepo) ListActiveByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.PersonaAssignment, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  var out []*types.PersonaAssignment
  for _, a := range f.assignments {
    if a.UserID == userID && a.Status == types.AssignmentActive {
      out = append(out, a)
    }
  }
  return out, nil
}

func (f *fakePersonaAssignmentRepo) Deactivate(ctx context.Context, tx *gorm.DB, assignmentID uuid.UUID) error {
  f.mu.Lock()
  defer f.mu.Unlock()
  for _, a := range f.assignments {
    if a.ID == assignmentID {
      a.Status = types.AssignmentInactive
      return nil
    }
  }
  return gorm.ErrRecordNotFound
}

type fakeScenarioAssignmentRepo struct {
  mu          sync.Mutex
  assignments []*types.ScenarioAssignment
}

func (f *fakeScenarioAssignmentRepo) Create(ctx context.Context, tx *gorm.DB, assignments []*types.ScenarioAssignment) ([]*types.ScenarioAssignment, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  for _, a := range assignments {
    if a.ID == uuid.Nil {
      a.ID = uuid.New()
    }
    f.assignments = append(f.assignments, a)
  }
  return assignments, nil
}

func (f *fakeScenarioAssignmentRepo) GetByID(ctx context.Context, tx *gorm.DB, assignmentID uuid.UUID) (*types.ScenarioAssignment, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  for _, a := range f.assignments {
    if a.ID == assignmentID {
      return a, nil
    }
  }
  return nil, gorm.ErrRecordNotFound
}

func (f *fakeScenarioAssignmentRepo) ListActiveByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ScenarioAssignment, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  var out []*types.ScenarioAssignment
  for _, a := range f.assignments {
    if a.UserID == userID && a.Status == types.AssignmentActive {
      out = append(out, a)
    }
  }
  return out, nil
}

func (f *fakeScenarioAssignmentRepo) Deactivate(ctx context.Context, tx *gorm.DB, assignmentID uuid.UUID) error {
  f.mu.Lock()
  defer f.mu.Unlock()
  for _, a := range f.assignments {
    if a.ID == assignmentID {
      a.Status = types.AssignmentInactive
      return nil
    }
  }
  return gorm.ErrRecordNotFound
}

type fakeUserRepo struct {
  mu    sync.Mutex
  users []*types.User
}

func (f *fakeUserRepo) Create(ctx context.Context, tx *gorm.DB, user *types.User) (*types.User, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  if user.ID == uuid.Nil {
    user.ID = uuid.New()
  }
  f.users = append(f.users, user)
  return user, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  for _, u := range f.users {
    if u.ID == userID {
      return u, nil
    }
  }
  return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  for _, u := range f.users {
    if u.Email == email {
      return u, nil
    }
  }
  return nil, gorm.ErrRecordNotFound
}

type fakeAICallLogRepo struct {
  mu      sync.Mutex
  entries []*types.AICallLog
}

func (f *fakeAICallLogRepo) Create(ctx context.Context, tx *gorm.DB, entry *types.AICallLog) (*types.AICallLog, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  if entry.ID == uuid.Nil {
    entry.ID = uuid.New()
  }
  f.entries = append(f.entries, entry)
  return entry, nil
}
