package services

import (
  "context"
  "encoding/json"
  "fmt"
  "time"

  "github.com/google/uuid"
  "golang.org/x/sync/errgroup"
  "gorm.io/datatypes"

  "github.com/kirdar-ai/kirdar-backend/internal/apierr"
  "github.com/kirdar-ai/kirdar-backend/internal/domain"
  "github.com/kirdar-ai/kirdar-backend/internal/logger"
  "github.com/kirdar-ai/kirdar-backend/internal/repos"
  "github.com/kirdar-ai/kirdar-backend/internal/types"
)

// PersonaInput is one manually supplied persona in an admin bulk create.
type PersonaInput struct {
  Name           string            `json:"name"`
  Domain         string            `json:"domain"`
  Category       string            `json:"category"`
  Age            int               `json:"age"`
  Goals          string            `json:"goals"`
  Concerns       string            `json:"concerns"`
  KnowledgeLevel string            `json:"knowledgeLevel"`
  DomainFields   map[string]string `json:"domainFields"`
}

// PersonaUpdate carries the admin-editable fields. Nil pointers are left
// untouched.
type PersonaUpdate struct {
  Name           *string            `json:"name"`
  Category       *string            `json:"category"`
  Age            *int               `json:"age"`
  Goals          *string            `json:"goals"`
  Concerns       *string            `json:"concerns"`
  KnowledgeLevel *string            `json:"knowledgeLevel"`
  DomainFields   *map[string]string `json:"domainFields"`
}

// BulkRecordResult reports the outcome of one record in a bulk create. The
// batch never collapses to a single pass/fail.
type BulkRecordResult struct {
  Index int       `json:"index"`
  ID    uuid.UUID `json:"id,omitempty"`
  Error string    `json:"error,omitempty"`
}

// GenerateResult is the outcome of one AI generation batch: what survived
// validation plus the reason string for every dropped element.
type PersonaGenerateResult struct {
  Personas []*types.Persona `json:"personas"`
  Rejected []string         `json:"rejected,omitempty"`
}

type PersonaService interface {
  Generate(ctx context.Context, userID uuid.UUID, domainID string, opts GenerateOptions) (*PersonaGenerateResult, error)
  CreateBulk(ctx context.Context, userID uuid.UUID, inputs []PersonaInput) ([]BulkRecordResult, error)
  List(ctx context.Context, userID uuid.UUID, isAdmin bool, filter repos.PersonaFilter) ([]*types.Persona, error)
  Update(ctx context.Context, personaID uuid.UUID, update PersonaUpdate) (*types.Persona, error)
  SoftDelete(ctx context.Context, personaID uuid.UUID) error
  Reset(ctx context.Context, userID uuid.UUID, domainID string) ([]*types.Persona, error)
  Refresh(ctx context.Context, userID uuid.UUID, domainID string, opts GenerateOptions) (*PersonaGenerateResult, error)
}

type personaService struct {
  log            *logger.Logger
  personaRepo    repos.PersonaRepo
  assignmentRepo repos.PersonaAssignmentRepo
  aiCallLogRepo  repos.AICallLogRepo
  ai             OpenAIClient
  locks          *domainLocks
}

func NewPersonaService(
  personaRepo repos.PersonaRepo,
  assignmentRepo repos.PersonaAssignmentRepo,
  aiCallLogRepo repos.AICallLogRepo,
  ai OpenAIClient,
  baseLog *logger.Logger,
) PersonaService {
  serviceLog := baseLog.With("service", "PersonaService")
  return &personaService{
    log:            serviceLog,
    personaRepo:    personaRepo,
    assignmentRepo: assignmentRepo,
    aiCallLogRepo:  aiCallLogRepo,
    ai:             ai,
    locks:          newDomainLocks(),
  }
}

// generateBatch runs compose -> model -> validate -> stamp for one batch and
// returns the validated personas without persisting them.
func (s *personaService) generateBatch(ctx context.Context, userID uuid.UUID, cfg domain.Domain, opts GenerateOptions) (*PersonaGenerateResult, error) {
  system, user, err := ComposePersonaPrompts(cfg, opts)
  if err != nil {
    return nil, err
  }

  started := time.Now()
  raw, callErr := s.ai.Complete(ctx, system, user, ProfileBulkGeneration)
  auditAICall(ctx, s.aiCallLogRepo, s.log, userID, ProfileBulkGeneration, cfg.ID, started, callErr)
  if callErr != nil {
    return nil, callErr
  }

  valid, rejected, err := ParsePersonaBatch(raw, cfg)
  if err != nil {
    return nil, err
  }
  if len(rejected) > 0 {
    s.log.Warn("Persona batch partially rejected",
      "domain", cfg.ID,
      "accepted", len(valid),
      "rejected", len(rejected),
    )
  }

  for _, p := range valid {
    p.Category = opts.Category
    p.CreatedBy = userID
    p.IsActive = true
  }
  return &PersonaGenerateResult{Personas: valid, Rejected: rejected}, nil
}

func (s *personaService) Generate(ctx context.Context, userID uuid.UUID, domainID string, opts GenerateOptions) (*PersonaGenerateResult, error) {
  cfg, err := domain.Get(domainID)
  if err != nil {
    return nil, err
  }

  result, err := s.generateBatch(ctx, userID, cfg, opts)
  if err != nil {
    return nil, err
  }

  saved, err := s.personaRepo.Create(ctx, nil, result.Personas)
  if err != nil {
    return nil, err
  }
  result.Personas = saved

  s.log.Info("Generated personas",
    "domain", domainID,
    "requested", opts.Count,
    "saved", len(saved),
    "rejected", len(result.Rejected),
  )
  return result, nil
}

func validatePersonaInput(in PersonaInput) error {
  cfg, err := domain.Get(in.Domain)
  if err != nil {
    return err
  }
  if !cfg.ValidCategory(in.Category) {
    return fmt.Errorf("category %q is not registered for domain %q", in.Category, in.Domain)
  }
  return checkPersona(rawPersona{
    Name:           in.Name,
    Age:            in.Age,
    KnowledgeLevel: in.KnowledgeLevel,
    Goals:          in.Goals,
    Concerns:       in.Concerns,
    DomainFields:   in.DomainFields,
  }, cfg)
}

func (s *personaService) CreateBulk(ctx context.Context, userID uuid.UUID, inputs []PersonaInput) ([]BulkRecordResult, error) {
  if len(inputs) == 0 {
    return []BulkRecordResult{}, nil
  }
  if len(inputs) > MaxBatchSize {
    return nil, apierr.LimitExceeded("bulk create accepts at most %d personas, got %d", MaxBatchSize, len(inputs))
  }

  results := make([]BulkRecordResult, len(inputs))
  group, groupCtx := errgroup.WithContext(ctx)
  group.SetLimit(4)

  for i, in := range inputs {
    i, in := i, in
    group.Go(func() error {
      results[i] = BulkRecordResult{Index: i}

      if err := validatePersonaInput(in); err != nil {
        results[i].Error = err.Error()
        return nil
      }

      var fields datatypes.JSON
      if len(in.DomainFields) > 0 {
        encoded, err := json.Marshal(in.DomainFields)
        if err != nil {
          results[i].Error = err.Error()
          return nil
        }
        fields = datatypes.JSON(encoded)
      }

      persona := &types.Persona{
        Name:           in.Name,
        Domain:         in.Domain,
        Category:       in.Category,
        Age:            in.Age,
        Goals:          in.Goals,
        Concerns:       in.Concerns,
        KnowledgeLevel: in.KnowledgeLevel,
        DomainFields:   fields,
        CreatedBy:      userID,
        IsActive:       true,
      }
      if _, err := s.personaRepo.Create(groupCtx, nil, []*types.Persona{persona}); err != nil {
        results[i].Error = err.Error()
        return nil
      }
      results[i].ID = persona.ID
      return nil
    })
  }

  if err := group.Wait(); err != nil {
    return nil, err
  }
  return results, nil
}

func (s *personaService) List(ctx context.Context, userID uuid.UUID, isAdmin bool, filter repos.PersonaFilter) ([]*types.Persona, error) {
  filter.ActiveOnly = true
  personas, err := s.personaRepo.List(ctx, nil, filter)
  if err != nil {
    return nil, err
  }
  if isAdmin {
    return personas, nil
  }

  assignments, err := s.assignmentRepo.ListActiveByUser(ctx, nil, userID)
  if err != nil {
    return nil, err
  }
  assigned := make(map[uuid.UUID]bool, len(assignments))
  for _, a := range assignments {
    assigned[a.PersonaID] = true
  }

  // Filter in place so store ordering survives.
  visible := personas[:0]
  for _, p := range personas {
    if assigned[p.ID] {
      visible = append(visible, p)
    }
  }
  return visible, nil
}

func (s *personaService) Update(ctx context.Context, personaID uuid.UUID, update PersonaUpdate) (*types.Persona, error) {
  persona, err := s.personaRepo.GetByID(ctx, nil, personaID)
  if err != nil {
    return nil, apierr.NotFound(fmt.Errorf("persona %s: %w", personaID, err))
  }

  if update.Name != nil {
    persona.Name = *update.Name
  }
  if update.Category != nil {
    persona.Category = *update.Category
  }
  if update.Age != nil {
    persona.Age = *update.Age
  }
  if update.Goals != nil {
    persona.Goals = *update.Goals
  }
  if update.Concerns != nil {
    persona.Concerns = *update.Concerns
  }
  if update.KnowledgeLevel != nil {
    persona.KnowledgeLevel = *update.KnowledgeLevel
  }
  if update.DomainFields != nil {
    encoded, err := json.Marshal(*update.DomainFields)
    if err != nil {
      return nil, err
    }
    persona.DomainFields = datatypes.JSON(encoded)
  }

  cfg, err := domain.Get(persona.Domain)
  if err != nil {
    return nil, err
  }
  if !cfg.ValidCategory(persona.Category) {
    return nil, apierr.New(400, apierr.KindUnknownDomain, fmt.Errorf("category %q is not registered for domain %q", persona.Category, persona.Domain))
  }
  if !validKnowledgeLevel(persona.KnowledgeLevel) {
    return nil, apierr.New(400, apierr.KindMalformedResponse, fmt.Errorf("invalid knowledgeLevel %q", persona.KnowledgeLevel))
  }
  if persona.Age < types.PersonaAgeMin || persona.Age > types.PersonaAgeMax {
    return nil, apierr.New(400, apierr.KindMalformedResponse, fmt.Errorf("age %d outside [%d,%d]", persona.Age, types.PersonaAgeMin, types.PersonaAgeMax))
  }

  return s.personaRepo.Update(ctx, nil, persona)
}

func (s *personaService) SoftDelete(ctx context.Context, personaID uuid.UUID) error {
  if _, err := s.personaRepo.GetByID(ctx, nil, personaID); err != nil {
    return apierr.NotFound(fmt.Errorf("persona %s: %w", personaID, err))
  }
  return s.personaRepo.Deactivate(ctx, nil, personaID)
}

func seedToPersona(seed domain.SeedPersona, userID uuid.UUID) *types.Persona {
  var fields datatypes.JSON
  if len(seed.DomainFields) > 0 {
    if encoded, err := json.Marshal(seed.DomainFields); err == nil {
      fields = datatypes.JSON(encoded)
    }
  }
  return &types.Persona{
    Name:           seed.Name,
    Domain:         seed.Domain,
    Category:       seed.Category,
    Age:            seed.Age,
    Goals:          seed.Goals,
    Concerns:       seed.Concerns,
    KnowledgeLevel: seed.KnowledgeLevel,
    DomainFields:   fields,
    CreatedBy:      userID,
    IsActive:       true,
  }
}

// Reset wipes personas (one domain, or everything when domainID is empty)
// and reinstates the seed set. Concurrent resets of the same domain
// serialize on the domain lock.
func (s *personaService) Reset(ctx context.Context, userID uuid.UUID, domainID string) ([]*types.Persona, error) {
  if domainID != "" {
    if _, err := domain.Get(domainID); err != nil {
      return nil, err
    }
  }

  unlock := s.locks.lock("persona", domainID)
  defer unlock()

  var deleted int64
  var err error
  if domainID == "" {
    deleted, err = s.personaRepo.FullDeleteAll(ctx, nil)
  } else {
    deleted, err = s.personaRepo.FullDeleteByDomain(ctx, nil, domainID)
  }
  if err != nil {
    return nil, err
  }

  seeds := domain.SeedPersonas(domainID)
  personas := make([]*types.Persona, 0, len(seeds))
  for _, seed := range seeds {
    personas = append(personas, seedToPersona(seed, userID))
  }
  saved, err := s.personaRepo.Create(ctx, nil, personas)
  if err != nil {
    return nil, err
  }

  s.log.Info("Reset personas", "domain", domainID, "deleted", deleted, "seeded", len(saved))
  return saved, nil
}

// Refresh replaces a domain's personas with a freshly generated batch. The
// delete happens before generation, so a failed generation leaves the domain
// empty; that state is reported as refresh_incomplete rather than papered
// over.
func (s *personaService) Refresh(ctx context.Context, userID uuid.UUID, domainID string, opts GenerateOptions) (*PersonaGenerateResult, error) {
  cfg, err := domain.Get(domainID)
  if err != nil {
    return nil, err
  }
  if opts.Count == 0 {
    opts.Count = 5
  }

  unlock := s.locks.lock("persona", domainID)
  defer unlock()

  deleted, err := s.personaRepo.FullDeleteByDomain(ctx, nil, domainID)
  if err != nil {
    return nil, err
  }
  s.log.Info("Refresh deleted existing personas", "domain", domainID, "deleted", deleted)

  result, err := s.generateBatch(ctx, userID, cfg, opts)
  if err != nil {
    return nil, apierr.RefreshIncomplete(domainID, err)
  }

  saved, err := s.personaRepo.Create(ctx, nil, result.Personas)
  if err != nil {
    return nil, apierr.RefreshIncomplete(domainID, err)
  }
  result.Personas = saved

  s.log.Info("Refreshed personas", "domain", domainID, "saved", len(saved), "rejected", len(result.Rejected))
  return result, nil
}
