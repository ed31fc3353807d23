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

// ScenarioInput is one manually supplied scenario (admin create or bulk).
type ScenarioInput struct {
  Title         string   `json:"title"`
  Domain        string   `json:"domain"`
  Category      string   `json:"category"`
  SubCategory   string   `json:"subCategory"`
  Description   string   `json:"description"`
  Difficulty    string   `json:"difficulty"`
  Objectives    []string `json:"objectives"`
  EstimatedTime string   `json:"estimatedTime"`
  KeyPoints     []string `json:"keyPoints"`
}

type ScenarioUpdate struct {
  Title         *string   `json:"title"`
  Category      *string   `json:"category"`
  SubCategory   *string   `json:"subCategory"`
  Description   *string   `json:"description"`
  Difficulty    *string   `json:"difficulty"`
  Objectives    *[]string `json:"objectives"`
  EstimatedTime *string   `json:"estimatedTime"`
  KeyPoints     *[]string `json:"keyPoints"`
}

type ScenarioGenerateResult struct {
  Scenarios []*types.Scenario `json:"scenarios"`
  Rejected  []string          `json:"rejected,omitempty"`
}

type ScenarioService interface {
  Generate(ctx context.Context, userID uuid.UUID, domainID string, opts GenerateOptions) (*ScenarioGenerateResult, error)
  Create(ctx context.Context, userID uuid.UUID, input ScenarioInput) (*types.Scenario, error)
  CreateBulk(ctx context.Context, userID uuid.UUID, inputs []ScenarioInput) ([]BulkRecordResult, error)
  List(ctx context.Context, userID uuid.UUID, isAdmin bool, filter repos.ScenarioFilter) ([]*types.Scenario, error)
  Update(ctx context.Context, scenarioID uuid.UUID, update ScenarioUpdate) (*types.Scenario, error)
  SoftDelete(ctx context.Context, scenarioID uuid.UUID) error
  Reset(ctx context.Context, userID uuid.UUID, domainID string) ([]*types.Scenario, error)
  Refresh(ctx context.Context, userID uuid.UUID, domainID string, opts GenerateOptions) (*ScenarioGenerateResult, error)
}

type scenarioService struct {
  log            *logger.Logger
  scenarioRepo   repos.ScenarioRepo
  assignmentRepo repos.ScenarioAssignmentRepo
  aiCallLogRepo  repos.AICallLogRepo
  ai             OpenAIClient
  locks          *domainLocks
}

func NewScenarioService(
  scenarioRepo repos.ScenarioRepo,
  assignmentRepo repos.ScenarioAssignmentRepo,
  aiCallLogRepo repos.AICallLogRepo,
  ai OpenAIClient,
  baseLog *logger.Logger,
) ScenarioService {
  serviceLog := baseLog.With("service", "ScenarioService")
  return &scenarioService{
    log:            serviceLog,
    scenarioRepo:   scenarioRepo,
    assignmentRepo: assignmentRepo,
    aiCallLogRepo:  aiCallLogRepo,
    ai:             ai,
    locks:          newDomainLocks(),
  }
}

func (s *scenarioService) generateBatch(ctx context.Context, userID uuid.UUID, cfg domain.Domain, opts GenerateOptions) (*ScenarioGenerateResult, error) {
  system, user, err := ComposeScenarioPrompts(cfg, opts)
  if err != nil {
    return nil, err
  }

  started := time.Now()
  raw, callErr := s.ai.Complete(ctx, system, user, ProfileBulkGeneration)
  auditAICall(ctx, s.aiCallLogRepo, s.log, userID, ProfileBulkGeneration, cfg.ID, started, callErr)
  if callErr != nil {
    return nil, callErr
  }

  valid, rejected, err := ParseScenarioBatch(raw, cfg)
  if err != nil {
    return nil, err
  }
  if len(rejected) > 0 {
    s.log.Warn("Scenario batch partially rejected",
      "domain", cfg.ID,
      "accepted", len(valid),
      "rejected", len(rejected),
    )
  }

  for _, sc := range valid {
    if sc.Category == "" {
      sc.Category = opts.Category
    }
    if sc.SubCategory == "" {
      sc.SubCategory = opts.SubCategory
    }
    sc.CreatedBy = userID
    sc.IsActive = true
  }
  return &ScenarioGenerateResult{Scenarios: valid, Rejected: rejected}, nil
}

func (s *scenarioService) Generate(ctx context.Context, userID uuid.UUID, domainID string, opts GenerateOptions) (*ScenarioGenerateResult, error) {
  cfg, err := domain.Get(domainID)
  if err != nil {
    return nil, err
  }

  result, err := s.generateBatch(ctx, userID, cfg, opts)
  if err != nil {
    return nil, err
  }

  saved, err := s.scenarioRepo.Create(ctx, nil, result.Scenarios)
  if err != nil {
    return nil, err
  }
  result.Scenarios = saved

  s.log.Info("Generated scenarios",
    "domain", domainID,
    "requested", opts.Count,
    "saved", len(saved),
    "rejected", len(result.Rejected),
  )
  return result, nil
}

func validateScenarioInput(in ScenarioInput) (domain.Domain, error) {
  cfg, err := domain.Get(in.Domain)
  if err != nil {
    return domain.Domain{}, err
  }
  return cfg, checkScenario(rawScenario{
    Title:         in.Title,
    Category:      in.Category,
    SubCategory:   in.SubCategory,
    Description:   in.Description,
    Difficulty:    in.Difficulty,
    Objectives:    in.Objectives,
    EstimatedTime: in.EstimatedTime,
    KeyPoints:     in.KeyPoints,
  }, cfg)
}

func scenarioFromInput(in ScenarioInput, userID uuid.UUID) (*types.Scenario, error) {
  objectives, err := json.Marshal(in.Objectives)
  if err != nil {
    return nil, err
  }
  var keyPoints datatypes.JSON
  if len(in.KeyPoints) > 0 {
    encoded, err := json.Marshal(in.KeyPoints)
    if err != nil {
      return nil, err
    }
    keyPoints = datatypes.JSON(encoded)
  }
  return &types.Scenario{
    Title:         in.Title,
    Domain:        in.Domain,
    Category:      in.Category,
    SubCategory:   in.SubCategory,
    Description:   in.Description,
    Difficulty:    in.Difficulty,
    Objectives:    datatypes.JSON(objectives),
    EstimatedTime: in.EstimatedTime,
    KeyPoints:     keyPoints,
    CreatedBy:     userID,
    IsActive:      true,
  }, nil
}

func (s *scenarioService) Create(ctx context.Context, userID uuid.UUID, input ScenarioInput) (*types.Scenario, error) {
  if _, err := validateScenarioInput(input); err != nil {
    return nil, err
  }
  scenario, err := scenarioFromInput(input, userID)
  if err != nil {
    return nil, err
  }
  saved, err := s.scenarioRepo.Create(ctx, nil, []*types.Scenario{scenario})
  if err != nil {
    return nil, err
  }
  return saved[0], nil
}

func (s *scenarioService) CreateBulk(ctx context.Context, userID uuid.UUID, inputs []ScenarioInput) ([]BulkRecordResult, error) {
  if len(inputs) == 0 {
    return []BulkRecordResult{}, nil
  }
  if len(inputs) > MaxBatchSize {
    return nil, apierr.LimitExceeded("bulk create accepts at most %d scenarios, got %d", MaxBatchSize, len(inputs))
  }

  results := make([]BulkRecordResult, len(inputs))
  group, groupCtx := errgroup.WithContext(ctx)
  group.SetLimit(4)

  for i, in := range inputs {
    i, in := i, in
    group.Go(func() error {
      results[i] = BulkRecordResult{Index: i}

      if _, err := validateScenarioInput(in); err != nil {
        results[i].Error = err.Error()
        return nil
      }
      scenario, err := scenarioFromInput(in, userID)
      if err != nil {
        results[i].Error = err.Error()
        return nil
      }
      if _, err := s.scenarioRepo.Create(groupCtx, nil, []*types.Scenario{scenario}); err != nil {
        results[i].Error = err.Error()
        return nil
      }
      results[i].ID = scenario.ID
      return nil
    })
  }

  if err := group.Wait(); err != nil {
    return nil, err
  }
  return results, nil
}

func (s *scenarioService) List(ctx context.Context, userID uuid.UUID, isAdmin bool, filter repos.ScenarioFilter) ([]*types.Scenario, error) {
  filter.ActiveOnly = true
  scenarios, err := s.scenarioRepo.List(ctx, nil, filter)
  if err != nil {
    return nil, err
  }
  if isAdmin {
    return scenarios, nil
  }

  assignments, err := s.assignmentRepo.ListActiveByUser(ctx, nil, userID)
  if err != nil {
    return nil, err
  }
  assigned := make(map[uuid.UUID]bool, len(assignments))
  for _, a := range assignments {
    assigned[a.ScenarioID] = true
  }

  visible := scenarios[:0]
  for _, sc := range scenarios {
    if assigned[sc.ID] {
      visible = append(visible, sc)
    }
  }
  return visible, nil
}

func (s *scenarioService) Update(ctx context.Context, scenarioID uuid.UUID, update ScenarioUpdate) (*types.Scenario, error) {
  scenario, err := s.scenarioRepo.GetByID(ctx, nil, scenarioID)
  if err != nil {
    return nil, apierr.NotFound(fmt.Errorf("scenario %s: %w", scenarioID, err))
  }

  if update.Title != nil {
    scenario.Title = *update.Title
  }
  if update.Category != nil {
    scenario.Category = *update.Category
  }
  if update.SubCategory != nil {
    scenario.SubCategory = *update.SubCategory
  }
  if update.Description != nil {
    scenario.Description = *update.Description
  }
  if update.Difficulty != nil {
    scenario.Difficulty = *update.Difficulty
  }
  if update.Objectives != nil {
    encoded, err := json.Marshal(*update.Objectives)
    if err != nil {
      return nil, err
    }
    scenario.Objectives = datatypes.JSON(encoded)
  }
  if update.EstimatedTime != nil {
    scenario.EstimatedTime = *update.EstimatedTime
  }
  if update.KeyPoints != nil {
    encoded, err := json.Marshal(*update.KeyPoints)
    if err != nil {
      return nil, err
    }
    scenario.KeyPoints = datatypes.JSON(encoded)
  }

  cfg, err := domain.Get(scenario.Domain)
  if err != nil {
    return nil, err
  }
  if !cfg.ValidCategory(scenario.Category) {
    return nil, apierr.New(400, apierr.KindUnknownDomain, fmt.Errorf("category %q is not registered for domain %q", scenario.Category, scenario.Domain))
  }
  if !validDifficulty(scenario.Difficulty) {
    return nil, apierr.New(400, apierr.KindMalformedResponse, fmt.Errorf("invalid difficulty %q", scenario.Difficulty))
  }

  return s.scenarioRepo.Update(ctx, nil, scenario)
}

func (s *scenarioService) SoftDelete(ctx context.Context, scenarioID uuid.UUID) error {
  if _, err := s.scenarioRepo.GetByID(ctx, nil, scenarioID); err != nil {
    return apierr.NotFound(fmt.Errorf("scenario %s: %w", scenarioID, err))
  }
  return s.scenarioRepo.Deactivate(ctx, nil, scenarioID)
}

func seedToScenario(seed domain.SeedScenario, userID uuid.UUID) *types.Scenario {
  objectives, _ := json.Marshal(seed.Objectives)
  return &types.Scenario{
    Title:         seed.Title,
    Domain:        seed.Domain,
    Category:      seed.Category,
    SubCategory:   seed.SubCategory,
    Description:   seed.Description,
    Difficulty:    seed.Difficulty,
    Objectives:    datatypes.JSON(objectives),
    EstimatedTime: seed.EstimatedTime,
    CreatedBy:     userID,
    IsActive:      true,
  }
}

func (s *scenarioService) Reset(ctx context.Context, userID uuid.UUID, domainID string) ([]*types.Scenario, error) {
  if domainID != "" {
    if _, err := domain.Get(domainID); err != nil {
      return nil, err
    }
  }

  unlock := s.locks.lock("scenario", domainID)
  defer unlock()

  var deleted int64
  var err error
  if domainID == "" {
    deleted, err = s.scenarioRepo.FullDeleteAll(ctx, nil)
  } else {
    deleted, err = s.scenarioRepo.FullDeleteByDomain(ctx, nil, domainID)
  }
  if err != nil {
    return nil, err
  }

  seeds := domain.SeedScenarios(domainID)
  scenarios := make([]*types.Scenario, 0, len(seeds))
  for _, seed := range seeds {
    scenarios = append(scenarios, seedToScenario(seed, userID))
  }
  saved, err := s.scenarioRepo.Create(ctx, nil, scenarios)
  if err != nil {
    return nil, err
  }

  s.log.Info("Reset scenarios", "domain", domainID, "deleted", deleted, "seeded", len(saved))
  return saved, nil
}

func (s *scenarioService) Refresh(ctx context.Context, userID uuid.UUID, domainID string, opts GenerateOptions) (*ScenarioGenerateResult, error) {
  cfg, err := domain.Get(domainID)
  if err != nil {
    return nil, err
  }
  if opts.Count == 0 {
    opts.Count = 5
  }

  unlock := s.locks.lock("scenario", domainID)
  defer unlock()

  deleted, err := s.scenarioRepo.FullDeleteByDomain(ctx, nil, domainID)
  if err != nil {
    return nil, err
  }
  s.log.Info("Refresh deleted existing scenarios", "domain", domainID, "deleted", deleted)

  result, err := s.generateBatch(ctx, userID, cfg, opts)
  if err != nil {
    return nil, apierr.RefreshIncomplete(domainID, err)
  }

  saved, err := s.scenarioRepo.Create(ctx, nil, result.Scenarios)
  if err != nil {
    return nil, apierr.RefreshIncomplete(domainID, err)
  }
  result.Scenarios = saved

  s.log.Info("Refreshed scenarios", "domain", domainID, "saved", len(saved), "rejected", len(result.Rejected))
  return result, nil
}
