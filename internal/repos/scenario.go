package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/kirdar-ai/kirdar-backend/internal/logger"
  "github.com/kirdar-ai/kirdar-backend/internal/types"
)

// ScenarioFilter narrows List queries. Zero-valued fields are ignored.
type ScenarioFilter struct {
  Domain      string
  Category    string
  SubCategory string
  Difficulty  string
  ActiveOnly  bool
}

type ScenarioRepo interface {
  Create(ctx context.Context, tx *gorm.DB, scenarios []*types.Scenario) ([]*types.Scenario, error)
  GetByID(ctx context.Context, tx *gorm.DB, scenarioID uuid.UUID) (*types.Scenario, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, scenarioIDs []uuid.UUID) ([]*types.Scenario, error)
  List(ctx context.Context, tx *gorm.DB, filter ScenarioFilter) ([]*types.Scenario, error)
  Update(ctx context.Context, tx *gorm.DB, scenario *types.Scenario) (*types.Scenario, error)
  Deactivate(ctx context.Context, tx *gorm.DB, scenarioID uuid.UUID) error
  FullDeleteByDomain(ctx context.Context, tx *gorm.DB, domain string) (int64, error)
  FullDeleteAll(ctx context.Context, tx *gorm.DB) (int64, error)
}

type scenarioRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewScenarioRepo(db *gorm.DB, baseLog *logger.Logger) ScenarioRepo {
  repoLog := baseLog.With("repo", "ScenarioRepo")
  return &scenarioRepo{db: db, log: repoLog}
}

func (r *scenarioRepo) Create(ctx context.Context, tx *gorm.DB, scenarios []*types.Scenario) ([]*types.Scenario, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(scenarios) == 0 {
    return []*types.Scenario{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&scenarios).Error; err != nil {
    return nil, err
  }
  return scenarios, nil
}

func (r *scenarioRepo) GetByID(ctx context.Context, tx *gorm.DB, scenarioID uuid.UUID) (*types.Scenario, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.Scenario
  if err := transaction.WithContext(ctx).
    Where("id = ?", scenarioID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (r *scenarioRepo) GetByIDs(ctx context.Context, tx *gorm.DB, scenarioIDs []uuid.UUID) ([]*types.Scenario, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Scenario
  if len(scenarioIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", scenarioIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *scenarioRepo) List(ctx context.Context, tx *gorm.DB, filter ScenarioFilter) ([]*types.Scenario, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  query := transaction.WithContext(ctx).Model(&types.Scenario{})
  if filter.Domain != "" {
    query = query.Where("domain = ?", filter.Domain)
  }
  if filter.Category != "" {
    query = query.Where("category = ?", filter.Category)
  }
  if filter.SubCategory != "" {
    query = query.Where("sub_category = ?", filter.SubCategory)
  }
  if filter.Difficulty != "" {
    query = query.Where("difficulty = ?", filter.Difficulty)
  }
  if filter.ActiveOnly {
    query = query.Where("is_active = ?", true)
  }

  var results []*types.Scenario
  if err := query.
    Order("domain, category, difficulty ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *scenarioRepo) Update(ctx context.Context, tx *gorm.DB, scenario *types.Scenario) (*types.Scenario, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if err := transaction.WithContext(ctx).Save(scenario).Error; err != nil {
    return nil, err
  }
  return scenario, nil
}

func (r *scenarioRepo) Deactivate(ctx context.Context, tx *gorm.DB, scenarioID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if err := transaction.WithContext(ctx).
    Model(&types.Scenario{}).
    Where("id = ?", scenarioID).
    Update("is_active", false).Error; err != nil {
    return err
  }
  return nil
}

func (r *scenarioRepo) FullDeleteByDomain(ctx context.Context, tx *gorm.DB, domain string) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  result := transaction.WithContext(ctx).
    Where("domain = ?", domain).
    Delete(&types.Scenario{})
  if result.Error != nil {
    return 0, result.Error
  }
  return result.RowsAffected, nil
}

func (r *scenarioRepo) FullDeleteAll(ctx context.Context, tx *gorm.DB) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  result := transaction.WithContext(ctx).
    Where("1 = 1").
    Delete(&types.Scenario{})
  if result.Error != nil {
    return 0, result.Error
  }
  return result.RowsAffected, nil
}
