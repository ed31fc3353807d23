package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/kirdar-ai/kirdar-backend/internal/logger"
  "github.com/kirdar-ai/kirdar-backend/internal/types"
)

// PersonaFilter narrows List queries. Zero-valued fields are ignored.
type PersonaFilter struct {
  Domain     string
  Category   string
  ActiveOnly bool
}

type PersonaRepo interface {
  Create(ctx context.Context, tx *gorm.DB, personas []*types.Persona) ([]*types.Persona, error)
  GetByID(ctx context.Context, tx *gorm.DB, personaID uuid.UUID) (*types.Persona, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, personaIDs []uuid.UUID) ([]*types.Persona, error)
  List(ctx context.Context, tx *gorm.DB, filter PersonaFilter) ([]*types.Persona, error)
  Update(ctx context.Context, tx *gorm.DB, persona *types.Persona) (*types.Persona, error)
  Deactivate(ctx context.Context, tx *gorm.DB, personaID uuid.UUID) error
  FullDeleteByDomain(ctx context.Context, tx *gorm.DB, domain string) (int64, error)
  FullDeleteAll(ctx context.Context, tx *gorm.DB) (int64, error)
}

type personaRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPersonaRepo(db *gorm.DB, baseLog *logger.Logger) PersonaRepo {
  repoLog := baseLog.With("repo", "PersonaRepo")
  return &personaRepo{db: db, log: repoLog}
}

func (r *personaRepo) Create(ctx context.Context, tx *gorm.DB, personas []*types.Persona) ([]*types.Persona, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(personas) == 0 {
    return []*types.Persona{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&personas).Error; err != nil {
    return nil, err
  }
  return personas, nil
}

func (r *personaRepo) GetByID(ctx context.Context, tx *gorm.DB, personaID uuid.UUID) (*types.Persona, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.Persona
  if err := transaction.WithContext(ctx).
    Where("id = ?", personaID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (r *personaRepo) GetByIDs(ctx context.Context, tx *gorm.DB, personaIDs []uuid.UUID) ([]*types.Persona, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Persona
  if len(personaIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", personaIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *personaRepo) List(ctx context.Context, tx *gorm.DB, filter PersonaFilter) ([]*types.Persona, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  query := transaction.WithContext(ctx).Model(&types.Persona{})
  if filter.Domain != "" {
    query = query.Where("domain = ?", filter.Domain)
  }
  if filter.Category != "" {
    query = query.Where("category = ?", filter.Category)
  }
  if filter.ActiveOnly {
    query = query.Where("is_active = ?", true)
  }

  var results []*types.Persona
  if err := query.
    Order("domain, category, knowledge_level ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *personaRepo) Update(ctx context.Context, tx *gorm.DB, persona *types.Persona) (*types.Persona, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if err := transaction.WithContext(ctx).Save(persona).Error; err != nil {
    return nil, err
  }
  return persona, nil
}

func (r *personaRepo) Deactivate(ctx context.Context, tx *gorm.DB, personaID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if err := transaction.WithContext(ctx).
    Model(&types.Persona{}).
    Where("id = ?", personaID).
    Update("is_active", false).Error; err != nil {
    return err
  }
  return nil
}

func (r *personaRepo) FullDeleteByDomain(ctx context.Context, tx *gorm.DB, domain string) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  result := transaction.WithContext(ctx).
    Where("domain = ?", domain).
    Delete(&types.Persona{})
  if result.Error != nil {
    return 0, result.Error
  }
  return result.RowsAffected, nil
}

func (r *personaRepo) FullDeleteAll(ctx context.Context, tx *gorm.DB) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  result := transaction.WithContext(ctx).
    Where("1 = 1").
    Delete(&types.Persona{})
  if result.Error != nil {
    return 0, result.Error
  }
  return result.RowsAffected, nil
}
