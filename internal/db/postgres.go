package db

import (
  "fmt"
  "gorm.io/driver/postgres"
  "gorm.io/gorm"
  "github.com/kirdar-ai/kirdar-backend/internal/types"
  "github.com/kirdar-ai/kirdar-backend/internal/utils"
  "github.com/kirdar-ai/kirdar-backend/internal/logger"
)

type PostgresService struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
  serviceLog := log.With("service", "PostgresService")

  log.Info("Loading environment variables...")
  postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
  postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
  postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
  postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
  postgresName := utils.GetEnv("POSTGRES_NAME", "kirdar", log)
  log.Debug("Environment variables loaded")

  dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

  log.Info("Connecting to Postgres...")
  db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
  })
  if err != nil {
    log.Error("Failed to connect to Postgres", "error", err)
    return nil, fmt.Errorf("Failed to connect to Postgres: %w", err)
  }

  if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
    log.Error("Failed to enable uuid-ossp extension", "error", err)
    return nil, fmt.Errorf("Failed to enable uuid-ossp extension: %w", err)
  }
  log.Info("uuid-ossp extension enabled")

  return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
  s.log.Info("Auto migrating postgres tables...")
  err := s.db.AutoMigrate(
    &types.User{},
    &types.Persona{},
    &types.Scenario{},
    &types.PersonaAssignment{},
    &types.ScenarioAssignment{},
    &types.AICallLog{},
  )
  if err != nil {
    s.log.Error("Auto migration failed for postgres tables", "error", err)
    return err
  }
  s.log.Info("Configuring foreign key relationships for postgres tables...")
  if err := s.ensureUserForeignKey("persona_assignment", "fk_persona_assignment_user_id"); err != nil {
    return err
  }
  if err := s.ensureUserForeignKey("scenario_assignment", "fk_scenario_assignment_user_id"); err != nil {
    return err
  }
  return nil
}

// ensureUserForeignKey adds the user_id cascade constraint only when it does
// not exist yet, so repeated boots against a migrated database succeed.
func (s *PostgresService) ensureUserForeignKey(table, constraint string) error {
  var count int64
  if err := s.db.Raw(`SELECT COUNT(1) FROM pg_constraint WHERE conname = ?`, constraint).Scan(&count).Error; err != nil {
    return fmt.Errorf("Failed to check constraint %s: %w", constraint, err)
  }
  if count > 0 {
    return nil
  }
  stmt := fmt.Sprintf(`
    ALTER TABLE %q
    ADD CONSTRAINT %q
    FOREIGN KEY ("user_id")
    REFERENCES "user"("id")
    ON DELETE CASCADE
  `, table, constraint)
  if err := s.db.Exec(stmt).Error; err != nil {
    return fmt.Errorf("Failed to add %s: %w", constraint, err)
  }
  return nil
}

func (s *PostgresService) DB() *gorm.DB {
  return s.db
}
