package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/yungbote/ingredient-copilot-backend/internal/logger"
  "github.com/yungbote/ingredient-copilot-backend/internal/types"
)

type ProfileRepo interface {
  GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.Profile, error)
  Upsert(ctx context.Context, tx *gorm.DB, profile *types.Profile) (*types.Profile, error)
}

type profileRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewProfileRepo(db *gorm.DB, baseLog *logger.Logger) ProfileRepo {
  repoLog := baseLog.With("repo", "ProfileRepo")
  return &profileRepo{db: db, log: repoLog}
}

func (pr *profileRepo) GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.Profile, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Profile
  if len(userIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id IN ?", userIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (pr *profileRepo) Upsert(ctx context.Context, tx *gorm.DB, profile *types.Profile) (*types.Profile, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  if err := transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns:   []clause.Column{{Name: "user_id"}},
      DoUpdates: clause.AssignmentColumns([]string{"display_name", "health_concerns", "updated_at"}),
    }).
    Create(profile).Error; err != nil {
    return nil, err
  }
  return profile, nil
}
