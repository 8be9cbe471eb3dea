package repos

import (
  "context"
  "gorm.io/gorm"
  "github.com/yungbote/ingredient-copilot-backend/internal/logger"
  "github.com/yungbote/ingredient-copilot-backend/internal/types"
)

type AICallLogRepo interface {
  Create(ctx context.Context, tx *gorm.DB, logs []*types.AICallLog) ([]*types.AICallLog, error)
}

type aiCallLogRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewAICallLogRepo(db *gorm.DB, baseLog *logger.Logger) AICallLogRepo {
  repoLog := baseLog.With("repo", "AICallLogRepo")
  return &aiCallLogRepo{db: db, log: repoLog}
}

func (alr *aiCallLogRepo) Create(ctx context.Context, tx *gorm.DB, logs []*types.AICallLog) ([]*types.AICallLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = alr.db
  }

  if len(logs) == 0 {
    return []*types.AICallLog{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&logs).Error; err != nil {
    return nil, err
  }

  return logs, nil
}
