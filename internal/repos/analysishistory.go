package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/ingredient-copilot-backend/internal/logger"
  "github.com/yungbote/ingredient-copilot-backend/internal/types"
)

type AnalysisHistoryRepo interface {
  Create(ctx context.Context, tx *gorm.DB, entries []*types.AnalysisHistory) ([]*types.AnalysisHistory, error)
  GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.AnalysisHistory, error)
  FullDeleteByIDForUser(ctx context.Context, tx *gorm.DB, entryID uuid.UUID, userID uuid.UUID) (int64, error)
}

type analysisHistoryRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewAnalysisHistoryRepo(db *gorm.DB, baseLog *logger.Logger) AnalysisHistoryRepo {
  repoLog := baseLog.With("repo", "AnalysisHistoryRepo")
  return &analysisHistoryRepo{db: db, log: repoLog}
}

func (ahr *analysisHistoryRepo) Create(ctx context.Context, tx *gorm.DB, entries []*types.AnalysisHistory) ([]*types.AnalysisHistory, error) {
  transaction := tx
  if transaction == nil {
    transaction = ahr.db
  }

  if len(entries) == 0 {
    return []*types.AnalysisHistory{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&entries).Error; err != nil {
    return nil, err
  }

  return entries, nil
}

func (ahr *analysisHistoryRepo) GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.AnalysisHistory, error) {
  transaction := tx
  if transaction == nil {
    transaction = ahr.db
  }

  var results []*types.AnalysisHistory
  if len(userIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id IN ?", userIDs).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// FullDeleteByIDForUser deletes a single entry, scoped to its owner. Returns
// the number of rows removed so callers can distinguish "not found".
func (ahr *analysisHistoryRepo) FullDeleteByIDForUser(ctx context.Context, tx *gorm.DB, entryID uuid.UUID, userID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = ahr.db
  }

  result := transaction.WithContext(ctx).
    Unscoped().
    Where("id = ? AND user_id = ?", entryID, userID).
    Delete(&types.AnalysisHistory{})
  if result.Error != nil {
    return 0, result.Error
  }
  return result.RowsAffected, nil
}
