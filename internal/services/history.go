package services

import (
  "context"
  "encoding/json"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/datatypes"

  "github.com/yungbote/ingredient-copilot-backend/internal/logger"
  "github.com/yungbote/ingredient-copilot-backend/internal/repos"
  "github.com/yungbote/ingredient-copilot-backend/internal/requestdata"
  "github.com/yungbote/ingredient-copilot-backend/internal/types"
)

type HistoryService interface {
  List(ctx context.Context) ([]HistoryEntry, error)
  Save(userID uuid.UUID, productName, query *string, result *types.AnalysisResult)
  Delete(ctx context.Context, id uuid.UUID) error
}

type HistoryEntry struct {
  ID          uuid.UUID             `json:"id"`
  ProductName *string               `json:"productName"`
  Query       *string               `json:"query"`
  Result      *types.AnalysisResult `json:"result"`
  CreatedAt   string                `json:"createdAt"`
}

type historyService struct {
  historyRepo repos.AnalysisHistoryRepo
  log         *logger.Logger
}

func NewHistoryService(historyRepo repos.AnalysisHistoryRepo, log *logger.Logger) HistoryService {
  return &historyService{
    historyRepo: historyRepo,
    log:         log.With("service", "HistoryService"),
  }
}

func (s *historyService) List(ctx context.Context) ([]HistoryEntry, error) {
  ffor := "Failed to list analysis history"
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return nil, fmt.Errorf("%s: no user in context", ffor)
  }
  rows, err := s.historyRepo.GetByUserIDs(ctx, nil, []uuid.UUID{rd.UserID})
  if err != nil {
    return nil, fmt.Errorf("%s: %w", ffor, err)
  }
  entries := make([]HistoryEntry, 0, len(rows))
  for _, row := range rows {
    entry := HistoryEntry{
      ID:          row.ID,
      ProductName: row.ProductName,
      Query:       row.Query,
      CreatedAt:   row.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
    }
    if len(row.AnalysisResult) > 0 {
      var result types.AnalysisResult
      if err := json.Unmarshal(row.AnalysisResult, &result); err == nil {
        entry.Result = &result
      }
    }
    entries = append(entries, entry)
  }
  return entries, nil
}

// Save is fire and forget: analysis responses never wait on, or fail
// because of, the history write. Failures are logged and dropped.
func (s *historyService) Save(userID uuid.UUID, productName, query *string, result *types.AnalysisResult) {
  payload, err := json.Marshal(result)
  if err != nil {
    s.log.Error("Failed to encode analysis result for history", "error", err)
    return
  }
  row := &types.AnalysisHistory{
    ID:             uuid.New(),
    UserID:         userID,
    ProductName:    productName,
    Query:          query,
    AnalysisResult: datatypes.JSON(payload),
  }
  if _, err := s.historyRepo.Create(context.Background(), nil, []*types.AnalysisHistory{row}); err != nil {
    s.log.Error("Failed to save analysis history", "error", err)
  }
}

func (s *historyService) Delete(ctx context.Context, id uuid.UUID) error {
  ffor := "Failed to delete analysis history"
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return fmt.Errorf("%s: no user in context", ffor)
  }
  affected, err := s.historyRepo.FullDeleteByIDForUser(ctx, nil, id, rd.UserID)
  if err != nil {
    return fmt.Errorf("%s: %w", ffor, err)
  }
  if affected == 0 {
    return fmt.Errorf("%s: entry not found", ffor)
  }
  return nil
}
