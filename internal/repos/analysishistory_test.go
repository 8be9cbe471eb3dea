package repos

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/ingredient-copilot-backend/internal/logger"
	"github.com/yungbote/ingredient-copilot-backend/internal/types"
)

// The production schema uses postgres uuid defaults, which sqlite cannot
// parse, so the test schema is declared by hand. Row ids are always set
// explicitly so the default never matters.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	ddl := `CREATE TABLE analysis_history (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		product_name TEXT,
		query TEXT,
		analysis_result TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	)`
	if err := db.Exec(ddl).Error; err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	return db
}

func newTestRepo(t *testing.T) (AnalysisHistoryRepo, *gorm.DB) {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	db := newTestDB(t)
	return NewAnalysisHistoryRepo(db, log), db
}

func TestAnalysisHistoryRoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	userID := uuid.New()

	result := types.AnalysisResult{
		ProductName: "Classic Potato Chips",
		HealthScore: 4,
		Summary:     "High in sodium, enjoy occasionally.",
		Concerns:    []string{"high sodium"},
		Insights: []types.IngredientInsight{
			{Name: "Salt", HealthImpact: types.HealthImpactConcern, Confidence: types.ConfidenceHigh},
		},
	}
	payload, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("failed to marshal result: %v", err)
	}
	productName := "Classic Potato Chips"
	row := &types.AnalysisHistory{
		ID:             uuid.New(),
		UserID:         userID,
		ProductName:    &productName,
		AnalysisResult: datatypes.JSON(payload),
	}
	if _, err := repo.Create(ctx, nil, []*types.AnalysisHistory{row}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	rows, err := repo.GetByUserIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		t.Fatalf("GetByUserIDs failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}

	var decoded types.AnalysisResult
	if err := json.Unmarshal(rows[0].AnalysisResult, &decoded); err != nil {
		t.Fatalf("failed to decode stored result: %v", err)
	}
	if decoded.HealthScore != 4 {
		t.Fatalf("healthScore = %d, want 4", decoded.HealthScore)
	}
	if decoded.Summary != result.Summary {
		t.Fatalf("summary = %q, want %q", decoded.Summary, result.Summary)
	}
	if len(decoded.Insights) != 1 || decoded.Insights[0].Name != "Salt" {
		t.Fatalf("insights did not survive the round trip: %+v", decoded.Insights)
	}
}

func TestAnalysisHistoryGetByUserIDsScoping(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	for _, userID := range []uuid.UUID{alice, alice, bob} {
		row := &types.AnalysisHistory{ID: uuid.New(), UserID: userID, AnalysisResult: datatypes.JSON(`{}`)}
		if _, err := repo.Create(ctx, nil, []*types.AnalysisHistory{row}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	rows, err := repo.GetByUserIDs(ctx, nil, []uuid.UUID{alice})
	if err != nil {
		t.Fatalf("GetByUserIDs failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows for alice, want 2", len(rows))
	}

	empty, err := repo.GetByUserIDs(ctx, nil, nil)
	if err != nil {
		t.Fatalf("GetByUserIDs(nil) failed: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("empty id list returned %d rows", len(empty))
	}
}

func TestAnalysisHistoryDeleteIsOwnerScoped(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	owner, stranger := uuid.New(), uuid.New()

	row := &types.AnalysisHistory{ID: uuid.New(), UserID: owner, AnalysisResult: datatypes.JSON(`{}`)}
	if _, err := repo.Create(ctx, nil, []*types.AnalysisHistory{row}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	affected, err := repo.FullDeleteByIDForUser(ctx, nil, row.ID, stranger)
	if err != nil {
		t.Fatalf("FullDeleteByIDForUser failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("stranger deleted %d rows, want 0", affected)
	}

	affected, err = repo.FullDeleteByIDForUser(ctx, nil, row.ID, owner)
	if err != nil {
		t.Fatalf("FullDeleteByIDForUser failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("owner deleted %d rows, want 1", affected)
	}

	rows, err := repo.GetByUserIDs(ctx, nil, []uuid.UUID{owner})
	if err != nil {
		t.Fatalf("GetByUserIDs failed: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("entry still present after delete")
	}
}
