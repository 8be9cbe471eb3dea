package services

import (
	"testing"

	"github.com/yungbote/ingredient-copilot-backend/internal/types"
)

func entryWith(product string, score int, flaggedIngredients ...string) HistoryEntry {
	insights := make([]types.IngredientInsight, 0, len(flaggedIngredients))
	for _, name := range flaggedIngredients {
		insights = append(insights, types.IngredientInsight{Name: name, HealthImpact: types.HealthImpactConcern})
	}
	return HistoryEntry{
		ProductName: &product,
		Result: &types.AnalysisResult{
			ProductName: product,
			HealthScore: score,
			Concerns:    flaggedIngredients,
			Insights:    insights,
		},
		CreatedAt: "2026-08-01T12:00:00Z",
	}
}

func TestComputeStatsEmptyHistory(t *testing.T) {
	stats := ComputeStats(nil, nil)
	if stats.TotalScans != 0 {
		t.Fatalf("TotalScans = %d, want 0", stats.TotalScans)
	}
	if stats.AvgHealthScore != 0 {
		t.Fatalf("AvgHealthScore = %d, want 0 with no scans", stats.AvgHealthScore)
	}
	if stats.TopConcern != "None detected" {
		t.Fatalf("TopConcern = %q, want None detected", stats.TopConcern)
	}
	if len(stats.WeeklyTrend) != 7 {
		t.Fatalf("WeeklyTrend has %d days, want 7", len(stats.WeeklyTrend))
	}
	if stats.NutritionBreakdown.Score != 5 || stats.NutritionBreakdown.Grade != "C" {
		t.Fatalf("NutritionBreakdown = %+v, want fallback score 5 grade C", stats.NutritionBreakdown)
	}
}

func TestComputeStatsSkipsUndecodedRows(t *testing.T) {
	product := "Corrupt Row"
	entries := []HistoryEntry{
		{ProductName: &product, Result: nil},
		entryWith("Protein Bar", 8),
	}
	stats := ComputeStats(nil, entries)
	if stats.TotalScans != 1 {
		t.Fatalf("TotalScans = %d, want 1 with one decodable row", stats.TotalScans)
	}
	if stats.AvgHealthScore != 8 {
		t.Fatalf("AvgHealthScore = %d, want 8", stats.AvgHealthScore)
	}
}

func TestComputeStatsAggregates(t *testing.T) {
	entries := []HistoryEntry{
		entryWith("Chips", 3, "high sodium", "saturated fat"),
		entryWith("Soda", 2, "high sodium", "added sugar", "phosphoric acid"),
		entryWith("Protein Bar", 8, "added sugar"),
		entryWith("Oat Milk", 9),
	}
	stats := ComputeStats(nil, entries)

	if stats.TotalScans != 4 {
		t.Fatalf("TotalScans = %d, want 4", stats.TotalScans)
	}
	// (3+2+8+9)/4 = 5.5, rounds to 6
	if stats.AvgHealthScore != 6 {
		t.Fatalf("AvgHealthScore = %d, want 6", stats.AvgHealthScore)
	}
	if stats.RiskProducts != 2 {
		t.Fatalf("RiskProducts = %d, want 2", stats.RiskProducts)
	}
	if stats.SafeProducts != 2 {
		t.Fatalf("SafeProducts = %d, want 2", stats.SafeProducts)
	}
	// high sodium and added sugar both appear twice, high sodium seen first
	if stats.TopConcern != "high sodium" {
		t.Fatalf("TopConcern = %q, want high sodium", stats.TopConcern)
	}
	if stats.TopConcernPercentage != 50 {
		t.Fatalf("TopConcernPercentage = %d, want 50", stats.TopConcernPercentage)
	}
	if stats.NutritionBreakdown.Grade != "B" {
		t.Fatalf("Grade = %q, want B for score 6", stats.NutritionBreakdown.Grade)
	}
}

func TestComputeStatsIgnoresNonFlaggedInsights(t *testing.T) {
	product := "Protein Bar"
	entries := []HistoryEntry{
		{
			ProductName: &product,
			Result: &types.AnalysisResult{
				ProductName: product,
				HealthScore: 8,
				Insights: []types.IngredientInsight{
					{Name: "Whey Protein", HealthImpact: types.HealthImpactPositive},
					{Name: "Honey", HealthImpact: types.HealthImpactNeutral},
					{Name: "Added Sugar", HealthImpact: types.HealthImpactWarning},
				},
			},
		},
	}
	stats := ComputeStats(nil, entries)
	if stats.TopConcern != "Added Sugar" {
		t.Fatalf("TopConcern = %q, want Added Sugar", stats.TopConcern)
	}
}

func TestComputeStatsMissingScoreDefaultsToFive(t *testing.T) {
	product := "Mystery Snack"
	entries := []HistoryEntry{
		{ProductName: &product, Result: &types.AnalysisResult{ProductName: product}},
	}
	stats := ComputeStats(nil, entries)
	if stats.AvgHealthScore != 5 {
		t.Fatalf("AvgHealthScore = %d, want 5", stats.AvgHealthScore)
	}
	if stats.RiskProducts != 0 || stats.SafeProducts != 0 {
		t.Fatalf("score 5 should count as neither risk nor safe: %+v", stats)
	}
}

func TestComputeStatsRecentAlerts(t *testing.T) {
	entries := []HistoryEntry{
		entryWith("A", 2, "Palm Oil", "Salt", "Added Sugar"),
		entryWith("B", 4, "Palm Oil", "Salt"),
		entryWith("C", 6, "Palm Oil"),
		entryWith("D", 9),
		entryWith("E", 1, "Palm Oil", "Salt", "Added Sugar", "Caramel Color"),
		entryWith("F", 3, "Nitrates"),
	}
	stats := ComputeStats(nil, entries)

	if len(stats.RecentAlerts) != 4 {
		t.Fatalf("RecentAlerts has %d entries, want 4", len(stats.RecentAlerts))
	}
	want := []RecentAlert{
		{Ingredient: "Palm Oil", Count: 4, Severity: "high"},
		{Ingredient: "Salt", Count: 3, Severity: "high"},
		{Ingredient: "Added Sugar", Count: 2, Severity: "medium"},
		{Ingredient: "Caramel Color", Count: 1, Severity: "low"},
	}
	for i, alert := range stats.RecentAlerts {
		if alert != want[i] {
			t.Fatalf("alert[%d] = %+v, want %+v", i, alert, want[i])
		}
	}
}

func TestComputeStatsRecommendations(t *testing.T) {
	cases := []struct {
		name     string
		concerns []string
		want     []string
	}{
		{
			name:     "no_profile_uses_defaults",
			concerns: nil,
			want:     []string{"Whole Food Focus", "Label Reading"},
		},
		{
			name:     "matched_tag_suppresses_defaults",
			concerns: []string{"diabetic"},
			want:     []string{"Low-GI Alternatives"},
		},
		{
			name:     "caps_at_three",
			concerns: []string{"diabetic", "vegan", "allergies"},
			want:     []string{"Low-GI Alternatives", "Plant-Based Protein", "Allergen-Free Options"},
		},
		{
			name:     "unmatched_concern_ignored",
			concerns: []string{"keto"},
			want:     []string{"Whole Food Focus", "Label Reading"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stats := ComputeStats(tc.concerns, nil)
			if len(stats.Recommendations) != len(tc.want) {
				t.Fatalf("got %d recommendations, want %d: %+v", len(stats.Recommendations), len(tc.want), stats.Recommendations)
			}
			for i, rec := range stats.Recommendations {
				if rec.Title != tc.want[i] {
					t.Fatalf("recommendation[%d] = %q, want %q", i, rec.Title, tc.want[i])
				}
			}
		})
	}
}

func TestComputeStatsDeterministicOutsideWeeklyTrend(t *testing.T) {
	entries := []HistoryEntry{
		entryWith("Chips", 3, "high sodium"),
		entryWith("Soda", 2, "added sugar"),
	}
	a := ComputeStats([]string{"diabetic"}, entries)
	b := ComputeStats([]string{"diabetic"}, entries)

	a.WeeklyTrend, b.WeeklyTrend = nil, nil
	if a.TotalScans != b.TotalScans || a.AvgHealthScore != b.AvgHealthScore ||
		a.TopConcern != b.TopConcern || a.TopConcernPercentage != b.TopConcernPercentage ||
		a.RiskProducts != b.RiskProducts || a.SafeProducts != b.SafeProducts {
		t.Fatalf("stats differ across identical inputs:\n%+v\n%+v", a, b)
	}
}
