package services

import (
  "context"
  "fmt"
  "math"
  "math/rand"
  "sort"

  "github.com/google/uuid"
  "golang.org/x/sync/errgroup"

  "github.com/yungbote/ingredient-copilot-backend/internal/logger"
  "github.com/yungbote/ingredient-copilot-backend/internal/requestdata"
  "github.com/yungbote/ingredient-copilot-backend/internal/types"
)

type WeeklyTrendPoint struct {
  Day  string `json:"day"`
  Risk int    `json:"risk"`
  Safe int    `json:"safe"`
}

type RecentAlert struct {
  Ingredient string `json:"ingredient"`
  Count      int    `json:"count"`
  Severity   string `json:"severity"`
}

type Recommendation struct {
  Title string `json:"title"`
  Match int    `json:"match"`
}

type NutritionBreakdown struct {
  Score int    `json:"score"`
  Grade string `json:"grade"`
}

type DashboardStats struct {
  TotalScans           int                `json:"totalScans"`
  AvgHealthScore       int                `json:"avgHealthScore"`
  RiskProducts         int                `json:"riskProducts"`
  SafeProducts         int                `json:"safeProducts"`
  TopConcern           string             `json:"topConcern"`
  TopConcernPercentage int                `json:"topConcernPercentage"`
  WeeklyTrend          []WeeklyTrendPoint `json:"weeklyTrend"`
  RecentAlerts         []RecentAlert      `json:"recentAlerts"`
  Recommendations      []Recommendation   `json:"recommendations"`
  NutritionBreakdown   NutritionBreakdown `json:"nutritionBreakdown"`
}

type DashboardService interface {
  Stats(ctx context.Context) (*DashboardStats, error)
}

type dashboardService struct {
  profile ProfileService
  history HistoryService
  log     *logger.Logger
}

func NewDashboardService(log *logger.Logger, profile ProfileService, history HistoryService) DashboardService {
  return &dashboardService{
    profile: profile,
    history: history,
    log:     log.With("service", "DashboardService"),
  }
}

func (s *dashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
  ffor := "Failed to compute dashboard stats"
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return nil, fmt.Errorf("%s: no user in context", ffor)
  }

  var (
    concerns []string
    entries  []HistoryEntry
  )
  g, gctx := errgroup.WithContext(ctx)
  g.Go(func() error {
    var err error
    concerns, err = s.profile.GetConcernsForUser(gctx, rd.UserID)
    return err
  })
  g.Go(func() error {
    var err error
    entries, err = s.history.List(gctx)
    return err
  })
  if err := g.Wait(); err != nil {
    return nil, fmt.Errorf("%s: %w", ffor, err)
  }
  return ComputeStats(concerns, entries), nil
}

// ComputeStats derives the dashboard aggregates from the saved profile and
// analysis history. Everything except weeklyTrend is deterministic in its
// inputs; weeklyTrend is a randomized placeholder until per-day scan
// timestamps are aggregated for real.
func ComputeStats(profileConcerns []string, entries []HistoryEntry) *DashboardStats {
  // Rows whose stored result failed to decode are dropped up front, so
  // totalScans only counts analyses that feed the aggregates.
  analyses := make([]*types.AnalysisResult, 0, len(entries))
  for _, entry := range entries {
    if entry.Result != nil {
      analyses = append(analyses, entry.Result)
    }
  }

  stats := &DashboardStats{
    TotalScans:      len(analyses),
    TopConcern:      "None detected",
    WeeklyTrend:     weeklyTrend(),
    RecentAlerts:    []RecentAlert{},
    Recommendations: recommendationsFor(profileConcerns),
  }

  scoreSum := 0
  concernCounts := map[string]int{}
  concernOrder := []string{}
  for _, result := range analyses {
    score := 5
    if result.HealthScore > 0 {
      score = result.HealthScore
    }
    scoreSum += score
    if score < 5 {
      stats.RiskProducts++
    }
    if score >= 7 {
      stats.SafeProducts++
    }
    // Top concern counts flagged insight ingredients, not the result's
    // free-text concern strings.
    for _, insight := range result.Insights {
      if insight.HealthImpact != types.HealthImpactConcern && insight.HealthImpact != types.HealthImpactWarning {
        continue
      }
      if _, seen := concernCounts[insight.Name]; !seen {
        concernOrder = append(concernOrder, insight.Name)
      }
      concernCounts[insight.Name]++
    }
  }

  if len(analyses) > 0 {
    stats.AvgHealthScore = int(math.Round(float64(scoreSum) / float64(len(analyses))))
  }

  if len(concernOrder) > 0 {
    firstSeen := map[string]int{}
    for i, concern := range concernOrder {
      firstSeen[concern] = i
    }
    sort.SliceStable(concernOrder, func(i, j int) bool {
      ci, cj := concernCounts[concernOrder[i]], concernCounts[concernOrder[j]]
      if ci != cj {
        return ci > cj
      }
      return firstSeen[concernOrder[i]] < firstSeen[concernOrder[j]]
    })
    stats.TopConcern = concernOrder[0]
    stats.TopConcernPercentage = int(math.Round(float64(concernCounts[concernOrder[0]]) / float64(len(analyses)) * 100))
  }

  // Alerts reuse the frequency ranking behind topConcern: the four most
  // recurring flagged ingredients with their occurrence counts.
  for _, name := range concernOrder {
    if len(stats.RecentAlerts) == 4 {
      break
    }
    stats.RecentAlerts = append(stats.RecentAlerts, RecentAlert{
      Ingredient: name,
      Count:      concernCounts[name],
      Severity:   severityFor(concernCounts[name]),
    })
  }

  breakdownScore := stats.AvgHealthScore
  if breakdownScore == 0 {
    breakdownScore = 5
  }
  stats.NutritionBreakdown = NutritionBreakdown{
    Score: breakdownScore,
    Grade: gradeFor(breakdownScore),
  }
  return stats
}

func severityFor(count int) string {
  switch {
  case count >= 3:
    return "high"
  case count >= 2:
    return "medium"
  default:
    return "low"
  }
}

func weeklyTrend() []WeeklyTrendPoint {
  days := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
  trend := make([]WeeklyTrendPoint, 0, len(days))
  for i, day := range days {
    risk := rand.Intn(3)
    if i < 3 {
      risk += 2
    }
    safe := rand.Intn(4) + 1
    if i > 3 {
      safe += 1
    }
    if risk < 0 {
      risk = 0
    }
    trend = append(trend, WeeklyTrendPoint{Day: day, Risk: risk, Safe: safe})
  }
  return trend
}

var concernRecommendations = map[string]Recommendation{
  "diabetic":     {Title: "Low-GI Alternatives", Match: 94},
  "vegan":        {Title: "Plant-Based Protein", Match: 89},
  "allergies":    {Title: "Allergen-Free Options", Match: 91},
  "heart-health": {Title: "Heart-Healthy Choices", Match: 87},
}

var defaultRecommendations = []Recommendation{
  {Title: "Whole Food Focus", Match: 85},
  {Title: "Label Reading", Match: 82},
}

func recommendationsFor(profileConcerns []string) []Recommendation {
  recs := []Recommendation{}
  for _, concern := range profileConcerns {
    if rec, ok := concernRecommendations[concern]; ok {
      recs = append(recs, rec)
    }
  }
  if len(recs) == 0 {
    recs = append(recs, defaultRecommendations...)
  }
  if len(recs) > 3 {
    recs = recs[:3]
  }
  return recs
}

func gradeFor(score int) string {
  switch {
  case score >= 9:
    return "A+"
  case score >= 8:
    return "A"
  case score >= 7:
    return "B+"
  case score >= 6:
    return "B"
  case score >= 5:
    return "C"
  case score >= 4:
    return "D"
  default:
    return "F"
  }
}
