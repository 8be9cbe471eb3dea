package types

// Wire shapes shared by the analyze endpoint, the conversation log, and the
// persisted analysis_result blob. JSON field names match what the model is
// prompted to emit, so a result can round-trip through storage unchanged.

type HealthImpact string

const (
  HealthImpactPositive    HealthImpact = "positive"
  HealthImpactNeutral     HealthImpact = "neutral"
  HealthImpactConcern     HealthImpact = "concern"
  HealthImpactWarning     HealthImpact = "warning"
)

type ConfidenceLevel string

const (
  ConfidenceLow       ConfidenceLevel = "low"
  ConfidenceMedium    ConfidenceLevel = "medium"
  ConfidenceHigh      ConfidenceLevel = "high"
)

type IngredientInsight struct {
  Name            string            `json:"name"`
  Explanation     string            `json:"explanation"`
  HealthImpact    HealthImpact      `json:"healthImpact"`
  Impacts         []string          `json:"impacts"`
  Tradeoffs       string            `json:"tradeoffs,omitempty"`
  Alternatives    []string          `json:"alternatives,omitempty"`
  Confidence      ConfidenceLevel   `json:"confidence"`
}

// HealthProfileInfo is the offline variant's concern summary; Inferred marks
// concern tags derived from the query text rather than the stored profile.
type HealthProfileInfo struct {
  Concerns    []string    `json:"concerns"`
  Inferred    bool        `json:"inferred"`
}

type AnalysisResult struct {
  ProductName         string                `json:"productName,omitempty"`
  Ingredients         []string              `json:"ingredients,omitempty"`
  Insights            []IngredientInsight   `json:"insights"`
  Summary             string                `json:"summary"`
  HealthProfile       *HealthProfileInfo    `json:"healthProfile,omitempty"`
  HealthScore         int                   `json:"healthScore,omitempty"`
  Concerns            []string              `json:"concerns,omitempty"`
  Recommendations     []string              `json:"recommendations,omitempty"`
  AllergenAlerts      []string              `json:"allergenAlerts,omitempty"`
  DrugInteractions    []string              `json:"drugInteractions,omitempty"`
  Error               string                `json:"error,omitempty"`
}

type OCRResult struct {
  Text          string      `json:"text"`
  Confidence    float64     `json:"confidence"`
  Success       bool        `json:"success"`
  Error         string      `json:"error,omitempty"`
}
