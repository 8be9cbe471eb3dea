package services

import (
  "strings"

  "github.com/yungbote/ingredient-copilot-backend/internal/types"
)

// Static catalog backing the offline variant: a fixed product table plus a
// keyword trigger table for inferring concerns from the query text. Kept as
// data, not branching logic, so both stay independently testable.

var mockProducts = map[string]types.AnalysisResult{
  "chips": {
    ProductName: "Classic Potato Chips",
    Ingredients: []string{"Potatoes", "Palm Oil", "Salt", "MSG", "Sugar"},
    Insights: []types.IngredientInsight{
      {
        Name:         "Palm Oil",
        Explanation:  "A vegetable oil derived from palm fruit, commonly used for frying.",
        HealthImpact: types.HealthImpactConcern,
        Impacts: []string{
          "May raise LDL cholesterol levels",
          "Contains saturated fats",
          "Provides vitamin E and beta-carotene",
        },
        Tradeoffs:    "While it provides some vitamins, the saturated fat content may outweigh benefits for heart health. Moderate consumption suggested.",
        Alternatives: []string{"Sunflower oil", "Olive oil", "Avocado oil"},
        Confidence:   types.ConfidenceHigh,
      },
      {
        Name:         "MSG (Monosodium Glutamate)",
        Explanation:  "A flavor enhancer that adds umami taste to foods.",
        HealthImpact: types.HealthImpactNeutral,
        Impacts: []string{
          "Generally recognized as safe by FDA",
          "Some people report sensitivity",
          "Contains sodium",
        },
        Tradeoffs:    "Despite myths, MSG is considered safe for most people. However, if you experience headaches or flushing after eating MSG-containing foods, you may want to avoid it.",
        Alternatives: []string{"Natural umami from tomatoes", "Mushroom extracts", "Yeast extracts"},
        Confidence:   types.ConfidenceHigh,
      },
      {
        Name:         "Salt",
        Explanation:  "Added for flavor and preservation.",
        HealthImpact: types.HealthImpactConcern,
        Impacts: []string{
          "Excessive intake linked to high blood pressure",
          "Essential mineral in moderation",
          "May affect kidney function over time",
        },
        Tradeoffs:  "Your body needs some sodium, but processed foods often contain excess amounts. This product likely contributes significantly to daily sodium intake.",
        Confidence: types.ConfidenceHigh,
      },
    },
    Summary: "This snack contains several ingredients that warrant moderation, particularly for those watching sodium intake or heart health. The palm oil and added salt are the main concerns. Enjoy occasionally rather than daily.",
    HealthProfile: &types.HealthProfileInfo{
      Concerns: []string{"heart health", "sodium intake"},
      Inferred: true,
    },
  },
  "soda": {
    ProductName: "Cola Beverage",
    Ingredients: []string{"Carbonated Water", "High Fructose Corn Syrup", "Caramel Color", "Phosphoric Acid", "Caffeine"},
    Insights: []types.IngredientInsight{
      {
        Name:         "High Fructose Corn Syrup",
        Explanation:  "A sweetener made from corn starch, commonly used in beverages.",
        HealthImpact: types.HealthImpactWarning,
        Impacts: []string{
          "Linked to obesity when consumed in excess",
          "May contribute to insulin resistance",
          "No nutritional value beyond calories",
          "Associated with increased diabetes risk",
        },
        Tradeoffs:    "Provides sweetness at low cost but offers no nutritional benefits. For diabetics, this is a significant concern as it causes rapid blood sugar spikes.",
        Alternatives: []string{"Stevia-sweetened drinks", "Sparkling water with fruit", "Unsweetened tea"},
        Confidence:   types.ConfidenceHigh,
      },
      {
        Name:         "Phosphoric Acid",
        Explanation:  "Adds tartness and acts as a preservative.",
        HealthImpact: types.HealthImpactConcern,
        Impacts: []string{
          "May affect calcium absorption",
          "Linked to lower bone density in some studies",
          "Can erode tooth enamel",
        },
        Tradeoffs:  "While the amount in a single serving is small, regular consumption may affect bone health over time.",
        Confidence: types.ConfidenceMedium,
      },
      {
        Name:         "Caffeine",
        Explanation:  "A natural stimulant added for energy boost.",
        HealthImpact: types.HealthImpactNeutral,
        Impacts: []string{
          "Can improve alertness and focus",
          "May cause sleep issues if consumed late",
          "Can be habit-forming",
        },
        Tradeoffs:  "Moderate caffeine intake is generally safe for healthy adults, but those sensitive to caffeine or with anxiety should limit intake.",
        Confidence: types.ConfidenceHigh,
      },
    },
    Summary: "This beverage is high in sugar and offers minimal nutritional value. For diabetics or those watching blood sugar, this is NOT recommended. The high fructose corn syrup will cause rapid glucose spikes.",
    HealthProfile: &types.HealthProfileInfo{
      Concerns: []string{"diabetes", "weight management", "dental health"},
      Inferred: true,
    },
  },
  "protein_bar": {
    ProductName: "Protein Energy Bar",
    Ingredients: []string{"Whey Protein", "Almonds", "Honey", "Oats", "Dark Chocolate", "Sea Salt"},
    Insights: []types.IngredientInsight{
      {
        Name:         "Whey Protein",
        Explanation:  "A complete protein derived from milk during cheese production.",
        HealthImpact: types.HealthImpactPositive,
        Impacts: []string{
          "Excellent source of essential amino acids",
          "Supports muscle recovery and growth",
          "May help with satiety and weight management",
        },
        Tradeoffs:    "Great for most people, but those with dairy allergies or lactose intolerance should avoid. Plant-based alternatives exist.",
        Alternatives: []string{"Pea protein", "Hemp protein", "Brown rice protein"},
        Confidence:   types.ConfidenceHigh,
      },
      {
        Name:         "Almonds",
        Explanation:  "Tree nuts rich in healthy fats and nutrients.",
        HealthImpact: types.HealthImpactPositive,
        Impacts: []string{
          "Heart-healthy monounsaturated fats",
          "Good source of vitamin E and magnesium",
          "May help lower cholesterol",
        },
        Tradeoffs:  "Calorie-dense, so portion control matters. Avoid if you have tree nut allergies.",
        Confidence: types.ConfidenceHigh,
      },
      {
        Name:         "Honey",
        Explanation:  "Natural sweetener with some beneficial compounds.",
        HealthImpact: types.HealthImpactNeutral,
        Impacts: []string{
          "Contains antioxidants",
          "Still affects blood sugar",
          "Slightly better than refined sugar",
        },
        Tradeoffs:  "While more natural than refined sugar, honey still impacts blood sugar. Diabetics should account for this in their carb count.",
        Confidence: types.ConfidenceHigh,
      },
    },
    Summary: "This is a relatively healthy snack option with quality protein and nutrients. The honey adds natural sweetness but diabetics should monitor portions. Good choice for post-workout or healthy snacking.",
    HealthProfile: &types.HealthProfileInfo{
      Concerns: []string{"fitness", "protein intake", "healthy snacking"},
      Inferred: true,
    },
  },
}

// GetMockAnalysis routes a query to one of the static records; unmatched
// queries default to the chips record. A deep copy is returned so callers can
// merge concerns without mutating the catalog.
func GetMockAnalysis(query string) *types.AnalysisResult {
  lowerQuery := strings.ToLower(query)

  key := "chips"
  switch {
  case strings.Contains(lowerQuery, "chip") || strings.Contains(lowerQuery, "crisp") || strings.Contains(lowerQuery, "snack"):
    key = "chips"
  case strings.Contains(lowerQuery, "soda") || strings.Contains(lowerQuery, "cola") || strings.Contains(lowerQuery, "drink") || strings.Contains(lowerQuery, "beverage"):
    key = "soda"
  case strings.Contains(lowerQuery, "protein") || strings.Contains(lowerQuery, "bar") || strings.Contains(lowerQuery, "energy"):
    key = "protein_bar"
  }

  product := mockProducts[key]
  result := product
  if product.HealthProfile != nil {
    hp := *product.HealthProfile
    hp.Concerns = append([]string{}, product.HealthProfile.Concerns...)
    result.HealthProfile = &hp
  }
  return &result
}

// concernTriggers is the offline inference table. Matching is plain
// case-insensitive substring containment; "not diabetic" still triggers
// diabetes, a known limitation carried over deliberately.
var concernTriggers = []struct {
  Concern  string
  Patterns []string
}{
  {Concern: "diabetes", Patterns: []string{"diabetic", "diabetes", "blood sugar", "glucose", "insulin"}},
  {Concern: "allergies", Patterns: []string{"allergy", "allergic", "allergen", "intolerant", "intolerance"}},
  {Concern: "vegan", Patterns: []string{"vegan", "plant-based", "animal-free", "no meat"}},
  {Concern: "vegetarian", Patterns: []string{"vegetarian", "no meat"}},
  {Concern: "gluten", Patterns: []string{"gluten", "celiac", "wheat-free"}},
  {Concern: "heart", Patterns: []string{"heart", "cholesterol", "blood pressure", "cardiac"}},
  {Concern: "weight", Patterns: []string{"weight", "diet", "calories", "low-cal", "losing weight"}},
  {Concern: "sodium", Patterns: []string{"sodium", "salt", "low-sodium"}},
}

func InferHealthConcerns(query string) []string {
  concerns := []string{}
  lowerQuery := strings.ToLower(query)

  for _, trigger := range concernTriggers {
    for _, pattern := range trigger.Patterns {
      if strings.Contains(lowerQuery, pattern) {
        concerns = append(concerns, trigger.Concern)
        break
      }
    }
  }
  return concerns
}
