package concerns

// Single catalog of health-concern tags. The profile endpoint validates
// against it and the dashboard recommendation table keys into it, so the two
// can't drift apart.

type Category string

const (
  CategoryDietary      Category = "dietary"
  CategoryMedical      Category = "medical"
  CategoryLifestyle    Category = "lifestyle"
)

type Tag struct {
  ID            string      `json:"id"`
  Label         string      `json:"label"`
  Description   string      `json:"description"`
  Category      Category    `json:"category"`
}

var Catalog = []Tag{
  {ID: "vegan", Label: "Vegan", Description: "No animal products", Category: CategoryDietary},
  {ID: "vegetarian", Label: "Vegetarian", Description: "No meat or fish", Category: CategoryDietary},
  {ID: "gluten-free", Label: "Gluten-Free", Description: "Celiac or gluten sensitivity", Category: CategoryDietary},
  {ID: "lactose-free", Label: "Lactose-Free", Description: "Dairy intolerance", Category: CategoryDietary},
  {ID: "keto", Label: "Keto", Description: "Low carb, high fat diet", Category: CategoryDietary},
  {ID: "diabetic", Label: "Diabetic", Description: "Blood sugar management", Category: CategoryMedical},
  {ID: "heart-health", Label: "Heart Health", Description: "Cholesterol & blood pressure", Category: CategoryMedical},
  {ID: "allergies", Label: "Food Allergies", Description: "Nuts, shellfish, etc.", Category: CategoryMedical},
  {ID: "pregnancy", Label: "Pregnancy", Description: "Safe foods for pregnancy", Category: CategoryMedical},
  {ID: "medications", Label: "On Medications", Description: "Drug-food interactions", Category: CategoryMedical},
  {ID: "weight-loss", Label: "Weight Loss", Description: "Calorie conscious", Category: CategoryLifestyle},
  {ID: "muscle-building", Label: "Muscle Building", Description: "High protein focus", Category: CategoryLifestyle},
  {ID: "mental-wellness", Label: "Mental Wellness", Description: "Mood & cognitive health", Category: CategoryLifestyle},
}

var catalogIndex = func() map[string]Tag {
  idx := make(map[string]Tag, len(Catalog))
  for _, tag := range Catalog {
    idx[tag.ID] = tag
  }
  return idx
}()

func IsValid(id string) bool {
  _, ok := catalogIndex[id]
  return ok
}

func Lookup(id string) (Tag, bool) {
  tag, ok := catalogIndex[id]
  return tag, ok
}

// FilterValid drops unknown tag ids, preserving input order and deduplicating.
func FilterValid(ids []string) []string {
  out := make([]string, 0, len(ids))
  seen := make(map[string]bool, len(ids))
  for _, id := range ids {
    if !IsValid(id) || seen[id] {
      continue
    }
    seen[id] = true
    out = append(out, id)
  }
  return out
}
