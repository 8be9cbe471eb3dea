package types

import (
  "time"
)

type MessageRole string

const (
  RoleUser         MessageRole = "user"
  RoleAssistant    MessageRole = "assistant"
)

// Message is one turn in a session's conversation log. Messages are never
// mutated in place: the log is replaced wholesale on every update.
type Message struct {
  ID                  string                `json:"id"`
  Role                MessageRole           `json:"role"`
  Content             string                `json:"content"`
  Timestamp           time.Time             `json:"timestamp"`
  ImageURL            string                `json:"imageUrl,omitempty"`
  Insights            []IngredientInsight   `json:"insights,omitempty"`
  IsLoading           bool                  `json:"isLoading,omitempty"`
  HealthScore         int                   `json:"healthScore,omitempty"`
  Concerns            []string              `json:"concerns,omitempty"`
  Recommendations     []string              `json:"recommendations,omitempty"`
  AllergenAlerts      []string              `json:"allergenAlerts,omitempty"`
  DrugInteractions    []string              `json:"drugInteractions,omitempty"`
}
