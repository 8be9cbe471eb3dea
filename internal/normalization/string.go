package normalization

import (
  "strings"
)

// ParseInputString canonicalizes identifier-like input (emails, tag ids).
func ParseInputString(input string) string {
  normalized := strings.ToLower(strings.TrimSpace(input))
  return normalized
}

// TrimInput trims whitespace without case folding, for names and free text.
func TrimInput(input string) string {
  return strings.TrimSpace(input)
}
