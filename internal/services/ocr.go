package services

import (
  "context"
  "regexp"
  "strings"
  "github.com/yungbote/ingredient-copilot-backend/internal/logger"
  "github.com/yungbote/ingredient-copilot-backend/internal/types"
)

// minOCRConfidence gates recognition results on the provider's 0-100 scale.
const minOCRConfidence = 30

const (
  ocrUnreadableMessage    = "Could not read text clearly. Try better lighting or a clearer image."
  ocrFailedMessage        = "Failed to process image. Please try again."
)

type OCRService interface {
  ExtractText(ctx context.Context, img []byte, mimeType string) *types.OCRResult
}

type ocrService struct {
  log            *logger.Logger
  visionProvider VisionProviderService
  languageHint   string
}

func NewOCRService(log *logger.Logger, visionProvider VisionProviderService, languageHint string) OCRService {
  serviceLog := log.With("service", "OCRService")
  if languageHint == "" {
    languageHint = "en"
  }
  return &ocrService{log: serviceLog, visionProvider: visionProvider, languageHint: languageHint}
}

// ExtractText never returns an error: every failure collapses into the same
// unsuccessful shape, with no distinction between "no text found" and an
// engine fault beyond the message copy.
func (os *ocrService) ExtractText(ctx context.Context, img []byte, mimeType string) *types.OCRResult {
  if os.visionProvider == nil {
    os.log.Warn("No vision provider configured, reporting OCR failure")
    return &types.OCRResult{Text: "", Confidence: 0, Success: false, Error: ocrFailedMessage}
  }

  text, confidence, err := os.visionProvider.RecognizeImageText(ctx, img, os.languageHint)
  if err != nil {
    os.log.Warn("OCR failed", "error", err)
    return &types.OCRResult{Text: "", Confidence: 0, Success: false, Error: ocrFailedMessage}
  }

  text = strings.TrimSpace(text)
  if text == "" || confidence < minOCRConfidence {
    return &types.OCRResult{Text: "", Confidence: 0, Success: false, Error: ocrUnreadableMessage}
  }

  return &types.OCRResult{Text: text, Confidence: confidence, Success: true}
}

var (
  ingredientListPatterns = []*regexp.Regexp{
    regexp.MustCompile(`(?i)ingredients?[:\s]+([^.]+)`),
    regexp.MustCompile(`(?i)contains?[:\s]+([^.]+)`),
  }
  parentheticalPattern = regexp.MustCompile(`\([^)]*\)`)
)

// ExtractIngredients pulls an ingredient list out of raw label text: find the
// "ingredients:"/"contains:" section if present, split on commas/semicolons,
// strip parentheticals, drop junk fragments, dedupe keeping first occurrence.
func ExtractIngredients(ocrText string) []string {
  ingredientText := ocrText
  for _, pattern := range ingredientListPatterns {
    if match := pattern.FindStringSubmatch(ocrText); match != nil {
      ingredientText = match[1]
      break
    }
  }

  parts := strings.FieldsFunc(ingredientText, func(r rune) bool {
    return r == ',' || r == ';'
  })

  seen := make(map[string]bool, len(parts))
  ingredients := make([]string, 0, len(parts))
  for _, part := range parts {
    ing := strings.TrimSpace(part)
    if len(ing) <= 1 || len(ing) >= 100 {
      continue
    }
    ing = strings.TrimSpace(parentheticalPattern.ReplaceAllString(ing, ""))
    if ing == "" || seen[ing] {
      continue
    }
    seen[ing] = true
    ingredients = append(ingredients, ing)
  }
  return ingredients
}
