package services

import (
  "context"
  "encoding/json"
  "fmt"
  "regexp"
  "strings"

  "github.com/google/uuid"
  "github.com/yungbote/ingredient-copilot-backend/internal/logger"
  "github.com/yungbote/ingredient-copilot-backend/internal/repos"
  "github.com/yungbote/ingredient-copilot-backend/internal/requestdata"
  "github.com/yungbote/ingredient-copilot-backend/internal/types"
)

type AnalysisRequest struct {
  Query             string      `json:"query,omitempty"`
  ExtractedText     string      `json:"extractedText,omitempty"`
  ProductName       string      `json:"productName,omitempty"`
  HealthConcerns    []string    `json:"healthConcerns,omitempty"`
}

type AnalysisService interface {
  Analyze(ctx context.Context, req AnalysisRequest) (*types.AnalysisResult, error)
}

type analysisService struct {
  log           *logger.Logger
  gateway       AIGatewayClient
  aiCallLogRepo repos.AICallLogRepo
}

func NewAnalysisService(log *logger.Logger, gateway AIGatewayClient, aiCallLogRepo repos.AICallLogRepo) AnalysisService {
  serviceLog := log.With("service", "AnalysisService")
  return &analysisService{log: serviceLog, gateway: gateway, aiCallLogRepo: aiCallLogRepo}
}

const analysisCallType = "ingredient_analysis"

// Analyze runs the single prompt-and-forward cycle: build the nutritionist
// prompt, make one chat-completion call, pull the JSON object out of the
// model's text, and degrade to a synthetic result when the payload does not
// parse. Gateway 429/402 surface as ErrRateLimited/ErrCreditsExhausted.
func (s *analysisService) Analyze(ctx context.Context, req AnalysisRequest) (*types.AnalysisResult, error) {
  if s.gateway == nil {
    return nil, fmt.Errorf("AI gateway is not configured")
  }

  systemPrompt := buildSystemPrompt(req.HealthConcerns)
  userMessage := buildUserMessage(req)

  content, err := s.gateway.ChatCompletion(ctx, systemPrompt, userMessage)
  s.recordCall(ctx, userMessage, content, err)
  if err != nil {
    return nil, err
  }

  result, ok := extractAnalysisJSON(content)
  if !ok {
    s.log.Warn("Failed to parse AI response as JSON, using fallback result")
    result = fallbackResult(req.ProductName, content)
  }
  return result, nil
}

func buildSystemPrompt(healthConcerns []string) string {
  concernList := "None specified"
  if len(healthConcerns) > 0 {
    concernList = strings.Join(healthConcerns, ", ")
  }
  return `You are an expert nutritionist and food scientist AI assistant called "Ingredient Co-Pilot". Your role is to analyze food ingredients and provide personalized health insights.

IMPORTANT GUIDELINES:
1. Always be factual and cite scientific evidence when possible
2. Consider the user's health concerns: ` + concernList + `
3. Provide balanced perspectives - mention both benefits and risks
4. Rate your confidence as LOW, MEDIUM, or HIGH
5. Suggest healthier alternatives when appropriate
6. Flag potential allergens and interactions
7. Use clear, non-technical language

RESPONSE FORMAT:
You MUST respond with valid JSON in this exact structure:
{
  "productName": "Name of the product",
  "healthScore": 1-10 (10 being healthiest),
  "summary": "Brief 2-3 sentence summary",
  "concerns": ["List of flagged health concerns based on user profile"],
  "insights": [
    {
      "name": "Ingredient name",
      "explanation": "What this ingredient is",
      "healthImpact": "positive" | "neutral" | "concern" | "warning",
      "impacts": ["Impact 1", "Impact 2"],
      "tradeoffs": "Balanced perspective on this ingredient",
      "alternatives": ["Alternative 1", "Alternative 2"],
      "confidence": "low" | "medium" | "high"
    }
  ],
  "recommendations": ["Recommendation 1", "Recommendation 2"],
  "allergenAlerts": ["List any allergens detected"],
  "drugInteractions": ["Potential drug-food interactions if user is on medications"]
}`
}

func buildUserMessage(req AnalysisRequest) string {
  concernList := "None specified"
  if len(req.HealthConcerns) > 0 {
    concernList = strings.Join(req.HealthConcerns, ", ")
  }

  var b strings.Builder
  b.WriteString("Analyze the following food product:\n\n")
  if req.ProductName != "" {
    fmt.Fprintf(&b, "Product: %s\n", req.ProductName)
  }
  if req.Query != "" {
    fmt.Fprintf(&b, "User Query: %s\n", req.Query)
  }
  if req.ExtractedText != "" {
    fmt.Fprintf(&b, "Ingredients/Label Text: %s\n", req.ExtractedText)
  }
  b.WriteString("\nUser's Health Profile:\n")
  fmt.Fprintf(&b, "- Health Concerns: %s\n", concernList)
  b.WriteString("\nProvide a comprehensive analysis focusing on their specific health needs. Be thorough but conversational.")
  return b.String()
}

var (
  fencedJSONPattern  = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
  fencedBlockPattern = regexp.MustCompile("(?s)```\\s*(.*?)\\s*```")
)

// extractAnalysisJSON is the fallible parse step: it returns the decoded
// result and true, or nil and false when the text is not the documented
// shape. Markdown code fences around the object are tolerated.
func extractAnalysisJSON(content string) (*types.AnalysisResult, bool) {
  jsonString := content
  if match := fencedJSONPattern.FindStringSubmatch(content); match != nil {
    jsonString = match[1]
  } else if match := fencedBlockPattern.FindStringSubmatch(content); match != nil {
    jsonString = match[1]
  }

  var result types.AnalysisResult
  if err := json.Unmarshal([]byte(strings.TrimSpace(jsonString)), &result); err != nil {
    return nil, false
  }
  return &result, true
}

// fallbackResult carries the raw model text as the summary so the caller
// never sees a parse fault, at the cost of a degraded analysis.
func fallbackResult(productName string, content string) *types.AnalysisResult {
  if productName == "" {
    productName = "Unknown Product"
  }
  return &types.AnalysisResult{
    ProductName:      productName,
    HealthScore:      5,
    Summary:          content,
    Concerns:         []string{},
    Insights:         []types.IngredientInsight{},
    Recommendations:  []string{"Unable to parse detailed analysis. Please try again."},
    AllergenAlerts:   []string{},
    DrugInteractions: []string{},
  }
}

// recordCall persists an AICallLog row, best effort. Log write failures are
// swallowed so they can never affect the analysis outcome.
func (s *analysisService) recordCall(ctx context.Context, prompt string, response string, callErr error) {
  if s.aiCallLogRepo == nil {
    return
  }
  entry := &types.AICallLog{
    ID:       uuid.New(),
    CallType: analysisCallType,
    Model:    s.gateway.Model(),
    Prompt:   prompt,
    Response: response,
    Success:  callErr == nil,
  }
  if callErr != nil {
    entry.Error = callErr.Error()
  }
  if rd := requestdata.GetRequestData(ctx); rd != nil && rd.UserID != uuid.Nil {
    userID := rd.UserID
    entry.UserID = &userID
  }
  if _, err := s.aiCallLogRepo.Create(ctx, nil, []*types.AICallLog{entry}); err != nil {
    s.log.Warn("Failed to write AI call log", "error", err)
  }
}
