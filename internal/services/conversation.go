package services

import (
  "context"
  "encoding/base64"
  "errors"
  "fmt"
  "strings"
  "sync"
  "time"

  "github.com/google/uuid"

  "github.com/yungbote/ingredient-copilot-backend/internal/logger"
  "github.com/yungbote/ingredient-copilot-backend/internal/requestdata"
  "github.com/yungbote/ingredient-copilot-backend/internal/types"
)

const (
  defaultImageQuery   = "Analyze this food label"
  busyReplyMessage    = "I'm a bit busy right now. Please try again in a moment."
  creditsReplyMessage = "AI credits exhausted. Please add more credits."
  failedReplyMessage  = "I had trouble analyzing that. Could you try a clearer image or describe the product you're asking about?"
)

// ConversationService drives one chat turn end to end: append the user
// message and a loading placeholder, run OCR and analysis, then swap the
// placeholder for the real reply. Session logs are append-only and held in
// memory; they do not survive a restart.
type ConversationService interface {
  Messages(sessionID string) []types.Message
  Submit(ctx context.Context, sessionID string, text string, image []byte, mimeType string) ([]types.Message, error)
}

type conversationService struct {
  mu       sync.Mutex
  sessions map[string][]types.Message

  ocr      OCRService
  analysis AnalysisService
  profile  ProfileService
  history  HistoryService
  offline  bool
  log      *logger.Logger
}

func NewConversationService(
  log *logger.Logger,
  ocr OCRService,
  analysis AnalysisService,
  profile ProfileService,
  history HistoryService,
  offline bool,
) ConversationService {
  return &conversationService{
    sessions: make(map[string][]types.Message),
    ocr:      ocr,
    analysis: analysis,
    profile:  profile,
    history:  history,
    offline:  offline,
    log:      log.With("service", "ConversationService"),
  }
}

func (s *conversationService) Messages(sessionID string) []types.Message {
  s.mu.Lock()
  defer s.mu.Unlock()
  return append([]types.Message{}, s.sessions[sessionID]...)
}

func (s *conversationService) appendMessages(sessionID string, msgs ...types.Message) {
  s.mu.Lock()
  defer s.mu.Unlock()
  s.sessions[sessionID] = append(s.sessions[sessionID], msgs...)
}

// replacePlaceholder drops every loading message from the session and appends
// the replacement, so a placeholder can never leak into a final log even if
// more than one got stranded.
func (s *conversationService) replacePlaceholder(sessionID string, replacement types.Message) {
  s.mu.Lock()
  defer s.mu.Unlock()
  kept := make([]types.Message, 0, len(s.sessions[sessionID]))
  for _, msg := range s.sessions[sessionID] {
    if msg.IsLoading {
      continue
    }
    kept = append(kept, msg)
  }
  s.sessions[sessionID] = append(kept, replacement)
}

func (s *conversationService) Submit(ctx context.Context, sessionID string, text string, image []byte, mimeType string) ([]types.Message, error) {
  text = strings.TrimSpace(text)
  if text == "" && len(image) == 0 {
    return s.Messages(sessionID), nil
  }

  content := text
  if content == "" {
    content = defaultImageQuery
  }
  userMsg := types.Message{
    ID:        uuid.New().String(),
    Role:      types.RoleUser,
    Content:   content,
    Timestamp: time.Now(),
  }
  if len(image) > 0 {
    userMsg.ImageURL = fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))
  }
  placeholder := types.Message{
    ID:        uuid.New().String(),
    Role:      types.RoleAssistant,
    Content:   "",
    Timestamp: time.Now(),
    IsLoading: true,
  }
  s.appendMessages(sessionID, userMsg, placeholder)

  extractedText := ""
  if len(image) > 0 {
    ocrResult := s.ocr.ExtractText(ctx, image, mimeType)
    if !ocrResult.Success {
      s.replacePlaceholder(sessionID, assistantReply(ocrResult.Error))
      return s.Messages(sessionID), nil
    }
    extractedText = ocrResult.Text
  }

  if s.offline {
    s.runOffline(sessionID, text)
    return s.Messages(sessionID), nil
  }

  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    s.replacePlaceholder(sessionID, assistantReply(failedReplyMessage))
    return s.Messages(sessionID), nil
  }
  concerns, err := s.profile.GetConcernsForUser(ctx, rd.UserID)
  if err != nil {
    s.log.Warn("Failed to load health concerns, analyzing without profile", "error", err)
    concerns = nil
  }

  result, err := s.analysis.Analyze(ctx, AnalysisRequest{
    Query:          text,
    ExtractedText:  extractedText,
    HealthConcerns: concerns,
  })
  if err != nil {
    reply := failedReplyMessage
    switch {
    case errors.Is(err, ErrRateLimited):
      reply = busyReplyMessage
    case errors.Is(err, ErrCreditsExhausted):
      reply = creditsReplyMessage
    }
    s.log.Error("Analysis failed", "error", err)
    s.replacePlaceholder(sessionID, assistantReply(reply))
    return s.Messages(sessionID), nil
  }

  s.replacePlaceholder(sessionID, resultMessage(result))

  var query *string
  if text != "" {
    query = &text
  }
  productName := result.ProductName
  go s.history.Save(rd.UserID, &productName, query, result)

  return s.Messages(sessionID), nil
}

// runOffline serves the canned analysis path used when no gateway is wired:
// concerns inferred from the query text are merged into the matched record's
// own concern list, and the response prefix names the merged set.
func (s *conversationService) runOffline(sessionID string, text string) {
  inferred := InferHealthConcerns(text)
  result := GetMockAnalysis(text)
  if len(inferred) > 0 && result.HealthProfile != nil {
    result.HealthProfile.Concerns = mergeConcerns(inferred, result.HealthProfile.Concerns)
  }

  var concerns []string
  if result.HealthProfile != nil {
    concerns = result.HealthProfile.Concerns
  }
  prefix := fmt.Sprintf("Here's my analysis of %s:", result.ProductName)
  if len(concerns) > 0 {
    prefix = fmt.Sprintf("Based on your %s concerns, here's my analysis of %s:", strings.Join(concerns, " and "), result.ProductName)
  }

  analysisMsg := resultMessage(result)
  analysisMsg.Content = prefix
  s.replacePlaceholder(sessionID, analysisMsg)
  s.appendMessages(sessionID, assistantReply(result.Summary))
}

func assistantReply(content string) types.Message {
  return types.Message{
    ID:        uuid.New().String(),
    Role:      types.RoleAssistant,
    Content:   content,
    Timestamp: time.Now(),
  }
}

func resultMessage(result *types.AnalysisResult) types.Message {
  return types.Message{
    ID:               uuid.New().String(),
    Role:             types.RoleAssistant,
    Content:          result.Summary,
    Timestamp:        time.Now(),
    Insights:         result.Insights,
    HealthScore:      result.HealthScore,
    Concerns:         result.Concerns,
    Recommendations:  result.Recommendations,
    AllergenAlerts:   result.AllergenAlerts,
    DrugInteractions: result.DrugInteractions,
  }
}

func mergeConcerns(inferred, existing []string) []string {
  seen := make(map[string]bool, len(inferred)+len(existing))
  merged := []string{}
  for _, concern := range append(append([]string{}, inferred...), existing...) {
    if concern == "" || seen[concern] {
      continue
    }
    seen[concern] = true
    merged = append(merged, concern)
  }
  return merged
}
