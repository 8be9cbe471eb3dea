package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/ingredient-copilot-backend/internal/requestdata"
	"github.com/yungbote/ingredient-copilot-backend/internal/types"
)

type stubAnalysisService struct {
	result *types.AnalysisResult
	err    error
	calls  int
}

func (s *stubAnalysisService) Analyze(ctx context.Context, req AnalysisRequest) (*types.AnalysisResult, error) {
	s.calls++
	return s.result, s.err
}

type stubProfileService struct {
	concerns []string
}

func (s *stubProfileService) Get(ctx context.Context) (*ProfileView, error) {
	return &ProfileView{HealthConcerns: s.concerns}, nil
}

func (s *stubProfileService) GetConcernsForUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return s.concerns, nil
}

func (s *stubProfileService) Update(ctx context.Context, displayName string, healthConcerns []string) (*ProfileView, error) {
	s.concerns = healthConcerns
	return &ProfileView{DisplayName: displayName, HealthConcerns: healthConcerns}, nil
}

type stubHistoryService struct {
	saved chan *types.AnalysisResult
}

func (s *stubHistoryService) List(ctx context.Context) ([]HistoryEntry, error) {
	return nil, nil
}

func (s *stubHistoryService) Save(userID uuid.UUID, productName, query *string, result *types.AnalysisResult) {
	if s.saved != nil {
		s.saved <- result
	}
}

func (s *stubHistoryService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func authedContext() context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{UserID: uuid.New()})
}

func newTestConversation(t *testing.T, analysis AnalysisService, history HistoryService, provider VisionProviderService, offline bool) ConversationService {
	t.Helper()
	log := testLogger(t)
	ocr := NewOCRService(log, provider, "en")
	return NewConversationService(log, ocr, analysis, &stubProfileService{}, history, offline)
}

func TestSubmitEmptyTurnIsNoop(t *testing.T) {
	analysis := &stubAnalysisService{}
	svc := newTestConversation(t, analysis, &stubHistoryService{}, nil, false)

	messages, err := svc.Submit(authedContext(), "s1", "   ", nil, "")
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("empty submit appended %d messages", len(messages))
	}
	if analysis.calls != 0 {
		t.Fatalf("empty submit triggered analysis")
	}
}

func TestSubmitSuccessReplacesPlaceholderAndSaves(t *testing.T) {
	result := &types.AnalysisResult{
		ProductName: "Granola Bar",
		Summary:     "Mostly fine in moderation.",
		HealthScore: 7,
		Concerns:    []string{"added sugar"},
	}
	analysis := &stubAnalysisService{result: result}
	history := &stubHistoryService{saved: make(chan *types.AnalysisResult, 1)}
	svc := newTestConversation(t, analysis, history, nil, false)

	messages, err := svc.Submit(authedContext(), "s1", "granola bar ok?", nil, "")
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("got %d messages, want user + assistant", len(messages))
	}
	for _, msg := range messages {
		if msg.IsLoading {
			t.Fatalf("loading placeholder leaked into final log")
		}
	}
	reply := messages[1]
	if reply.Role != types.RoleAssistant {
		t.Fatalf("second message role = %q", reply.Role)
	}
	if reply.Content != result.Summary {
		t.Fatalf("reply content = %q, want summary", reply.Content)
	}
	if reply.HealthScore != 7 {
		t.Fatalf("reply healthScore = %d, want 7", reply.HealthScore)
	}

	select {
	case saved := <-history.saved:
		if saved.ProductName != "Granola Bar" {
			t.Fatalf("saved product = %q", saved.ProductName)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("history save was never called")
	}
}

func TestSubmitRateLimitedReply(t *testing.T) {
	analysis := &stubAnalysisService{err: ErrRateLimited}
	history := &stubHistoryService{saved: make(chan *types.AnalysisResult, 1)}
	svc := newTestConversation(t, analysis, history, nil, false)

	messages, err := svc.Submit(authedContext(), "s1", "analyze this", nil, "")
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	reply := messages[len(messages)-1]
	if reply.Content != "I'm a bit busy right now. Please try again in a moment." {
		t.Fatalf("rate limited reply = %q", reply.Content)
	}
	select {
	case <-history.saved:
		t.Fatalf("failed analysis must not be saved to history")
	default:
	}
}

func TestSubmitCreditsExhaustedReply(t *testing.T) {
	analysis := &stubAnalysisService{err: ErrCreditsExhausted}
	history := &stubHistoryService{saved: make(chan *types.AnalysisResult, 1)}
	svc := newTestConversation(t, analysis, history, nil, false)

	messages, _ := svc.Submit(authedContext(), "s1", "analyze this", nil, "")
	reply := messages[len(messages)-1]
	if reply.Content != "AI credits exhausted. Please add more credits." {
		t.Fatalf("credits exhausted reply = %q", reply.Content)
	}
	select {
	case <-history.saved:
		t.Fatalf("failed analysis must not be saved to history")
	default:
	}
}

func TestSubmitGenericFailureReply(t *testing.T) {
	analysis := &stubAnalysisService{err: errors.New("upstream returned 500")}
	svc := newTestConversation(t, analysis, &stubHistoryService{}, nil, false)

	messages, _ := svc.Submit(authedContext(), "s1", "analyze this", nil, "")
	reply := messages[len(messages)-1]
	if reply.Content != "I had trouble analyzing that. Could you try a clearer image or describe the product you're asking about?" {
		t.Fatalf("failure reply = %q", reply.Content)
	}
}

func TestSubmitOCRFailureSkipsAnalysis(t *testing.T) {
	analysis := &stubAnalysisService{result: &types.AnalysisResult{Summary: "should not appear"}}
	provider := &stubVisionProvider{text: "fuzzy", confidence: 10}
	svc := newTestConversation(t, analysis, &stubHistoryService{}, provider, false)

	messages, err := svc.Submit(authedContext(), "s1", "", []byte("img"), "image/jpeg")
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if analysis.calls != 0 {
		t.Fatalf("analysis ran despite OCR failure")
	}
	if messages[0].Content != "Analyze this food label" {
		t.Fatalf("image-only user message = %q", messages[0].Content)
	}
	reply := messages[len(messages)-1]
	if reply.Content != "Could not read text clearly. Try better lighting or a clearer image." {
		t.Fatalf("OCR failure reply = %q", reply.Content)
	}
}

func TestSubmitOfflineVariant(t *testing.T) {
	svc := newTestConversation(t, &stubAnalysisService{}, &stubHistoryService{}, nil, true)

	messages, err := svc.Submit(authedContext(), "s1", "Are these chips safe for diabetics?", nil, "")
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("got %d messages, want user + analysis + summary", len(messages))
	}
	analysisMsg := messages[1]
	wantPrefix := "Based on your diabetes and heart health and sodium intake concerns, here's my analysis of Classic Potato Chips:"
	if analysisMsg.Content != wantPrefix {
		t.Fatalf("analysis message = %q, want %q", analysisMsg.Content, wantPrefix)
	}
	if len(analysisMsg.Insights) == 0 {
		t.Fatalf("offline analysis message has no insights")
	}
	summaryMsg := messages[2]
	if summaryMsg.Role != types.RoleAssistant || summaryMsg.Content == "" {
		t.Fatalf("missing trailing summary message: %+v", summaryMsg)
	}
}

func TestSubmitOfflineNamesRecordConcernsWithoutInference(t *testing.T) {
	svc := newTestConversation(t, &stubAnalysisService{}, &stubHistoryService{}, nil, true)

	messages, err := svc.Submit(authedContext(), "s1", "what about these chips?", nil, "")
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	analysisMsg := messages[1]
	wantPrefix := "Based on your heart health and sodium intake concerns, here's my analysis of Classic Potato Chips:"
	if analysisMsg.Content != wantPrefix {
		t.Fatalf("analysis message = %q, want %q", analysisMsg.Content, wantPrefix)
	}
}
