package services

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/ingredient-copilot-backend/internal/logger"
)

type stubVisionProvider struct {
	text       string
	confidence float64
	err        error
}

func (s *stubVisionProvider) RecognizeImageText(ctx context.Context, img []byte, languageHint string) (string, float64, error) {
	return s.text, s.confidence, s.err
}

func (s *stubVisionProvider) Close() error { return nil }

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	return log
}

func TestExtractTextConfidenceGate(t *testing.T) {
	cases := []struct {
		name        string
		provider    VisionProviderService
		wantSuccess bool
		wantText    string
		wantError   string
	}{
		{
			name:        "above_threshold",
			provider:    &stubVisionProvider{text: "Ingredients: Water, Sugar", confidence: 85},
			wantSuccess: true,
			wantText:    "Ingredients: Water, Sugar",
		},
		{
			name:        "at_threshold",
			provider:    &stubVisionProvider{text: "Ingredients: Water", confidence: 30},
			wantSuccess: true,
			wantText:    "Ingredients: Water",
		},
		{
			name:        "below_threshold",
			provider:    &stubVisionProvider{text: "blurry garbage", confidence: 29.9},
			wantSuccess: false,
			wantError:   "Could not read text clearly. Try better lighting or a clearer image.",
		},
		{
			name:        "empty_text",
			provider:    &stubVisionProvider{text: "   ", confidence: 95},
			wantSuccess: false,
			wantError:   "Could not read text clearly. Try better lighting or a clearer image.",
		},
		{
			name:        "engine_error",
			provider:    &stubVisionProvider{err: errors.New("rpc unavailable")},
			wantSuccess: false,
			wantError:   "Failed to process image. Please try again.",
		},
		{
			name:        "no_provider",
			provider:    nil,
			wantSuccess: false,
			wantError:   "Failed to process image. Please try again.",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewOCRService(testLogger(t), tc.provider, "en")
			got := svc.ExtractText(context.Background(), []byte("img"), "image/jpeg")
			if got.Success != tc.wantSuccess {
				t.Fatalf("Success = %v, want %v", got.Success, tc.wantSuccess)
			}
			if got.Text != tc.wantText {
				t.Fatalf("Text = %q, want %q", got.Text, tc.wantText)
			}
			if got.Error != tc.wantError {
				t.Fatalf("Error = %q, want %q", got.Error, tc.wantError)
			}
		})
	}
}

func TestExtractIngredients(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "labeled_list",
			text: "Nutrition Facts. Ingredients: Potatoes, Palm Oil, Salt. Best before 2027",
			want: []string{"Potatoes", "Palm Oil", "Salt"},
		},
		{
			name: "contains_prefix",
			text: "Contains: Milk; Soy; Wheat",
			want: []string{"Milk", "Soy", "Wheat"},
		},
		{
			name: "strips_parentheticals",
			text: "Ingredients: Sugar (cane), Cocoa Butter",
			want: []string{"Sugar", "Cocoa Butter"},
		},
		{
			name: "dedupes",
			text: "Ingredients: Salt, Water, Salt",
			want: []string{"Salt", "Water"},
		},
		{
			name: "no_label_splits_raw_text",
			text: "Water, Barley Malt",
			want: []string{"Water", "Barley Malt"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractIngredients(tc.text)
			if len(got) != len(tc.want) {
				t.Fatalf("ExtractIngredients(%q) = %v, want %v", tc.text, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("ingredient[%d] = %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}
