package services

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
	"github.com/yungbote/ingredient-copilot-backend/internal/logger"
)

// VisionProviderService is the text-recognition collaborator: image bytes and
// a language hint in, recognized text plus a 0-100 confidence out. Threshold
// policy lives in OCRService, not here.
type VisionProviderService interface {
	RecognizeImageText(ctx context.Context, img []byte, languageHint string) (string, float64, error)
	Close() error
}

type visionProviderService struct {
	log          *logger.Logger
	visionClient *vision.ImageAnnotatorClient
}

func NewVisionProviderService(log *logger.Logger) (VisionProviderService, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	slog := log.With("service", "VisionProviderService")

	creds := strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON"))
	if creds == "" {
		creds = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	ctx := context.Background()

	var (
		vClient *vision.ImageAnnotatorClient
		err     error
	)

	if creds != "" {
		vClient, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsFile(creds))
		if err != nil {
			return nil, fmt.Errorf("vision client: %w", err)
		}
	} else {
		// ADC (GKE/Cloud Run w/ attached SA)
		vClient, err = vision.NewImageAnnotatorClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("vision client: %w", err)
		}
	}

	return &visionProviderService{
		log:          slog,
		visionClient: vClient,
	}, nil
}

func (s *visionProviderService) Close() error {
	if s == nil {
		return nil
	}
	if s.visionClient != nil {
		_ = s.visionClient.Close()
	}
	return nil
}

func (s *visionProviderService) RecognizeImageText(ctx context.Context, img []byte, languageHint string) (string, float64, error) {
	if len(img) == 0 {
		return "", 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	var ictx *visionpb.ImageContext
	if languageHint != "" {
		ictx = &visionpb.ImageContext{LanguageHints: []string{languageHint}}
	}

	resp, err := s.visionClient.BatchAnnotateImages(ctx, &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{{
			Image:        &visionpb.Image{Content: img},
			Features:     []*visionpb.Feature{{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION}},
			ImageContext: ictx,
		}},
	})
	if err != nil {
		return "", 0, fmt.Errorf("vision BatchAnnotateImages: %w", err)
	}
	if len(resp.GetResponses()) == 0 {
		return "", 0, nil
	}
	annotated := resp.GetResponses()[0]
	if e := annotated.GetError(); e != nil {
		return "", 0, fmt.Errorf("vision annotate: %s", e.GetMessage())
	}
	doc := annotated.GetFullTextAnnotation()
	if doc == nil || strings.TrimSpace(doc.GetText()) == "" {
		return "", 0, nil
	}

	// Vision reports block confidence on 0..1; callers expect 0..100.
	return doc.GetText(), avgBlockConfidence(doc.GetPages()) * 100, nil
}

func avgBlockConfidence(pages []*visionpb.Page) float64 {
	var sum float64
	var n int
	for _, pg := range pages {
		if pg == nil {
			continue
		}
		for _, b := range pg.Blocks {
			if b == nil {
				continue
			}
			sum += float64(b.Confidence)
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
