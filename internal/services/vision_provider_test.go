package services

import (
	"testing"

	"cloud.google.com/go/vision/v2/apiv1/visionpb"
)

func TestAvgBlockConfidence(t *testing.T) {
	cases := []struct {
		name  string
		pages []*visionpb.Page
		want  float64
	}{
		{
			name: "no_pages",
			want: 0,
		},
		{
			name:  "page_without_blocks",
			pages: []*visionpb.Page{{}},
			want:  0,
		},
		{
			name: "averages_across_pages",
			pages: []*visionpb.Page{
				{Blocks: []*visionpb.Block{{Confidence: 0.9}, {Confidence: 0.7}}},
				{Blocks: []*visionpb.Block{{Confidence: 0.5}}},
			},
			want: 0.7,
		},
		{
			name: "skips_nil_entries",
			pages: []*visionpb.Page{
				nil,
				{Blocks: []*visionpb.Block{nil, {Confidence: 0.8}}},
			},
			want: 0.8,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := avgBlockConfidence(tc.pages)
			if diff := got - tc.want; diff > 0.0001 || diff < -0.0001 {
				t.Fatalf("avgBlockConfidence = %v, want %v", got, tc.want)
			}
		})
	}
}
