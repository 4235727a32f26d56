package report

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name        string
		description string
		expected    []string
	}{
		{
			name:        "Hashtags",
			description: "Check this out #coding #js",
			expected:    []string{"coding", "js"},
		},
		{
			name:        "Empty",
			description: "",
			expected:    []string{},
		},
		{
			name:        "Marker line",
			description: "Code Tips for Go developers",
			expected:    []string{"Code", "Tips", "for"},
		},
		{
			name:        "Marker line skips links mentions and short words",
			description: "My Tips: go to https://example.com or @gopher, a lot more",
			expected:    []string{"Tips:", "lot", "more"},
		},
		{
			name:        "Marker words are case sensitive",
			description: "some code tips and tricks here",
			expected:    []string{},
		},
		{
			name:        "Long lines are ignored",
			description: "Code " + strings.Repeat("x", 100),
			expected:    []string{},
		},
		{
			name:        "Hashtags first then lines deduplicated",
			description: "Tricks with golang #golang\n#Tricks are fun",
			expected:    []string{"golang", "Tricks", "with", "#Tricks", "are", "fun"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractKeywords(tt.description)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("ExtractKeywords(%q) mismatch (-want +got):\n%s", tt.description, diff)
			}
		})
	}
}

func TestExtractKeywordsLimit(t *testing.T) {
	var tags []string
	for i := 0; i < 15; i++ {
		tags = append(tags, fmt.Sprintf("#tag%d", i))
	}
	description := strings.Join(tags, " ")

	got := ExtractKeywords(description)
	if len(got) != maxKeywords {
		t.Fatalf("len(ExtractKeywords) = %d, want %d", len(got), maxKeywords)
	}
	if got[0] != "tag0" || got[9] != "tag9" {
		t.Errorf("ExtractKeywords kept wrong entries: %v", got)
	}
}

func TestExtractKeywordsIdempotent(t *testing.T) {
	description := "Go Code Tips and Tricks\n#go #golang #go\nVisit https://go.dev\nMore Tricks inside"

	first := ExtractKeywords(description)
	second := ExtractKeywords(description)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("ExtractKeywords not deterministic (-first +second):\n%s", diff)
	}
	if len(first) > maxKeywords {
		t.Errorf("len = %d exceeds %d", len(first), maxKeywords)
	}
}
