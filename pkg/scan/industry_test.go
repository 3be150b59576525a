package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/painradar/painradar/pkg/domain"
)

func TestIndustryClassifier_Classify(t *testing.T) {
	rules := []domain.IndustryRule{
		{Label: "legal", Keywords: []string{"legal firm", "law firm", "attorney"}},
		{Label: "finance", Keywords: []string{"fintech", "accounting", "bookkeeping"}},
		{Label: "healthcare", Keywords: []string{"clinic", "hospital", "HIPAA"}},
	}
	classifier := NewIndustryClassifier(rules)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "single industry",
			text: "our law firm drowns in paperwork",
			want: []string{"legal"},
		},
		{
			name: "multiple industries",
			text: "accounting software for my clinic",
			want: []string{"finance", "healthcare"},
		},
		{
			name: "keyword case-insensitive",
			text: "we need hipaa compliant storage",
			want: []string{"healthcare"},
		},
		{
			name: "two keywords of one industry count once",
			text: "attorney at a law firm",
			want: []string{"legal"},
		},
		{
			name: "no industry",
			text: "random chatter about video games",
			want: nil,
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Classify(tt.text)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestIndustryClassifier_Labels(t *testing.T) {
	classifier := NewIndustryClassifier([]domain.IndustryRule{
		{Label: "legal", Keywords: []string{"law firm"}},
		{Label: "finance", Keywords: []string{"fintech"}},
	})
	assert.Equal(t, []string{"legal", "finance"}, classifier.Labels())
}
