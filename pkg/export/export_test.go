package export

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/painradar/painradar/pkg/domain"
)

func sampleOpportunities() []domain.Opportunity {
	return []domain.Opportunity{
		{
			Source:            domain.SourceReddit,
			ID:                "r1",
			Title:             "wish there was a scheduling tool",
			TextSnippet:       "double bookings, every single week",
			URL:               "https://reddit.com/r/lawfirm/r1",
			Engagement:        42,
			MatchedSignals:    []string{"wish there was"},
			MatchedIndustries: []string{"legal", "healthcare"},
			PriorityScore:     22.567,
		},
		{
			Source:         domain.SourceHackerNews,
			ID:             "h1",
			Title:          "so frustrating to track invoices",
			Engagement:     7,
			MatchedSignals: []string{"so frustrating"},
			PriorityScore:  13.1,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, WriteCSV(&buf, sampleOpportunities()))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{
		"priority_score", "source", "id", "title", "text_snippet", "url",
		"engagement", "matched_signals", "matched_industries",
	}, records[0])

	assert.Equal(t, []string{
		"22.57", "reddit", "r1", "wish there was a scheduling tool",
		"double bookings, every single week", "https://reddit.com/r/lawfirm/r1",
		"42", "wish there was", "legal, healthcare",
	}, records[1])

	assert.Equal(t, "13.10", records[2][0])
	assert.Equal(t, "hackernews", records[2][1])
	assert.Empty(t, records[2][8])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, WriteCSV(&buf, nil))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "header only")
}

func TestWriteJSON(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, WriteJSON(&buf, sampleOpportunities()))

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(buf.String()), &decoded))
	require.Len(t, decoded, 2)

	assert.InDelta(t, 22.567, decoded[0]["priority_score"], 0.0001)
	assert.Equal(t, "reddit", decoded[0]["source"])
	assert.Equal(t, "r1", decoded[0]["id"])
	assert.Equal(t, []interface{}{"legal", "healthcare"}, decoded[0]["matched_industries"])

	// output is indented for direct human consumption
	assert.Contains(t, buf.String(), "\n  {")
}

func TestWriteJSON_Empty(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}
