// Package export writes ranked opportunities to tabular and structured
// formats with a stable field order.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/painradar/painradar/pkg/domain"
)

// csvHeader is the stable column order of tabular output
var csvHeader = []string{
	"priority_score", "source", "id", "title", "text_snippet", "url",
	"engagement", "matched_signals", "matched_industries",
}

// WriteCSV writes the opportunities as CSV, one row per opportunity
func WriteCSV(w io.Writer, opps []domain.Opportunity) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, opp := range opps {
		row := []string{
			strconv.FormatFloat(opp.PriorityScore, 'f', 2, 64),
			string(opp.Source),
			opp.ID,
			opp.Title,
			opp.TextSnippet,
			opp.URL,
			strconv.Itoa(opp.Engagement),
			strings.Join(opp.MatchedSignals, ", "),
			strings.Join(opp.MatchedIndustries, ", "),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// jsonOpportunity fixes the field order and names of structured output
type jsonOpportunity struct {
	PriorityScore     float64  `json:"priority_score"`
	Source            string   `json:"source"`
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	TextSnippet       string   `json:"text_snippet"`
	URL               string   `json:"url"`
	Engagement        int      `json:"engagement"`
	MatchedSignals    []string `json:"matched_signals"`
	MatchedIndustries []string `json:"matched_industries"`
}

// WriteJSON writes the opportunities as an indented JSON array
func WriteJSON(w io.Writer, opps []domain.Opportunity) error {
	out := make([]jsonOpportunity, len(opps))
	for i, opp := range opps {
		out[i] = jsonOpportunity{
			PriorityScore:     opp.PriorityScore,
			Source:            string(opp.Source),
			ID:                opp.ID,
			Title:             opp.Title,
			TextSnippet:       opp.TextSnippet,
			URL:               opp.URL,
			Engagement:        opp.Engagement,
			MatchedSignals:    opp.MatchedSignals,
			MatchedIndustries: opp.MatchedIndustries,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode opportunities: %w", err)
	}
	return nil
}
