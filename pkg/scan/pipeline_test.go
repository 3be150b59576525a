package scan

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/painradar/painradar/pkg/domain"
)

func newTestPipeline() *Pipeline {
	signals := []domain.Signal{
		{Phrase: "i would pay for", Strength: 2.0},
		{Phrase: "so frustrating", Strength: 1.0},
	}
	industries := []domain.IndustryRule{
		{Label: "legal", Keywords: []string{"legal firm", "law firm"}},
		{Label: "finance", Keywords: []string{"bookkeeping", "accounting"}},
	}
	return NewPipeline(signals, industries, domain.Weights{Engagement: 1.5, Signal: 10, Industry: 5}, 500)
}

func TestPipeline_Process(t *testing.T) {
	p := newTestPipeline()

	item := domain.SourceItem{
		Source:     "forum-a",
		ID:         "1",
		Title:      "",
		Text:       "I would pay for a tool that auto-reconciles invoices for my legal firm",
		Engagement: 42,
	}

	opp, ok, err := p.Process(item)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"i would pay for"}, opp.MatchedSignals)
	assert.Equal(t, []string{"legal"}, opp.MatchedIndustries)

	// same item with zero engagement scores strictly lower
	zeroItem := item
	zeroItem.Engagement = 0
	zeroOpp, ok, err := p.Process(zeroItem)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Greater(t, opp.PriorityScore, zeroOpp.PriorityScore)
}

func TestPipeline_Process_TitleParticipatesInMatching(t *testing.T) {
	p := newTestPipeline()

	opp, ok, err := p.Process(domain.SourceItem{
		Source: "forum-a", ID: "2",
		Title: "bookkeeping is so frustrating",
		Text:  "",
	})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"so frustrating"}, opp.MatchedSignals)
	assert.Equal(t, []string{"finance"}, opp.MatchedIndustries)
}

func TestPipeline_Process_NoMatchNoError(t *testing.T) {
	p := newTestPipeline()

	_, ok, err := p.Process(domain.SourceItem{
		Source: "forum-a", ID: "3",
		Text: "nothing configured appears in this text",
	})
	require.NoError(t, err)
	assert.False(t, ok)

	stats := p.Stats()
	assert.Equal(t, 1, stats.ItemsSeen)
	assert.Equal(t, 1, stats.NoSignal)
	assert.Equal(t, 0, stats.Matched)
}

func TestPipeline_Process_SignalWithoutIndustry(t *testing.T) {
	p := newTestPipeline()

	_, ok, err := p.Process(domain.SourceItem{
		Source: "forum-a", ID: "4",
		Text: "this hobby is so frustrating", // signal but no industry
	})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, p.Stats().NoIndustry)
}

func TestPipeline_Process_MalformedCounted(t *testing.T) {
	p := newTestPipeline()

	_, ok, err := p.Process(domain.SourceItem{
		Source: "forum-a", ID: "5",
		Text:       "I would pay for help with my law firm",
		Engagement: -1,
	})
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, p.Stats().Malformed)
}

func TestPipeline_ProcessAll(t *testing.T) {
	p := newTestPipeline()
	agg := NewAggregator(0)

	items := make(chan domain.SourceItem)
	go func() {
		defer close(items)
		for i := 0; i < 50; i++ {
			items <- domain.SourceItem{
				Source:     domain.SourceReddit,
				ID:         fmt.Sprintf("post-%d", i),
				Text:       "accounting is so frustrating at our firm",
				Engagement: i,
			}
		}
		// matched by nothing
		items <- domain.SourceItem{Source: domain.SourceReddit, ID: "noise", Text: "nothing here"}
		// malformed, skipped with a warning
		items <- domain.SourceItem{Source: domain.SourceReddit, ID: "bad", Text: "so frustrating accounting", Engagement: -3}
	}()

	p.ProcessAll(context.Background(), items, agg, 4)

	assert.Equal(t, 50, agg.Len())
	stats := p.Stats()
	assert.Equal(t, 52, stats.ItemsSeen)
	assert.Equal(t, 50, stats.Matched)
	assert.Equal(t, 1, stats.Malformed)
	assert.Equal(t, 1, stats.NoSignal)
}

func TestPipeline_Determinism(t *testing.T) {
	run := func() []domain.Opportunity {
		p := newTestPipeline()
		agg := NewAggregator(10)
		items := make(chan domain.SourceItem)
		go func() {
			defer close(items)
			for i := 0; i < 30; i++ {
				items <- domain.SourceItem{
					Source:     domain.SourceHackerNews,
					ID:         fmt.Sprintf("%d", i),
					Text:       "I would pay for better bookkeeping at my law firm",
					Engagement: i % 7,
				}
			}
		}()
		p.ProcessAll(context.Background(), items, agg, 8)
		return agg.Result()
	}

	first := run()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, run())
	}
}
