package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/painradar/painradar/pkg/domain"
	"github.com/painradar/painradar/pkg/repository"
	"github.com/painradar/painradar/server/mocks"
)

func testServer(t *testing.T, db *mocks.DatabaseMock, sched *mocks.SchedulerMock, analyst Analyst) (*Server, *httptest.Server) {
	t.Helper()

	cfg := &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) { return "localhost:0", time.Minute },
		SignalSetFunc: func() []domain.Signal {
			return []domain.Signal{{Phrase: "wish there was", Strength: 2.0}}
		},
		IndustrySetFunc: func() []domain.IndustryRule {
			return []domain.IndustryRule{
				{Label: "legal", Keywords: []string{"law firm"}},
				{Label: "fitness", Keywords: []string{"gym"}},
			}
		},
	}

	srv := New(cfg, db, sched, analyst, "test", false)
	ts := httptest.NewServer(srv.router)
	t.Cleanup(ts.Close)
	return srv, ts
}

func storedOpportunities() []domain.Opportunity {
	return []domain.Opportunity{
		{
			Source:            domain.SourceReddit,
			ID:                "r1",
			Title:             "wish there was a scheduling tool for law firms",
			Engagement:        42,
			MatchedSignals:    []string{"wish there was"},
			MatchedIndustries: []string{"legal"},
			PriorityScore:     22.5,
		},
		{
			Source:            domain.SourceHackerNews,
			ID:                "h1",
			Title:             "gym booking pain",
			Engagement:        7,
			MatchedSignals:    []string{"wish there was"},
			MatchedIndustries: []string{"fitness"},
			PriorityScore:     13.1,
		},
	}
}

func TestServer_StatusHandler(t *testing.T) {
	sched := &mocks.SchedulerMock{
		LastScanStatsFunc: func() (domain.ScanStats, time.Time) {
			return domain.ScanStats{ItemsSeen: 52, Matched: 50, Malformed: 1, NoSignal: 1}, time.Now()
		},
	}
	_, ts := testServer(t, &mocks.DatabaseMock{}, sched, nil)

	resp, err := http.Get(ts.URL + "/api/v1/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var status map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, "ok", status["status"])
	assert.Equal(t, "test", status["version"])

	lastScan, ok := status["last_scan"].(map[string]interface{})
	require.True(t, ok)
	assert.InDelta(t, 52, lastScan["items_seen"], 0.1)
	assert.InDelta(t, 50, lastScan["matched"], 0.1)
}

func TestServer_StatusHandler_NoScanYet(t *testing.T) {
	sched := &mocks.SchedulerMock{
		LastScanStatsFunc: func() (domain.ScanStats, time.Time) {
			return domain.ScanStats{}, time.Time{}
		},
	}
	_, ts := testServer(t, &mocks.DatabaseMock{}, sched, nil)

	resp, err := http.Get(ts.URL + "/api/v1/status")
	require.NoError(t, err)
	defer resp.Body.Close()

	var status map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.NotContains(t, status, "last_scan")
}

func TestServer_OpportunitiesHandler(t *testing.T) {
	db := &mocks.DatabaseMock{
		GetOpportunitiesFunc: func(ctx context.Context, filter repository.Filter) ([]domain.Opportunity, error) {
			return storedOpportunities(), nil
		},
	}
	_, ts := testServer(t, db, &mocks.SchedulerMock{}, nil)

	resp, err := http.Get(ts.URL + "/api/v1/opportunities?industry=legal&min_score=10.5&limit=20")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var opps []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&opps))
	require.Len(t, opps, 2)
	assert.Equal(t, "r1", opps[0]["id"])

	// filters passed through to the store
	require.Len(t, db.GetOpportunitiesCalls(), 1)
	filter := db.GetOpportunitiesCalls()[0].Filter
	assert.Equal(t, "legal", filter.Industry)
	assert.InDelta(t, 10.5, filter.MinScore, 0.0001)
	assert.Equal(t, 20, filter.Limit)
}

func TestServer_OpportunitiesHandler_CSV(t *testing.T) {
	db := &mocks.DatabaseMock{
		GetOpportunitiesFunc: func(ctx context.Context, filter repository.Filter) ([]domain.Opportunity, error) {
			return storedOpportunities(), nil
		},
	}
	_, ts := testServer(t, db, &mocks.SchedulerMock{}, nil)

	resp, err := http.Get(ts.URL + "/api/v1/opportunities?format=csv")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "opportunities.csv")
}

func TestServer_OpportunitiesHandler_BadParams(t *testing.T) {
	_, ts := testServer(t, &mocks.DatabaseMock{}, &mocks.SchedulerMock{}, nil)

	tests := []struct {
		name string
		url  string
	}{
		{"bad min_score", "/api/v1/opportunities?min_score=abc"},
		{"bad limit", "/api/v1/opportunities?limit=oops"},
		{"negative limit", "/api/v1/opportunities?limit=-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tt.url)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestServer_ScanHandler(t *testing.T) {
	sched := &mocks.SchedulerMock{
		ScanNowFunc: func(ctx context.Context, industry string) ([]domain.Opportunity, error) {
			return storedOpportunities()[:1], nil
		},
	}
	_, ts := testServer(t, &mocks.DatabaseMock{}, sched, nil)

	resp, err := http.Post(ts.URL+"/api/v1/scan", "application/json", strings.NewReader(`{"industry": "legal"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var opps []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&opps))
	require.Len(t, opps, 1)

	require.Len(t, sched.ScanNowCalls(), 1)
	assert.Equal(t, "legal", sched.ScanNowCalls()[0].Industry)
}

func TestServer_ScanHandler_EmptyBody(t *testing.T) {
	sched := &mocks.SchedulerMock{
		ScanNowFunc: func(ctx context.Context, industry string) ([]domain.Opportunity, error) {
			return nil, nil
		},
	}
	_, ts := testServer(t, &mocks.DatabaseMock{}, sched, nil)

	resp, err := http.Post(ts.URL+"/api/v1/scan", "application/json", http.NoBody)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.Len(t, sched.ScanNowCalls(), 1)
	assert.Empty(t, sched.ScanNowCalls()[0].Industry)
}

func TestServer_ScanHandler_Failure(t *testing.T) {
	sched := &mocks.SchedulerMock{
		ScanNowFunc: func(ctx context.Context, industry string) ([]domain.Opportunity, error) {
			return nil, fmt.Errorf("all sources unavailable")
		},
	}
	_, ts := testServer(t, &mocks.DatabaseMock{}, sched, nil)

	resp, err := http.Post(ts.URL+"/api/v1/scan", "application/json", http.NoBody)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["error"], "all sources unavailable")
}

func TestServer_QueryHandler_Scan(t *testing.T) {
	sched := &mocks.SchedulerMock{
		ScanNowFunc: func(ctx context.Context, industry string) ([]domain.Opportunity, error) {
			return storedOpportunities(), nil
		},
	}
	_, ts := testServer(t, &mocks.DatabaseMock{}, sched, nil)

	resp, err := http.Post(ts.URL+"/api/v1/query", "application/json",
		strings.NewReader(`{"query": "top 1 opportunities in legal"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// the parsed limit trims the result
	var opps []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&opps))
	require.Len(t, opps, 1)

	require.Len(t, sched.ScanNowCalls(), 1)
	assert.Equal(t, "legal", sched.ScanNowCalls()[0].Industry)
}

func TestServer_QueryHandler_Analyze(t *testing.T) {
	sched := &mocks.SchedulerMock{
		ScanNowFunc: func(ctx context.Context, industry string) ([]domain.Opportunity, error) {
			return storedOpportunities(), nil
		},
	}
	analyst := &mocks.AnalystMock{
		AnalyzeFunc: func(ctx context.Context, opps []domain.Opportunity) (string, error) {
			return "## Top SaaS Ideas", nil
		},
	}
	_, ts := testServer(t, &mocks.DatabaseMock{}, sched, analyst)

	resp, err := http.Post(ts.URL+"/api/v1/query", "application/json",
		strings.NewReader(`{"query": "analyze the results"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "## Top SaaS Ideas", body["analysis"])
	assert.InDelta(t, 2, body["opportunities"], 0.1)

	require.Len(t, analyst.AnalyzeCalls(), 1)
}

func TestServer_QueryHandler_AnalyzeWithoutAnalyst(t *testing.T) {
	sched := &mocks.SchedulerMock{
		ScanNowFunc: func(ctx context.Context, industry string) ([]domain.Opportunity, error) {
			return storedOpportunities(), nil
		},
	}
	_, ts := testServer(t, &mocks.DatabaseMock{}, sched, nil)

	resp, err := http.Post(ts.URL+"/api/v1/query", "application/json",
		strings.NewReader(`{"query": "analyze the results"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
}

func TestServer_QueryHandler_ListIntents(t *testing.T) {
	db := &mocks.DatabaseMock{
		IndustryBreakdownFunc: func(ctx context.Context) (map[string]int, error) {
			return map[string]int{"legal": 3}, nil
		},
	}
	_, ts := testServer(t, db, &mocks.SchedulerMock{}, nil)

	t.Run("list industries", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/api/v1/query", "application/json",
			strings.NewReader(`{"query": "what industries do you cover"}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var industries []map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&industries))
		require.Len(t, industries, 2)
		assert.Equal(t, "legal", industries[0]["label"])
		assert.InDelta(t, 3, industries[0]["opportunities"], 0.1)
	})

	t.Run("list signals", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/api/v1/query", "application/json",
			strings.NewReader(`{"query": "list signals"}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var signals []map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&signals))
		require.Len(t, signals, 1)
		assert.Equal(t, "wish there was", signals[0]["phrase"])
	})

	t.Run("explain", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/api/v1/query", "application/json",
			strings.NewReader(`{"query": "how does this work"}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Contains(t, body["response"], "pain points")
	})
}

func TestServer_QueryHandler_BadRequests(t *testing.T) {
	_, ts := testServer(t, &mocks.DatabaseMock{}, &mocks.SchedulerMock{}, nil)

	t.Run("invalid json", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/api/v1/query", "application/json", strings.NewReader("not json"))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("empty query", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/api/v1/query", "application/json", strings.NewReader(`{"query": ""}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestServer_IndustriesHandler(t *testing.T) {
	db := &mocks.DatabaseMock{
		IndustryBreakdownFunc: func(ctx context.Context) (map[string]int, error) {
			return map[string]int{"legal": 5, "fitness": 2}, nil
		},
	}
	_, ts := testServer(t, db, &mocks.SchedulerMock{}, nil)

	resp, err := http.Get(ts.URL + "/api/v1/industries")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var industries []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&industries))
	require.Len(t, industries, 2)
	assert.Equal(t, "legal", industries[0]["label"])
	assert.InDelta(t, 5, industries[0]["opportunities"], 0.1)
	assert.Equal(t, "fitness", industries[1]["label"])
}

func TestServer_SignalsHandler(t *testing.T) {
	_, ts := testServer(t, &mocks.DatabaseMock{}, &mocks.SchedulerMock{}, nil)

	resp, err := http.Get(ts.URL + "/api/v1/signals")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var signals []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&signals))
	require.Len(t, signals, 1)
	assert.Equal(t, "wish there was", signals[0]["phrase"])
	assert.InDelta(t, 2.0, signals[0]["strength"], 0.0001)
}

func TestServer_Ping(t *testing.T) {
	_, ts := testServer(t, &mocks.DatabaseMock{}, &mocks.SchedulerMock{}, nil)

	resp, err := http.Get(ts.URL + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
