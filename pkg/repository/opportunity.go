package repository

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"github.com/painradar/painradar/pkg/domain"
)

// OpportunityRepository handles opportunity-related database operations
type OpportunityRepository struct {
	db *sqlx.DB
}

// NewOpportunityRepository creates a new opportunity repository
func NewOpportunityRepository(database *sqlx.DB) *OpportunityRepository {
	return &OpportunityRepository{db: database}
}

// opportunitySQL represents an opportunity for SQL operations
type opportunitySQL struct {
	ID                int64      `db:"id"`
	Source            string     `db:"source"`
	ItemID            string     `db:"item_id"`
	Title             string     `db:"title"`
	TextSnippet       string     `db:"text_snippet"`
	URL               string     `db:"url"`
	Engagement        int        `db:"engagement"`
	MatchedSignals    stringsSQL `db:"matched_signals"`
	MatchedIndustries stringsSQL `db:"matched_industries"`
	PriorityScore     float64    `db:"priority_score"`
	ItemCreatedAt     *time.Time `db:"item_created_at"`
	FirstSeenAt       time.Time  `db:"first_seen_at"`
	UpdatedAt         time.Time  `db:"updated_at"`
}

// stringsSQL is a JSON array of strings for SQL operations
type stringsSQL []string

// Value implements driver.Valuer for database storage
func (s stringsSQL) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner for database retrieval
func (s *stringsSQL) Scan(value interface{}) error {
	if value == nil {
		*s = stringsSQL{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return json.Unmarshal([]byte("[]"), s)
	}

	return json.Unmarshal(data, s)
}

// SaveOpportunities upserts a batch of opportunities, replacing stored
// records on (source, item_id) conflict so re-scans refresh scores and
// engagement
func (r *OpportunityRepository) SaveOpportunities(ctx context.Context, opps []domain.Opportunity) error {
	if len(opps) == 0 {
		return nil
	}

	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	return retrier.Do(ctx, func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("begin tx: %w", err)}
		}
		defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

		query := `
			INSERT INTO opportunities (
				source, item_id, title, text_snippet, url, engagement,
				matched_signals, matched_industries, priority_score, item_created_at
			) VALUES (
				:source, :item_id, :title, :text_snippet, :url, :engagement,
				:matched_signals, :matched_industries, :priority_score, :item_created_at
			)
			ON CONFLICT(source, item_id) DO UPDATE SET
				title = excluded.title,
				text_snippet = excluded.text_snippet,
				url = excluded.url,
				engagement = excluded.engagement,
				matched_signals = excluded.matched_signals,
				matched_industries = excluded.matched_industries,
				priority_score = excluded.priority_score,
				updated_at = datetime('now')
		`

		for _, opp := range opps {
			if _, err := tx.NamedExecContext(ctx, query, toSQL(opp)); err != nil {
				if isLockError(err) {
					return err // retry
				}
				return &criticalError{err: fmt.Errorf("upsert opportunity %s/%s: %w", opp.Source, opp.ID, err)}
			}
		}

		if err := tx.Commit(); err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("commit: %w", err)}
		}
		return nil
	})
}

// Filter restricts the opportunities returned by GetOpportunities
type Filter struct {
	Industry string
	MinScore float64
	Limit    int
}

// GetOpportunities returns stored opportunities ranked the same way the
// aggregator ranks them: score desc, engagement desc, (source, item_id) asc
func (r *OpportunityRepository) GetOpportunities(ctx context.Context, filter Filter) ([]domain.Opportunity, error) {
	query := `
		SELECT source, item_id, title, text_snippet, url, engagement,
		       matched_signals, matched_industries, priority_score,
		       item_created_at, first_seen_at, updated_at
		FROM opportunities
		WHERE priority_score >= ?
	`
	args := []interface{}{filter.MinScore}

	if filter.Industry != "" {
		// industries stored as a JSON array of labels
		query += ` AND EXISTS (SELECT 1 FROM json_each(matched_industries) WHERE json_each.value = ?)`
		args = append(args, filter.Industry)
	}

	query += ` ORDER BY priority_score DESC, engagement DESC, source ASC, item_id ASC`

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	var rows []opportunitySQL
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("get opportunities: %w", err)
	}

	opps := make([]domain.Opportunity, len(rows))
	for i, row := range rows {
		opps[i] = toDomain(row)
	}
	return opps, nil
}

// IndustryBreakdown returns the number of stored opportunities per industry,
// most frequent first
func (r *OpportunityRepository) IndustryBreakdown(ctx context.Context) (map[string]int, error) {
	query := `
		SELECT json_each.value AS label, COUNT(*) AS cnt
		FROM opportunities, json_each(matched_industries)
		GROUP BY json_each.value
	`

	var rows []struct {
		Label string `db:"label"`
		Cnt   int    `db:"cnt"`
	}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("industry breakdown: %w", err)
	}

	res := make(map[string]int, len(rows))
	for _, row := range rows {
		res[row.Label] = row.Cnt
	}
	return res, nil
}

// DeleteOlderThan removes opportunities not refreshed since the cutoff,
// returning the number of deleted rows
func (r *OpportunityRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM opportunities WHERE updated_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete stale opportunities: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

func toSQL(opp domain.Opportunity) *opportunitySQL {
	row := &opportunitySQL{
		Source:            string(opp.Source),
		ItemID:            opp.ID,
		Title:             opp.Title,
		TextSnippet:       opp.TextSnippet,
		URL:               opp.URL,
		Engagement:        opp.Engagement,
		MatchedSignals:    stringsSQL(opp.MatchedSignals),
		MatchedIndustries: stringsSQL(opp.MatchedIndustries),
		PriorityScore:     opp.PriorityScore,
	}
	if !opp.CreatedAt.IsZero() {
		t := opp.CreatedAt
		row.ItemCreatedAt = &t
	}
	return row
}

func toDomain(row opportunitySQL) domain.Opportunity {
	opp := domain.Opportunity{
		Source:            domain.Source(row.Source),
		ID:                row.ItemID,
		Title:             row.Title,
		TextSnippet:       row.TextSnippet,
		URL:               row.URL,
		Engagement:        row.Engagement,
		MatchedSignals:    row.MatchedSignals,
		MatchedIndustries: row.MatchedIndustries,
		PriorityScore:     row.PriorityScore,
	}
	if row.ItemCreatedAt != nil {
		opp.CreatedAt = *row.ItemCreatedAt
	}
	return opp
}
