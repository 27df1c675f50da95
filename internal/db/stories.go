package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/star-coach/internal/types"
)

const storyColumns = `id, title, company, role, situation, task, action, result,
	metrics, primary_lps, secondary_lps, strength, questions_matched, created_at, updated_at`

// StoryRow is a stories table row
type StoryRow struct {
	OwnerID          uuid.UUID
	ID               string
	Title            string
	Company          string
	Role             string
	Situation        string
	Task             string
	Action           string
	Result           string
	Metrics          []string
	PrimaryLPs       []string
	SecondaryLPs     []string
	Strength         int
	QuestionsMatched []string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewStoryRow maps a story onto its row for ownerID.
func NewStoryRow(ownerID uuid.UUID, s *types.Story) StoryRow {
	return StoryRow{
		OwnerID:          ownerID,
		ID:               s.ID,
		Title:            s.Title,
		Company:          s.Company,
		Role:             s.Role,
		Situation:        s.Situation,
		Task:             s.Task,
		Action:           s.Action,
		Result:           s.Result,
		Metrics:          orEmpty(s.Metrics),
		PrimaryLPs:       orEmpty(s.PrimaryLPs()),
		SecondaryLPs:     orEmpty(s.SecondaryLPs()),
		Strength:         s.Strength,
		QuestionsMatched: orEmpty(s.QuestionsMatched),
	}
}

// Story converts the row back into a story.
func (r *StoryRow) Story() types.Story {
	return types.Story{
		ID:               r.ID,
		Title:            r.Title,
		Company:          r.Company,
		Role:             r.Role,
		Situation:        r.Situation,
		Task:             r.Task,
		Action:           r.Action,
		Result:           r.Result,
		Metrics:          orEmpty(r.Metrics),
		LPs:              types.NewLPAssignments(r.PrimaryLPs, r.SecondaryLPs),
		Strength:         r.Strength,
		QuestionsMatched: orEmpty(r.QuestionsMatched),
	}
}

func (r *StoryRow) scanTargets() []any {
	return []any{
		&r.ID, &r.Title, &r.Company, &r.Role, &r.Situation, &r.Task, &r.Action, &r.Result,
		&r.Metrics, &r.PrimaryLPs, &r.SecondaryLPs, &r.Strength, &r.QuestionsMatched,
		&r.CreatedAt, &r.UpdatedAt,
	}
}

// ListStories returns the owner's stories, newest first
func (db *DB) ListStories(ctx context.Context, ownerID uuid.UUID) ([]types.Story, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+storyColumns+`
		 FROM stories WHERE owner_id = $1
		 ORDER BY created_at DESC, id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	defer rows.Close()

	stories := []types.Story{}
	for rows.Next() {
		var r StoryRow
		if err := rows.Scan(r.scanTargets()...); err != nil {
			return nil, fmt.Errorf("failed to scan story: %w", err)
		}
		stories = append(stories, r.Story())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stories: %w", err)
	}
	return stories, nil
}

// GetStory retrieves one of the owner's stories. It returns nil when absent.
func (db *DB) GetStory(ctx context.Context, ownerID uuid.UUID, storyID string) (*types.Story, error) {
	var r StoryRow
	err := db.pool.QueryRow(ctx,
		`SELECT `+storyColumns+`
		 FROM stories WHERE owner_id = $1 AND id = $2`,
		ownerID, storyID,
	).Scan(r.scanTargets()...)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get story: %w", err)
	}
	s := r.Story()
	return &s, nil
}

// UpsertStory inserts or updates a story for the owner and returns the stored
// version. Rows of other owners are never touched.
func (db *DB) UpsertStory(ctx context.Context, ownerID uuid.UUID, story *types.Story) (*types.Story, error) {
	in := NewStoryRow(ownerID, story)
	if in.ID == "" {
		in.ID = uuid.NewString()
	}

	var out StoryRow
	err := db.pool.QueryRow(ctx,
		`INSERT INTO stories (owner_id, id, title, company, role, situation, task, action, result,
		                      metrics, primary_lps, secondary_lps, strength, questions_matched)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 ON CONFLICT (owner_id, id) DO UPDATE SET
		     title = EXCLUDED.title,
		     company = EXCLUDED.company,
		     role = EXCLUDED.role,
		     situation = EXCLUDED.situation,
		     task = EXCLUDED.task,
		     action = EXCLUDED.action,
		     result = EXCLUDED.result,
		     metrics = EXCLUDED.metrics,
		     primary_lps = EXCLUDED.primary_lps,
		     secondary_lps = EXCLUDED.secondary_lps,
		     strength = EXCLUDED.strength,
		     questions_matched = EXCLUDED.questions_matched,
		     updated_at = NOW()
		 RETURNING `+storyColumns,
		in.OwnerID, in.ID, in.Title, in.Company, in.Role, in.Situation, in.Task, in.Action, in.Result,
		in.Metrics, in.PrimaryLPs, in.SecondaryLPs, in.Strength, in.QuestionsMatched,
	).Scan(out.scanTargets()...)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert story %s: %w", in.ID, err)
	}
	s := out.Story()
	return &s, nil
}

// DeleteStory removes one of the owner's stories. It reports false when no row
// was deleted.
func (db *DB) DeleteStory(ctx context.Context, ownerID uuid.UUID, storyID string) (bool, error) {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM stories WHERE owner_id = $1 AND id = $2`,
		ownerID, storyID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete story: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

func orEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
