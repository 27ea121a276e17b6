package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	pgxV5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/jtbrown6/language-storygen/pkg/model"
)

const (
	insertStoryQuery = `
        INSERT INTO stories (id, text, markup, parameters, translation, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	listStoriesQuery = `
        SELECT id, text, markup, parameters, translation, created_at
        FROM stories
        ORDER BY created_at DESC
    `
	getStoryByIDQuery = `
        SELECT id, text, markup, parameters, translation, created_at
        FROM stories
        WHERE id = $1
    `
	attachTranslationQuery = `UPDATE stories SET translation = $2 WHERE id = $1`
	deleteStoryQuery       = `DELETE FROM stories WHERE id = $1`
)

// storyRow mirrors the stories table. Markup and parameters live in
// jsonb columns and are marshalled explicitly.
type storyRow struct {
	ID          uuid.UUID `db:"id"`
	Text        string    `db:"text"`
	Markup      []byte    `db:"markup"`
	Parameters  []byte    `db:"parameters"`
	Translation string    `db:"translation"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r *storyRow) toModel() (*model.Story, error) {
	story := &model.Story{
		ID:          r.ID,
		Text:        r.Text,
		Translation: r.Translation,
		CreatedAt:   r.CreatedAt,
	}
	if len(r.Markup) > 0 {
		if err := json.Unmarshal(r.Markup, &story.Markup); err != nil {
			return nil, fmt.Errorf("failed to unmarshal story markup: %w", err)
		}
	}
	if len(r.Parameters) > 0 {
		if err := json.Unmarshal(r.Parameters, &story.Parameters); err != nil {
			return nil, fmt.Errorf("failed to unmarshal story parameters: %w", err)
		}
	}
	return story, nil
}

type pgStoryRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewPgStoryRepository creates a PostgreSQL-backed StoryRepository.
func NewPgStoryRepository(db *pgxpool.Pool, logger *zap.Logger) StoryRepository {
	return &pgStoryRepository{
		db:     db,
		logger: logger.Named("StoryRepo"),
	}
}

func (r *pgStoryRepository) Save(ctx context.Context, story *model.Story) error {
	log := r.logger.With(zap.String("storyID", story.ID.String()))

	markup := story.Markup
	if markup == nil {
		markup = []model.MarkupSpan{}
	}
	markupJSON, err := json.Marshal(markup)
	if err != nil {
		return fmt.Errorf("failed to marshal story markup: %w", err)
	}
	paramsJSON, err := json.Marshal(story.Parameters)
	if err != nil {
		return fmt.Errorf("failed to marshal story parameters: %w", err)
	}

	_, err = r.db.Exec(ctx, insertStoryQuery,
		story.ID, story.Text, markupJSON, paramsJSON, story.Translation, story.CreatedAt)
	if err != nil {
		log.Error("Error saving story", zap.Error(err))
		return fmt.Errorf("failed to save story %s: %w", story.ID, err)
	}

	log.Info("Story saved")
	return nil
}

func (r *pgStoryRepository) List(ctx context.Context) ([]*model.Story, error) {
	var rows []*storyRow
	if err := pgxscan.Select(ctx, r.db, &rows, listStoriesQuery); err != nil {
		r.logger.Error("Error listing stories", zap.Error(err))
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}

	stories := make([]*model.Story, 0, len(rows))
	for _, row := range rows {
		story, err := row.toModel()
		if err != nil {
			return nil, err
		}
		stories = append(stories, story)
	}
	return stories, nil
}

func (r *pgStoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Story, error) {
	log := r.logger.With(zap.String("storyID", id.String()))

	var row storyRow
	err := pgxscan.Get(ctx, r.db, &row, getStoryByIDQuery, id)
	if err != nil {
		if errors.Is(err, pgxV5.ErrNoRows) {
			log.Warn("Story not found")
			return nil, model.ErrNotFound
		}
		log.Error("Error getting story by id", zap.Error(err))
		return nil, fmt.Errorf("failed to get story %s: %w", id, err)
	}
	return row.toModel()
}

func (r *pgStoryRepository) AttachTranslation(ctx context.Context, id uuid.UUID, translation string) error {
	log := r.logger.With(zap.String("storyID", id.String()))

	commandTag, err := r.db.Exec(ctx, attachTranslationQuery, id, translation)
	if err != nil {
		log.Error("Error attaching translation", zap.Error(err))
		return fmt.Errorf("failed to attach translation to story %s: %w", id, err)
	}
	if commandTag.RowsAffected() == 0 {
		log.Warn("Story not found for translation attach")
		return model.ErrNotFound
	}

	log.Info("Translation attached to story")
	return nil
}

func (r *pgStoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	log := r.logger.With(zap.String("storyID", id.String()))

	commandTag, err := r.db.Exec(ctx, deleteStoryQuery, id)
	if err != nil {
		log.Error("Error deleting story", zap.Error(err))
		return fmt.Errorf("failed to delete story %s: %w", id, err)
	}
	if commandTag.RowsAffected() == 0 {
		log.Warn("Story not found for delete")
		return model.ErrNotFound
	}

	log.Info("Story deleted")
	return nil
}
