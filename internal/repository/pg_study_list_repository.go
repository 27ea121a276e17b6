package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	pgxV5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/jtbrown6/language-storygen/pkg/model"
)

const (
	insertStudyItemQuery = `
        INSERT INTO study_items (id, text, translation, context, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `
	listStudyItemsQuery = `
        SELECT id, text, translation, context, created_at
        FROM study_items
        ORDER BY created_at DESC
    `
	getStudyItemByIDQuery = `
        SELECT id, text, translation, context, created_at
        FROM study_items
        WHERE id = $1
    `
	deleteStudyItemQuery = `DELETE FROM study_items WHERE id = $1`

	uniqueViolationCode = "23505"
)

type pgStudyListRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewPgStudyListRepository creates a PostgreSQL-backed StudyListRepository.
// Case-insensitive uniqueness of (text, translation) is enforced by a
// functional unique index; violations map to ErrDuplicateStudyItem.
func NewPgStudyListRepository(db *pgxpool.Pool, logger *zap.Logger) StudyListRepository {
	return &pgStudyListRepository{
		db:     db,
		logger: logger.Named("StudyListRepo"),
	}
}

func (r *pgStudyListRepository) Add(ctx context.Context, item *model.StudyItem) error {
	log := r.logger.With(zap.String("itemID", item.ID.String()))

	_, err := r.db.Exec(ctx, insertStudyItemQuery,
		item.ID, item.Text, item.Translation, item.Context, item.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			log.Warn("Duplicate study item rejected", zap.String("text", item.Text))
			return model.ErrDuplicateStudyItem
		}
		log.Error("Error adding study item", zap.Error(err))
		return fmt.Errorf("failed to add study item %s: %w", item.ID, err)
	}

	log.Info("Study item added")
	return nil
}

func (r *pgStudyListRepository) List(ctx context.Context) ([]*model.StudyItem, error) {
	items := []*model.StudyItem{}
	if err := pgxscan.Select(ctx, r.db, &items, listStudyItemsQuery); err != nil {
		r.logger.Error("Error listing study items", zap.Error(err))
		return nil, fmt.Errorf("failed to list study items: %w", err)
	}
	return items, nil
}

func (r *pgStudyListRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.StudyItem, error) {
	log := r.logger.With(zap.String("itemID", id.String()))

	var item model.StudyItem
	err := pgxscan.Get(ctx, r.db, &item, getStudyItemByIDQuery, id)
	if err != nil {
		if errors.Is(err, pgxV5.ErrNoRows) {
			log.Warn("Study item not found")
			return nil, model.ErrNotFound
		}
		log.Error("Error getting study item by id", zap.Error(err))
		return nil, fmt.Errorf("failed to get study item %s: %w", id, err)
	}
	return &item, nil
}

func (r *pgStudyListRepository) Delete(ctx context.Context, id uuid.UUID) error {
	log := r.logger.With(zap.String("itemID", id.String()))

	commandTag, err := r.db.Exec(ctx, deleteStudyItemQuery, id)
	if err != nil {
		log.Error("Error deleting study item", zap.Error(err))
		return fmt.Errorf("failed to delete study item %s: %w", id, err)
	}
	if commandTag.RowsAffected() == 0 {
		log.Warn("Study item not found for delete")
		return model.ErrNotFound
	}

	log.Info("Study item deleted")
	return nil
}
