package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/jtbrown6/language-storygen/pkg/model"
)

// StoryRepository persists saved stories. Stories are immutable after
// save except for attaching a translation.
type StoryRepository interface {
	Save(ctx context.Context, story *model.Story) error
	List(ctx context.Context) ([]*model.Story, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Story, error)
	AttachTranslation(ctx context.Context, id uuid.UUID, translation string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// StudyListRepository persists study-list items. Add rejects duplicates
// where text and translation match case-insensitively.
type StudyListRepository interface {
	Add(ctx context.Context, item *model.StudyItem) error
	List(ctx context.Context) ([]*model.StudyItem, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.StudyItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CurrentStoryRepository keeps per-device story snapshots, bounded to the
// five most recent per device.
type CurrentStoryRepository interface {
	SaveSnapshot(ctx context.Context, snapshot *model.CurrentStory) error
	Latest(ctx context.Context, deviceID string) (*model.CurrentStory, error)
	Purge(ctx context.Context, deviceID string) (int64, error)
}
