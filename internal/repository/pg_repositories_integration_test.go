//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/jtbrown6/language-storygen/internal/database"
	"github.com/jtbrown6/language-storygen/internal/repository"
	"github.com/jtbrown6/language-storygen/pkg/model"
)

type PgRepositoriesSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	pool      *pgxpool.Pool
	stories   repository.StoryRepository
	studyList repository.StudyListRepository
}

func (s *PgRepositoriesSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("storygen-test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(5*time.Minute),
		),
	)
	require.NoError(s.T(), err)
	s.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(s.T(), err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(s.T(), err)
	s.pool = pool

	require.NoError(s.T(), database.Migrate(pool, zap.NewNop()))

	s.stories = repository.NewPgStoryRepository(pool, zap.NewNop())
	s.studyList = repository.NewPgStudyListRepository(pool, zap.NewNop())
}

func (s *PgRepositoriesSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
}

func (s *PgRepositoriesSuite) SetupTest() {
	_, err := s.pool.Exec(context.Background(), "TRUNCATE stories, study_items")
	require.NoError(s.T(), err)
}

func (s *PgRepositoriesSuite) newStory(text string, createdAt time.Time) *model.Story {
	return &model.Story{
		ID:   uuid.New(),
		Text: text,
		Markup: []model.MarkupSpan{
			{Type: model.SpanVerb, Start: 0, End: 2, Text: text[:2]},
		},
		Parameters: model.GenerationParameters{Scenario: "test", Level: "A1"},
		CreatedAt:  createdAt,
	}
}

func (s *PgRepositoriesSuite) TestStoryLifecycle() {
	ctx := context.Background()
	story := s.newStory("la primera historia", time.Now().UTC())
	require.NoError(s.T(), s.stories.Save(ctx, story))

	got, err := s.stories.GetByID(ctx, story.ID)
	require.NoError(s.T(), err)
	s.Equal(story.Text, got.Text)
	s.Equal(story.Markup, got.Markup)
	s.Equal("test", got.Parameters.Scenario)
	s.Empty(got.Translation)

	require.NoError(s.T(), s.stories.AttachTranslation(ctx, story.ID, "the first story"))
	got, err = s.stories.GetByID(ctx, story.ID)
	require.NoError(s.T(), err)
	s.Equal("the first story", got.Translation)

	require.NoError(s.T(), s.stories.Delete(ctx, story.ID))
	_, err = s.stories.GetByID(ctx, story.ID)
	s.ErrorIs(err, model.ErrNotFound)
}

func (s *PgRepositoriesSuite) TestStoryListNewestFirst() {
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)
	for i, text := range []string{"primera", "segunda", "tercera"} {
		story := s.newStory(text, base.Add(time.Duration(i)*time.Minute))
		require.NoError(s.T(), s.stories.Save(ctx, story))
	}

	stories, err := s.stories.List(ctx)
	require.NoError(s.T(), err)
	require.Len(s.T(), stories, 3)
	s.Equal("tercera", stories[0].Text)
	s.Equal("primera", stories[2].Text)
}

func (s *PgRepositoriesSuite) TestStoryDeleteNotFound() {
	err := s.stories.Delete(context.Background(), uuid.New())
	s.ErrorIs(err, model.ErrNotFound)
}

func (s *PgRepositoriesSuite) TestStudyItemDuplicateRejected() {
	ctx := context.Background()
	item := &model.StudyItem{
		ID:          uuid.New(),
		Text:        "Manzana",
		Translation: "Apple",
		Context:     "compró una manzana",
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(s.T(), s.studyList.Add(ctx, item))

	// Same pair with different casing must be rejected, not merged.
	dup := &model.StudyItem{
		ID:          uuid.New(),
		Text:        "manzana",
		Translation: "APPLE",
		CreatedAt:   time.Now().UTC(),
	}
	err := s.studyList.Add(ctx, dup)
	s.ErrorIs(err, model.ErrDuplicateStudyItem)

	items, err := s.studyList.List(ctx)
	require.NoError(s.T(), err)
	s.Len(items, 1)
}

func (s *PgRepositoriesSuite) TestStudyItemLifecycle() {
	ctx := context.Background()
	item := &model.StudyItem{
		ID:          uuid.New(),
		Text:        "correr",
		Translation: "to run",
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(s.T(), s.studyList.Add(ctx, item))

	got, err := s.studyList.GetByID(ctx, item.ID)
	require.NoError(s.T(), err)
	s.Equal("correr", got.Text)

	require.NoError(s.T(), s.studyList.Delete(ctx, item.ID))
	s.ErrorIs(s.studyList.Delete(ctx, item.ID), model.ErrNotFound)
}

func TestPgRepositoriesSuite(t *testing.T) {
	suite.Run(t, new(PgRepositoriesSuite))
}
