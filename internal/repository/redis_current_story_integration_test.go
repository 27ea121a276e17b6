//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"go.uber.org/zap"

	"github.com/jtbrown6/language-storygen/internal/repository"
	"github.com/jtbrown6/language-storygen/pkg/model"
)

type RedisCurrentStorySuite struct {
	suite.Suite
	container *tcredis.RedisContainer
	client    *goredis.Client
	repo      repository.CurrentStoryRepository
}

func (s *RedisCurrentStorySuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(s.T(), err)
	s.container = container

	connStr, err := container.ConnectionString(ctx)
	require.NoError(s.T(), err)
	opts, err := goredis.ParseURL(connStr)
	require.NoError(s.T(), err)

	s.client = goredis.NewClient(opts)
	require.NoError(s.T(), s.client.Ping(ctx).Err())

	s.repo = repository.NewRedisCurrentStoryRepository(s.client, zap.NewNop())
}

func (s *RedisCurrentStorySuite) TearDownSuite() {
	if s.client != nil {
		_ = s.client.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
}

func (s *RedisCurrentStorySuite) SetupTest() {
	require.NoError(s.T(), s.client.FlushAll(context.Background()).Err())
}

func snapshot(deviceID, text string) *model.CurrentStory {
	return &model.CurrentStory{
		ID:         uuid.New(),
		DeviceID:   deviceID,
		Text:       text,
		Parameters: model.GenerationParameters{Scenario: "test", Level: "A1"},
		SavedAt:    time.Now().UTC(),
	}
}

func (s *RedisCurrentStorySuite) TestLatestReturnsNewest() {
	ctx := context.Background()
	require.NoError(s.T(), s.repo.SaveSnapshot(ctx, snapshot("device-1", "primera")))
	require.NoError(s.T(), s.repo.SaveSnapshot(ctx, snapshot("device-1", "segunda")))

	got, err := s.repo.Latest(ctx, "device-1")
	require.NoError(s.T(), err)
	s.Equal("segunda", got.Text)
}

func (s *RedisCurrentStorySuite) TestRetentionKeepsFive() {
	ctx := context.Background()
	for i := 0; i < 8; i++ {
		require.NoError(s.T(), s.repo.SaveSnapshot(ctx, snapshot("device-1", fmt.Sprintf("historia %d", i))))
	}

	length, err := s.client.LLen(ctx, "current_story:device-1").Result()
	require.NoError(s.T(), err)
	s.Equal(int64(5), length)

	got, err := s.repo.Latest(ctx, "device-1")
	require.NoError(s.T(), err)
	s.Equal("historia 7", got.Text)
}

func (s *RedisCurrentStorySuite) TestDevicesAreIsolated() {
	ctx := context.Background()
	require.NoError(s.T(), s.repo.SaveSnapshot(ctx, snapshot("device-1", "uno")))
	require.NoError(s.T(), s.repo.SaveSnapshot(ctx, snapshot("device-2", "dos")))

	got, err := s.repo.Latest(ctx, "device-1")
	require.NoError(s.T(), err)
	s.Equal("uno", got.Text)

	_, err = s.repo.Latest(ctx, "device-3")
	s.ErrorIs(err, model.ErrNotFound)
}

func (s *RedisCurrentStorySuite) TestPurge() {
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(s.T(), s.repo.SaveSnapshot(ctx, snapshot("device-1", fmt.Sprintf("historia %d", i))))
	}

	count, err := s.repo.Purge(ctx, "device-1")
	require.NoError(s.T(), err)
	s.Equal(int64(3), count)

	_, err = s.repo.Latest(ctx, "device-1")
	s.ErrorIs(err, model.ErrNotFound)

	count, err = s.repo.Purge(ctx, "device-1")
	require.NoError(s.T(), err)
	s.Equal(int64(0), count)
}

func TestRedisCurrentStorySuite(t *testing.T) {
	suite.Run(t, new(RedisCurrentStorySuite))
}
