package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/jtbrown6/language-storygen/internal/repository"
	"github.com/jtbrown6/language-storygen/pkg/model"
)

// MockStoryRepository is a mock type for the repository.StoryRepository type
type MockStoryRepository struct {
	mock.Mock
}

func (_m *MockStoryRepository) Save(ctx context.Context, story *model.Story) error {
	ret := _m.Called(ctx, story)
	return ret.Error(0)
}

func (_m *MockStoryRepository) List(ctx context.Context) ([]*model.Story, error) {
	ret := _m.Called(ctx)

	var r0 []*model.Story
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*model.Story)
	}
	return r0, ret.Error(1)
}

func (_m *MockStoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Story, error) {
	ret := _m.Called(ctx, id)

	var r0 *model.Story
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.Story)
	}
	return r0, ret.Error(1)
}

func (_m *MockStoryRepository) AttachTranslation(ctx context.Context, id uuid.UUID, translation string) error {
	ret := _m.Called(ctx, id, translation)
	return ret.Error(0)
}

func (_m *MockStoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func NewMockStoryRepository(t interface {
	mock.TestingT
	Helper()
}) *MockStoryRepository {
	m := &MockStoryRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ repository.StoryRepository = (*MockStoryRepository)(nil)

// MockStudyListRepository is a mock type for the repository.StudyListRepository type
type MockStudyListRepository struct {
	mock.Mock
}

func (_m *MockStudyListRepository) Add(ctx context.Context, item *model.StudyItem) error {
	ret := _m.Called(ctx, item)
	return ret.Error(0)
}

func (_m *MockStudyListRepository) List(ctx context.Context) ([]*model.StudyItem, error) {
	ret := _m.Called(ctx)

	var r0 []*model.StudyItem
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*model.StudyItem)
	}
	return r0, ret.Error(1)
}

func (_m *MockStudyListRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.StudyItem, error) {
	ret := _m.Called(ctx, id)

	var r0 *model.StudyItem
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.StudyItem)
	}
	return r0, ret.Error(1)
}

func (_m *MockStudyListRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func NewMockStudyListRepository(t interface {
	mock.TestingT
	Helper()
}) *MockStudyListRepository {
	m := &MockStudyListRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ repository.StudyListRepository = (*MockStudyListRepository)(nil)

// MockCurrentStoryRepository is a mock type for the repository.CurrentStoryRepository type
type MockCurrentStoryRepository struct {
	mock.Mock
}

func (_m *MockCurrentStoryRepository) SaveSnapshot(ctx context.Context, snapshot *model.CurrentStory) error {
	ret := _m.Called(ctx, snapshot)
	return ret.Error(0)
}

func (_m *MockCurrentStoryRepository) Latest(ctx context.Context, deviceID string) (*model.CurrentStory, error) {
	ret := _m.Called(ctx, deviceID)

	var r0 *model.CurrentStory
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.CurrentStory)
	}
	return r0, ret.Error(1)
}

func (_m *MockCurrentStoryRepository) Purge(ctx context.Context, deviceID string) (int64, error) {
	ret := _m.Called(ctx, deviceID)
	return ret.Get(0).(int64), ret.Error(1)
}

func NewMockCurrentStoryRepository(t interface {
	mock.TestingT
	Helper()
}) *MockCurrentStoryRepository {
	m := &MockCurrentStoryRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ repository.CurrentStoryRepository = (*MockCurrentStoryRepository)(nil)
