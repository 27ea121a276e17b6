package client

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jtbrown6/language-storygen/pkg/localmirror"
	"github.com/jtbrown6/language-storygen/pkg/model"
)

// ErrNoCurrentStory is returned by actions that need a story in progress.
var ErrNoCurrentStory = errors.New("no current story")

// StoryState owns the story the user is working on plus the saved story
// library. All mutations are written through to the local mirror so a
// restart without connectivity still shows the last known state.
type StoryState struct {
	client   *Client
	deviceID string
	logger   *zap.Logger

	storiesMirror *localmirror.Mirror[[]*model.Story]
	currentMirror *localmirror.Mirror[model.CurrentStory]

	mu        sync.Mutex
	stories   []*model.Story
	current   *model.CurrentStory
	lastError string
}

// NewStoryState creates a StoryState backed by the given mirror store.
func NewStoryState(apiClient *Client, store localmirror.Store, deviceID string, logger *zap.Logger) *StoryState {
	log := logger.Named("StoryState")
	return &StoryState{
		client:        apiClient,
		deviceID:      deviceID,
		logger:        log,
		storiesMirror: localmirror.New[[]*model.Story](store, "stories", log),
		currentMirror: localmirror.New[model.CurrentStory](store, "current_story_"+deviceID, log),
	}
}

// Load pulls the saved stories and the device's current story from the
// server, falling back to mirrored copies when the server is unreachable.
// A device with no current story is a normal condition, not a failure.
func (s *StoryState) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastError = ""
	stories, err := s.storiesMirror.Fetch(func() ([]*model.Story, error) {
		return s.client.ListStories(ctx)
	})
	if err != nil {
		s.lastError = "Could not load saved stories: " + err.Error()
	} else {
		s.stories = stories
	}

	current, err := s.currentMirror.Fetch(func() (model.CurrentStory, error) {
		snapshot, err := s.client.CurrentStory(ctx, s.deviceID)
		if err != nil {
			return model.CurrentStory{}, err
		}
		return *snapshot, nil
	})
	if err != nil {
		// Nothing to resume. Leave current nil and start fresh.
		s.logger.Debug("No current story for device", zap.String("deviceId", s.deviceID))
		s.current = nil
		return
	}
	s.current = &current
}

// Generate requests a new story and makes it the current one. The
// snapshot is mirrored locally and pushed to the server best-effort.
func (s *StoryState) Generate(ctx context.Context, params model.GenerationParameters) (*model.CurrentStory, error) {
	result, err := s.client.GenerateStory(ctx, params)
	if err != nil {
		s.setError("Story generation failed: " + err.Error())
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &model.CurrentStory{
		DeviceID:   s.deviceID,
		Text:       result.Story,
		Markup:     result.Markup,
		Parameters: result.Parameters,
	}
	s.lastError = ""
	s.snapshotCurrentLocked(ctx)
	return s.current, nil
}

// TranslateCurrent attaches a full translation to the current story.
func (s *StoryState) TranslateCurrent(ctx context.Context) (string, error) {
	s.mu.Lock()
	current := s.current
	s.mu.Unlock()
	if current == nil {
		s.setError("No story to translate")
		return "", ErrNoCurrentStory
	}

	result, err := s.client.TranslateFull(ctx, current.Text)
	if err != nil {
		s.setError("Translation failed: " + err.Error())
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		s.current.Translation = result.Translation
		s.snapshotCurrentLocked(ctx)
	}
	s.lastError = ""
	return result.Translation, nil
}

// SaveCurrent persists the current story to the library.
func (s *StoryState) SaveCurrent(ctx context.Context) (*model.Story, error) {
	s.mu.Lock()
	current := s.current
	s.mu.Unlock()
	if current == nil {
		s.setError("No story to save")
		return nil, ErrNoCurrentStory
	}

	story, err := s.client.SaveStory(ctx, SaveStoryRequest{
		Story:      current.Text,
		Markup:     current.Markup,
		Parameters: current.Parameters,
	})
	if err != nil {
		s.setError("Could not save story: " + err.Error())
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stories = append([]*model.Story{story}, s.stories...)
	if err := s.storiesMirror.Put(s.stories); err != nil {
		s.logger.Warn("Failed to mirror story list", zap.Error(err))
	}
	s.lastError = ""
	return story, nil
}

// DeleteStory removes a story from the library.
func (s *StoryState) DeleteStory(ctx context.Context, id uuid.UUID) error {
	if err := s.client.DeleteStory(ctx, id); err != nil {
		s.setError("Could not delete story: " + err.Error())
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.stories[:0]
	for _, story := range s.stories {
		if story.ID != id {
			kept = append(kept, story)
		}
	}
	s.stories = kept
	if err := s.storiesMirror.Put(s.stories); err != nil {
		s.logger.Warn("Failed to mirror story list", zap.Error(err))
	}
	s.lastError = ""
	return nil
}

// Current returns the story being worked on, or nil.
func (s *StoryState) Current() *model.CurrentStory {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Stories returns the saved story library, newest first.
func (s *StoryState) Stories() []*model.Story {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Story, len(s.stories))
	copy(out, s.stories)
	return out
}

// Err returns the most recent failure message, empty when the last
// action succeeded.
func (s *StoryState) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

func (s *StoryState) setError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = msg
}

// snapshotCurrentLocked mirrors the current story locally and pushes it
// to the server. The remote push is best-effort; the mirror copy is what
// guarantees resume-after-restart.
func (s *StoryState) snapshotCurrentLocked(ctx context.Context) {
	if s.current == nil {
		return
	}
	if err := s.currentMirror.Put(*s.current); err != nil {
		s.logger.Warn("Failed to mirror current story", zap.Error(err))
	}
	snapshot, err := s.client.SaveCurrentStory(ctx, SaveCurrentStoryRequest{
		DeviceID:    s.deviceID,
		Story:       s.current.Text,
		Markup:      s.current.Markup,
		Parameters:  s.current.Parameters,
		Translation: s.current.Translation,
	})
	if err != nil {
		s.logger.Warn("Failed to push current story snapshot", zap.Error(err))
		return
	}
	s.current = snapshot
}
