package client

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jtbrown6/language-storygen/pkg/localmirror"
	"github.com/jtbrown6/language-storygen/pkg/model"
)

// StudyListState owns the study list shown in the vocabulary panel.
type StudyListState struct {
	client *Client
	logger *zap.Logger
	mirror *localmirror.Mirror[[]*model.StudyItem]

	mu        sync.Mutex
	items     []*model.StudyItem
	lastError string
}

// NewStudyListState creates a StudyListState backed by the given mirror store.
func NewStudyListState(apiClient *Client, store localmirror.Store, logger *zap.Logger) *StudyListState {
	log := logger.Named("StudyListState")
	return &StudyListState{
		client: apiClient,
		logger: log,
		mirror: localmirror.New[[]*model.StudyItem](store, "study_items", log),
	}
}

// Load pulls the study list from the server, falling back to the mirror.
func (s *StudyListState) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.mirror.Fetch(func() ([]*model.StudyItem, error) {
		return s.client.ListStudyItems(ctx)
	})
	if err != nil {
		s.lastError = "Could not load study list: " + err.Error()
		return
	}
	s.items = items
	s.lastError = ""
}

// Add saves a word or phrase to the study list. A duplicate is reported
// through the error message, the list is left unchanged.
func (s *StudyListState) Add(ctx context.Context, text, translation, context_ string) (*model.StudyItem, error) {
	item, err := s.client.AddStudyItem(ctx, AddStudyItemRequest{
		Text:        text,
		Translation: translation,
		Context:     context_,
	})
	if err != nil {
		s.setError("Could not add study item: " + err.Error())
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]*model.StudyItem{item}, s.items...)
	if err := s.mirror.Put(s.items); err != nil {
		s.logger.Warn("Failed to mirror study list", zap.Error(err))
	}
	s.lastError = ""
	return item, nil
}

// Remove deletes a study item.
func (s *StudyListState) Remove(ctx context.Context, id uuid.UUID) error {
	if err := s.client.DeleteStudyItem(ctx, id); err != nil {
		s.setError("Could not remove study item: " + err.Error())
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	s.items = kept
	if err := s.mirror.Put(s.items); err != nil {
		s.logger.Warn("Failed to mirror study list", zap.Error(err))
	}
	s.lastError = ""
	return nil
}

// Items returns the study list, newest first.
func (s *StudyListState) Items() []*model.StudyItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.StudyItem, len(s.items))
	copy(out, s.items)
	return out
}

// Err returns the most recent failure message, empty when the last
// action succeeded.
func (s *StudyListState) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

func (s *StudyListState) setError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = msg
}
