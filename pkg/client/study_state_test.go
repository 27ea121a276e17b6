package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jtbrown6/language-storygen/pkg/localmirror"
	"github.com/jtbrown6/language-storygen/pkg/model"
)

type studyServer struct {
	offline atomic.Bool
	items   []*model.StudyItem
}

func (s *studyServer) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if s.offline.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"error": "unavailable"})
			return
		}
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/study-list":
			json.NewEncoder(w).Encode(s.items)
		case r.Method == http.MethodPost && r.URL.Path == "/study-list":
			var req AddStudyItemRequest
			json.NewDecoder(r.Body).Decode(&req)
			for _, item := range s.items {
				if strings.EqualFold(item.Text, req.Text) && strings.EqualFold(item.Translation, req.Translation) {
					w.WriteHeader(http.StatusConflict)
					json.NewEncoder(w).Encode(map[string]string{"error": "This item already exists in your study list"})
					return
				}
			}
			item := &model.StudyItem{ID: uuid.New(), Text: req.Text, Translation: req.Translation, Context: req.Context}
			s.items = append([]*model.StudyItem{item}, s.items...)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(item)
		case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/study-list/"):
			json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
		default:
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "not found"})
		}
	})
}

func TestStudyListStateLoadAndMirrorFallback(t *testing.T) {
	backend := &studyServer{items: []*model.StudyItem{
		{ID: uuid.New(), Text: "comprar", Translation: "to buy"},
	}}
	server := httptest.NewServer(backend.handler())
	defer server.Close()

	store := localmirror.NewMemoryStore()
	state := NewStudyListState(New(server.URL), store, zap.NewNop())
	state.Load(context.Background())
	require.Empty(t, state.Err())
	require.Len(t, state.Items(), 1)

	backend.offline.Store(true)
	rebooted := NewStudyListState(New(server.URL), store, zap.NewNop())
	rebooted.Load(context.Background())
	assert.Empty(t, rebooted.Err())
	require.Len(t, rebooted.Items(), 1)
	assert.Equal(t, "comprar", rebooted.Items()[0].Text)
}

func TestStudyListStateAdd(t *testing.T) {
	backend := &studyServer{}
	server := httptest.NewServer(backend.handler())
	defer server.Close()

	store := localmirror.NewMemoryStore()
	state := NewStudyListState(New(server.URL), store, zap.NewNop())
	state.Load(context.Background())

	item, err := state.Add(context.Background(), "manzana", "apple", "compró manzanas")
	require.NoError(t, err)
	assert.Equal(t, "manzana", item.Text)
	require.Len(t, state.Items(), 1)

	// Duplicate is rejected server-side and leaves local state untouched.
	_, err = state.Add(context.Background(), "MANZANA", "Apple", "")
	require.Error(t, err)
	assert.Contains(t, state.Err(), "already exists")
	assert.Len(t, state.Items(), 1)
}

func TestStudyListStateRemove(t *testing.T) {
	existing := &model.StudyItem{ID: uuid.New(), Text: "correr", Translation: "to run"}
	backend := &studyServer{items: []*model.StudyItem{existing}}
	server := httptest.NewServer(backend.handler())
	defer server.Close()

	state := NewStudyListState(New(server.URL), localmirror.NewMemoryStore(), zap.NewNop())
	state.Load(context.Background())
	require.Len(t, state.Items(), 1)

	require.NoError(t, state.Remove(context.Background(), existing.ID))
	assert.Empty(t, state.Items())
	assert.Empty(t, state.Err())
}
