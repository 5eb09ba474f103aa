package search_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/judgebase/judgebase-api/cmd/server/internal/search"
)

// Just enough of the elasticsearch document API for the indexer
type fakeCluster struct {
	mu          sync.Mutex
	indexExists bool
	mapping     string
	docs        map[string]search.Document
	lastSearch  map[string]any
}

func (f *fakeCluster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	case len(parts) == 1 && r.Method == http.MethodHead:
		if !f.indexExists {
			w.WriteHeader(http.StatusNotFound)
		}
	case len(parts) == 1 && r.Method == http.MethodPut:
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		b, _ := json.Marshal(body["mappings"])
		f.mapping = string(b)
		f.indexExists = true
		_, _ = w.Write([]byte(`{"acknowledged": true}`))
	case len(parts) == 3 && parts[1] == "_doc" && r.Method == http.MethodPut:
		var doc search.Document
		_ = json.NewDecoder(r.Body).Decode(&doc)
		f.docs[parts[2]] = doc
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result": "created"}`))
	case len(parts) == 3 && parts[1] == "_doc" && r.Method == http.MethodDelete:
		if _, ok := f.docs[parts[2]]; !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"result": "not_found"}`))
			return
		}
		delete(f.docs, parts[2])
		_, _ = w.Write([]byte(`{"result": "deleted"}`))
	case len(parts) == 2 && parts[1] == "_search":
		_ = json.NewDecoder(r.Body).Decode(&f.lastSearch)
		hits := []map[string]any{}
		for id := range f.docs {
			hits = append(hits, map[string]any{"_id": id})
		}
		hits = append(hits, map[string]any{"_id": "not-a-uuid"})
		_ = json.NewEncoder(w).Encode(map[string]any{"hits": map[string]any{"hits": hits}})
	default:
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "unexpected request"}`))
	}
}

func TestElasticIndexer(t *testing.T) {
	fake := &fakeCluster{docs: map[string]search.Document{}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	idx, err := search.NewElasticIndexer([]string{srv.URL}, "", "", "judges")
	require.NoError(t, err)

	ctx := context.Background()

	t.Run("EnsureIndex", func(t *testing.T) {
		require.NoError(t, idx.EnsureIndex(ctx))
		assert.True(t, fake.indexExists)
		assert.Contains(t, fake.mapping, `"dynamic":"strict"`)

		// idempotent
		require.NoError(t, idx.EnsureIndex(ctx))
	})

	id := uuid.New()

	t.Run("IndexJudge", func(t *testing.T) {
		require.NoError(t, idx.IndexJudge(ctx, id, search.Document{
			Name:      "Jane Doe",
			Slug:      "janedoe",
			Expertise: []string{"AI/ML"},
			Featured:  true,
		}))

		doc, ok := fake.docs[id.String()]
		require.True(t, ok)
		assert.Equal(t, "janedoe", doc.Slug)
		assert.Equal(t, []string{}, doc.Badges, "nil lists indexed as empty")
	})

	t.Run("SearchJudges", func(t *testing.T) {
		ids, err := idx.SearchJudges(ctx, "jane", 10)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{id}, ids, "unparseable ids are skipped")
		assert.EqualValues(t, 10, fake.lastSearch["size"])
	})

	t.Run("RemoveJudge", func(t *testing.T) {
		require.NoError(t, idx.RemoveJudge(ctx, id))
		assert.Empty(t, fake.docs)

		// removing again is fine
		require.NoError(t, idx.RemoveJudge(ctx, id))
	})
}

func TestNoop(t *testing.T) {
	var idx search.Indexer = search.Noop{}
	ctx := context.Background()

	assert.ErrorIs(t, idx.IndexJudge(ctx, uuid.New(), search.Document{}), search.ErrNotConfigured)
	assert.ErrorIs(t, idx.RemoveJudge(ctx, uuid.New()), search.ErrNotConfigured)
	_, err := idx.SearchJudges(ctx, "x", 1)
	assert.ErrorIs(t, err, search.ErrNotConfigured)
}
