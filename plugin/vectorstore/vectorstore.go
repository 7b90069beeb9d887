// Package vectorstore indexes scene synopses for semantic search,
// backed by chromem-go with per-project collections and disk persistence.
package vectorstore

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	chromem "github.com/philippgille/chromem-go"
)

// SearchResult is a single semantic-search hit.
type SearchResult struct {
	SceneUID string
	Content  string
	Score    float32
}

// Store wraps chromem-go with per-project collections.
type Store struct {
	mu      sync.RWMutex
	db      *chromem.DB
	dataDir string
	embedFn chromem.EmbeddingFunc
}

// New creates (or opens) the persistent vector store at dataDir/vectorstore/.
// embedFunc is typically chromem.NewEmbeddingFuncOpenAICompat pointed at the
// OpenRouter embeddings endpoint.
func New(dataDir string, embedFunc chromem.EmbeddingFunc) (*Store, error) {
	dir := filepath.Join(dataDir, "vectorstore")
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create vectorstore dir: %w", err)
	}
	db, err := chromem.NewPersistentDB(dir, false)
	if err != nil {
		return nil, fmt.Errorf("open vectorstore: %w", err)
	}
	return &Store{db: db, dataDir: dir, embedFn: embedFunc}, nil
}

func collectionName(projectID int32) string {
	return fmt.Sprintf("project_%d_scenes", projectID)
}

func (s *Store) getOrCreateCollection(projectID int32) *chromem.Collection {
	name := collectionName(projectID)
	col := s.db.GetCollection(name, s.embedFn)
	if col == nil {
		var err error
		col, err = s.db.CreateCollection(name, nil, s.embedFn)
		if err != nil {
			slog.Error("failed to create vector collection", "project", projectID, "err", err)
			return nil
		}
	}
	return col
}

// UpsertScene indexes (or re-indexes) a scene's heading and synopsis.
func (s *Store) UpsertScene(ctx context.Context, projectID int32, sceneUID, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	col := s.getOrCreateCollection(projectID)
	if col == nil {
		return fmt.Errorf("vectorstore: nil collection for project %d", projectID)
	}

	doc := chromem.Document{
		ID:      sceneUID,
		Content: content,
	}
	return col.AddDocument(ctx, doc)
}

// RemoveScene drops a scene from the index.
func (s *Store) RemoveScene(ctx context.Context, projectID int32, sceneUID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	col := s.getOrCreateCollection(projectID)
	if col == nil {
		return nil
	}
	return col.Delete(ctx, nil, nil, sceneUID)
}

// SearchSimilar returns the top-k scenes most semantically similar to the query.
func (s *Store) SearchSimilar(ctx context.Context, projectID int32, query string, k int) ([]SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	col := s.getOrCreateCollection(projectID)
	if col == nil {
		return nil, nil
	}

	count := col.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	var results []chromem.Result
	var err error

	// chromem-go sometimes throws "nResults must be <= number of documents" despite Count checks.
	// Step down k if it fails.
	for attemptK := k; attemptK > 0; attemptK-- {
		results, err = col.Query(ctx, query, attemptK, nil, nil)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	out := make([]SearchResult, 0, len(results))
	for _, r := range results {
		out = append(out, SearchResult{
			SceneUID: r.ID,
			Content:  r.Content,
			Score:    r.Similarity,
		})
	}
	return out, nil
}
