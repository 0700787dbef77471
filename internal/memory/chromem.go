package memory

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/philippgille/chromem-go"
)

// defaultQueryLimit bounds similarity queries when the caller passes k <= 0.
const defaultQueryLimit = 4

// SemanticIndex is an append-only store of past exchanges embedded into
// vectors, queryable by nearest-neighbor similarity. Each user gets a
// dedicated chromem-go collection persisted under a user-scoped directory.
type SemanticIndex struct {
	db         *chromem.DB
	collection *chromem.Collection
	name       string
	embed      EmbedFunc
}

// NewSemanticIndex creates a persistent index for userID under persistDir.
func NewSemanticIndex(persistDir, userID string, embed EmbedFunc) (*SemanticIndex, error) {
	db, err := chromem.NewPersistentDB(filepath.Join(persistDir, userID), false)
	if err != nil {
		return nil, fmt.Errorf("create persistent DB: %w", err)
	}
	return newIndex(db, userID, embed)
}

// NewSemanticIndexInMemory creates a non-persistent index for testing.
func NewSemanticIndexInMemory(userID string, embed EmbedFunc) (*SemanticIndex, error) {
	return newIndex(chromem.NewDB(), userID, embed)
}

func newIndex(db *chromem.DB, userID string, embed EmbedFunc) (*SemanticIndex, error) {
	name := "travel_memory_" + userID
	col, err := db.GetOrCreateCollection(name, nil, chromem.EmbeddingFunc(embed))
	if err != nil {
		return nil, fmt.Errorf("get or create collection: %w", err)
	}
	return &SemanticIndex{
		db:         db,
		collection: col,
		name:       name,
		embed:      embed,
	}, nil
}

// Record embeds the exchange and appends it to the collection.
func (s *SemanticIndex) Record(ctx context.Context, userText, assistantText string) error {
	ex := Exchange{
		ID:        uuid.New().String(),
		UserMsg:   userText,
		AssistMsg: assistantText,
		Timestamp: time.Now(),
	}

	doc := chromem.Document{
		ID:      ex.ID,
		Content: ex.Content(),
		Metadata: map[string]string{
			"user_msg":   ex.UserMsg,
			"assist_msg": ex.AssistMsg,
			"timestamp":  ex.Timestamp.Format(time.RFC3339),
		},
	}

	if err := s.collection.AddDocument(ctx, doc); err != nil {
		return fmt.Errorf("add document: %w", err)
	}
	return nil
}

// Query returns up to k stored exchanges nearest to text by similarity,
// most similar first. Returns nil when the collection is empty.
func (s *SemanticIndex) Query(ctx context.Context, text string, k int) ([]Snippet, error) {
	if k <= 0 {
		k = defaultQueryLimit
	}

	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	results, err := s.collection.Query(ctx, text, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query collection: %w", err)
	}

	snippets := make([]Snippet, 0, len(results))
	for _, r := range results {
		ts, _ := time.Parse(time.RFC3339, r.Metadata["timestamp"])
		snippets = append(snippets, Snippet{
			Exchange: Exchange{
				ID:        r.ID,
				UserMsg:   r.Metadata["user_msg"],
				AssistMsg: r.Metadata["assist_msg"],
				Timestamp: ts,
			},
			Similarity: r.Similarity,
		})
	}
	return snippets, nil
}

// RelevantHistory formats query results into a single block of text for
// prompt injection. Returns "" when nothing relevant is stored.
func (s *SemanticIndex) RelevantHistory(ctx context.Context, text string, k int) (string, error) {
	snippets, err := s.Query(ctx, text, k)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(snippets))
	for _, sn := range snippets {
		parts = append(parts, sn.Exchange.Content())
	}
	return strings.Join(parts, "\n\n"), nil
}

// Count returns the exact number of stored exchanges.
func (s *SemanticIndex) Count() int {
	return s.collection.Count()
}

// Clear deletes and recreates the collection.
func (s *SemanticIndex) Clear(ctx context.Context) error {
	if err := s.db.DeleteCollection(s.name); err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}

	col, err := s.db.GetOrCreateCollection(s.name, nil, chromem.EmbeddingFunc(s.embed))
	if err != nil {
		return fmt.Errorf("recreate collection: %w", err)
	}
	s.collection = col
	return nil
}
