package library

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	chromem "github.com/philippgille/chromem-go"

	"github.com/draftwise/draftwise/core"
)

const vectorsDir = "vectors"

// index wraps chromem-go, an embedded pure-Go vector database.
// One chromem collection per memory bank; embeddings are supplied by the
// caller, never computed by chromem itself.
type index struct {
	db          *chromem.DB
	collections map[core.Collection]*chromem.Collection
}

func openIndex(dataDir string) (*index, error) {
	db, err := chromem.NewPersistentDB(filepath.Join(dataDir, vectorsDir), false)
	if err != nil {
		return nil, fmt.Errorf("opening vector database: %w", err)
	}

	idx := &index{
		db:          db,
		collections: make(map[core.Collection]*chromem.Collection),
	}
	for _, name := range []core.Collection{core.CollectionStyle, core.CollectionCreators} {
		// nil embedding func: documents always arrive with vectors attached.
		col, err := db.GetOrCreateCollection(string(name), nil, nil)
		if err != nil {
			return nil, fmt.Errorf("creating collection %s: %w", name, err)
		}
		idx.collections[name] = col
	}
	return idx, nil
}

func (idx *index) add(ctx context.Context, e core.Entry, embedding []float32) error {
	col := idx.collections[e.Collection]
	if col == nil {
		return fmt.Errorf("unknown collection %q", e.Collection)
	}

	doc := chromem.Document{
		ID:        e.ID,
		Content:   e.Body,
		Embedding: embedding,
		Metadata: map[string]string{
			"title":   e.Title,
			"creator": e.Creator,
		},
	}
	if err := col.AddDocument(ctx, doc); err != nil {
		return fmt.Errorf("indexing entry: %w", err)
	}
	return nil
}

// query returns up to limit results by cosine similarity, highest first.
// chromem rejects nResults larger than the collection, so the limit is
// clamped to the current document count.
func (idx *index) query(ctx context.Context, colName core.Collection, embedding []float32, limit int) ([]chromem.Result, error) {
	col := idx.collections[colName]
	if col == nil {
		return nil, fmt.Errorf("unknown collection %q", colName)
	}

	count := col.Count()
	if count == 0 {
		return nil, nil
	}
	if limit > count {
		limit = count
	}

	results, err := col.QueryEmbedding(ctx, embedding, limit, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("vector query: %w", err)
	}
	return results, nil
}

func (idx *index) size(colName core.Collection) int {
	col := idx.collections[colName]
	if col == nil {
		return 0
	}
	return col.Count()
}

func (idx *index) delete(ctx context.Context, colName core.Collection, id string) error {
	col := idx.collections[colName]
	if col == nil {
		return fmt.Errorf("unknown collection %q", colName)
	}
	if err := col.Delete(ctx, nil, nil, id); err != nil {
		// The catalog row is already gone; a stale vector is harmless
		// because lookups join back through the catalog.
		log.Printf("[LIBRARY] vector delete for %s failed: %v", id, err)
	}
	return nil
}
