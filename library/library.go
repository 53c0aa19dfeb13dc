package library

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/draftwise/draftwise/core"
	"github.com/draftwise/draftwise/embed"
)

// queryPrefixLen caps how much of a draft is embedded as the search query.
// Long drafts would otherwise drown the embedding in their tail.
const queryPrefixLen = 500

// DefaultDataDir is where the library lives unless configured otherwise.
const DefaultDataDir = "./content_memory"

// Config configures a Library.
type Config struct {
	// DataDir holds both the catalog database and the vector index.
	// Default: ./content_memory
	DataDir string
}

// Library is the pair of content memory banks: the user's own style
// examples and clips from favorite creators. Entries live in a SQLite
// catalog (exact listing, grouping, deletion) and a chromem vector index
// (similarity retrieval), embedded on add.
type Library struct {
	catalog  *catalog
	index    *index
	embedder embed.Embedder
}

// Match is a similarity search hit.
type Match struct {
	Entry      core.Entry `json:"entry"`
	Similarity float32    `json:"similarity"`
}

// Counts reports how many entries each bank holds.
type Counts struct {
	Style    int `json:"style"`
	Creators int `json:"creators"`
}

// New opens (or creates) a library under cfg.DataDir.
// embedder may be nil for catalog-only use (list, delete); Add and Search
// then fail with a clear error.
func New(cfg Config, embedder embed.Embedder) (*Library, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = DefaultDataDir
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	cat, err := openCatalog(dataDir)
	if err != nil {
		return nil, err
	}
	idx, err := openIndex(dataDir)
	if err != nil {
		cat.close()
		return nil, err
	}

	return &Library{catalog: cat, index: idx, embedder: embedder}, nil
}

// Close releases the catalog database.
func (l *Library) Close() error {
	return l.catalog.close()
}

// AddStyle stores one of the user's own content examples.
func (l *Library) AddStyle(ctx context.Context, title, body, notes string) (core.Entry, error) {
	if strings.TrimSpace(title) == "" {
		return core.Entry{}, core.ErrEmptyTitle
	}
	if strings.TrimSpace(body) == "" {
		return core.Entry{}, core.ErrEmptyBody
	}

	entry := core.Entry{
		ID:         uuid.New().String(),
		Collection: core.CollectionStyle,
		Title:      title,
		Body:       body,
		Notes:      notes,
		CreatedAt:  time.Now(),
	}
	return l.add(ctx, entry)
}

// AddCreator stores a clip from a favorite creator.
func (l *Library) AddCreator(ctx context.Context, creator, title, body, notes string) (core.Entry, error) {
	if strings.TrimSpace(creator) == "" {
		return core.Entry{}, core.ErrEmptyCreator
	}
	if strings.TrimSpace(title) == "" {
		return core.Entry{}, core.ErrEmptyTitle
	}
	if strings.TrimSpace(body) == "" {
		return core.Entry{}, core.ErrEmptyBody
	}

	entry := core.Entry{
		ID:         uuid.New().String(),
		Collection: core.CollectionCreators,
		Creator:    creator,
		Title:      title,
		Body:       body,
		Notes:      notes,
		CreatedAt:  time.Now(),
	}
	return l.add(ctx, entry)
}

func (l *Library) add(ctx context.Context, entry core.Entry) (core.Entry, error) {
	if l.embedder == nil {
		return core.Entry{}, fmt.Errorf("library opened without an embedder")
	}

	embedding, err := l.embedder.Embed(ctx, entry.Body)
	if err != nil {
		return core.Entry{}, fmt.Errorf("embedding entry: %w", err)
	}

	if err := l.catalog.insert(entry); err != nil {
		return core.Entry{}, err
	}
	if err := l.index.add(ctx, entry, embedding); err != nil {
		// Keep catalog and index consistent.
		l.catalog.delete(entry.ID)
		return core.Entry{}, err
	}

	log.Printf("[LIBRARY] stored %s entry %q (%s)", entry.Collection, entry.Title, entry.ID)
	return entry, nil
}

// Get returns the entry with the given ID.
func (l *Library) Get(ctx context.Context, id string) (core.Entry, error) {
	return l.catalog.get(id)
}

// ListStyle returns the user's style examples, newest first.
func (l *Library) ListStyle(ctx context.Context) ([]core.Entry, error) {
	return l.catalog.list(core.CollectionStyle)
}

// ListCreators returns all stored creator clips, newest first.
func (l *Library) ListCreators(ctx context.Context) ([]core.Entry, error) {
	return l.catalog.list(core.CollectionCreators)
}

// CreatorNames returns the distinct creator names with stored content.
func (l *Library) CreatorNames(ctx context.Context) ([]string, error) {
	return l.catalog.creatorNames()
}

// Delete removes an entry from both the catalog and the vector index.
func (l *Library) Delete(ctx context.Context, id string) error {
	entry, err := l.catalog.delete(id)
	if err != nil {
		return err
	}
	if err := l.index.delete(ctx, entry.Collection, id); err != nil {
		return err
	}
	log.Printf("[LIBRARY] deleted %s entry %q (%s)", entry.Collection, entry.Title, id)
	return nil
}

// Counts reports entry counts per bank.
func (l *Library) Counts(ctx context.Context) (Counts, error) {
	style, err := l.catalog.count(core.CollectionStyle)
	if err != nil {
		return Counts{}, err
	}
	creators, err := l.catalog.count(core.CollectionCreators)
	if err != nil {
		return Counts{}, err
	}
	return Counts{Style: style, Creators: creators}, nil
}

// SearchStyle returns the k style entries most similar to the query.
func (l *Library) SearchStyle(ctx context.Context, query string, k int) ([]Match, error) {
	return l.search(ctx, core.CollectionStyle, query, k, nil)
}

// SearchCreators returns the k creator entries most similar to the query.
// A non-empty creators slice restricts results to those creators.
func (l *Library) SearchCreators(ctx context.Context, query string, k int, creators []string) ([]Match, error) {
	return l.search(ctx, core.CollectionCreators, query, k, creators)
}

func (l *Library) search(ctx context.Context, col core.Collection, query string, k int, creators []string) ([]Match, error) {
	if l.embedder == nil {
		return nil, fmt.Errorf("library opened without an embedder")
	}
	if k <= 0 {
		return nil, nil
	}
	query = truncate(query, queryPrefixLen)

	embedding, err := l.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	// chromem where-clauses are single-key exact matches, so the creator
	// filter ranks the whole collection and narrows here instead. A fixed
	// over-fetch window would drop a creator's clips whenever they all
	// rank below it; these are personal-scale collections.
	fetch := k
	if len(creators) > 0 {
		fetch = l.index.size(col)
	}

	results, err := l.index.query(ctx, col, embedding, fetch)
	if err != nil {
		return nil, err
	}

	allowed := make(map[string]bool, len(creators))
	for _, name := range creators {
		allowed[name] = true
	}

	var matches []Match
	for _, r := range results {
		if len(allowed) > 0 && !allowed[r.Metadata["creator"]] {
			continue
		}
		entry, err := l.catalog.get(r.ID)
		if err != nil {
			// Vector row with no catalog row: skip it.
			log.Printf("[LIBRARY] skipping orphaned vector %s: %v", r.ID, err)
			continue
		}
		matches = append(matches, Match{Entry: entry, Similarity: r.Similarity})
		if len(matches) == k {
			break
		}
	}
	return matches, nil
}

// truncate cuts s at the byte limit, backing up so no UTF-8 rune is split.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// GroupByCreator arranges creator entries per creator name, creators in
// alphabetical order, each creator's clips newest first.
func GroupByCreator(entries []core.Entry) ([]string, map[string][]core.Entry) {
	groups := make(map[string][]core.Entry)
	for _, e := range entries {
		groups[e.Creator] = append(groups[e.Creator], e)
	}
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, groups
}
