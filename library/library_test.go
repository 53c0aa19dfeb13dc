package library_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/draftwise/draftwise/core"
	"github.com/draftwise/draftwise/embed"
	"github.com/draftwise/draftwise/embed/mock"
	"github.com/draftwise/draftwise/library"
)

// scriptedEmbedder returns a fixed vector per known text, so a test can
// dictate similarity rankings exactly.
type scriptedEmbedder struct {
	vectors map[string][]float32
}

func (s *scriptedEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	v, ok := s.vectors[text]
	if !ok {
		return nil, fmt.Errorf("no scripted vector for %q", text)
	}
	return v, nil
}

func (s *scriptedEmbedder) Dimensions() int { return 3 }

// recordingEmbedder captures the last text it was asked to embed.
type recordingEmbedder struct {
	embed.Embedder
	lastText string
}

func (r *recordingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	r.lastText = text
	return r.Embedder.Embed(ctx, text)
}

func newTestLibrary(t *testing.T) *library.Library {
	t.Helper()
	lib, err := library.New(library.Config{DataDir: t.TempDir()}, mock.New(64))
	if err != nil {
		t.Fatalf("Failed to create library: %v", err)
	}
	t.Cleanup(func() { lib.Close() })
	return lib
}

func TestAddAndListStyle(t *testing.T) {
	ctx := context.Background()
	lib := newTestLibrary(t)

	first, err := lib.AddStyle(ctx, "Morning routine video", "Here is how I start my day...", "casual tone")
	if err != nil {
		t.Fatalf("AddStyle: %v", err)
	}
	if first.ID == "" || first.Collection != core.CollectionStyle {
		t.Fatalf("unexpected entry: %+v", first)
	}

	second, err := lib.AddStyle(ctx, "Desk setup tour", "Welcome back, today we tour my desk...", "")
	if err != nil {
		t.Fatalf("AddStyle: %v", err)
	}

	entries, err := lib.ListStyle(ctx)
	if err != nil {
		t.Fatalf("ListStyle: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	// Newest first.
	if entries[0].ID != second.ID {
		t.Errorf("expected newest entry first, got %q", entries[0].Title)
	}
	if entries[1].Notes != "casual tone" {
		t.Errorf("notes not preserved: %+v", entries[1])
	}
}

func TestAddStyleValidation(t *testing.T) {
	ctx := context.Background()
	lib := newTestLibrary(t)

	if _, err := lib.AddStyle(ctx, "", "body", ""); !errors.Is(err, core.ErrEmptyTitle) {
		t.Errorf("empty title: got %v, want ErrEmptyTitle", err)
	}
	if _, err := lib.AddStyle(ctx, "title", "  ", ""); !errors.Is(err, core.ErrEmptyBody) {
		t.Errorf("empty body: got %v, want ErrEmptyBody", err)
	}
	if _, err := lib.AddCreator(ctx, "", "title", "body", ""); !errors.Is(err, core.ErrEmptyCreator) {
		t.Errorf("empty creator: got %v, want ErrEmptyCreator", err)
	}
}

func TestCreatorNamesAndGrouping(t *testing.T) {
	ctx := context.Background()
	lib := newTestLibrary(t)

	clips := []struct{ creator, title string }{
		{"MKBHD", "Smartphone awards"},
		{"Ali Abdaal", "How I read books"},
		{"MKBHD", "Studio tour"},
	}
	for _, c := range clips {
		if _, err := lib.AddCreator(ctx, c.creator, c.title, "transcript of "+c.title, "great pacing"); err != nil {
			t.Fatalf("AddCreator: %v", err)
		}
	}

	names, err := lib.CreatorNames(ctx)
	if err != nil {
		t.Fatalf("CreatorNames: %v", err)
	}
	if len(names) != 2 || names[0] != "Ali Abdaal" || names[1] != "MKBHD" {
		t.Errorf("unexpected creator names: %v", names)
	}

	entries, err := lib.ListCreators(ctx)
	if err != nil {
		t.Fatalf("ListCreators: %v", err)
	}
	order, groups := library.GroupByCreator(entries)
	if len(order) != 2 {
		t.Fatalf("got %d groups, want 2", len(order))
	}
	if len(groups["MKBHD"]) != 2 {
		t.Errorf("MKBHD group has %d clips, want 2", len(groups["MKBHD"]))
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	lib := newTestLibrary(t)

	entry, err := lib.AddStyle(ctx, "To be removed", "some content here", "")
	if err != nil {
		t.Fatalf("AddStyle: %v", err)
	}

	if err := lib.Delete(ctx, entry.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := lib.Get(ctx, entry.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Get after delete: got %v, want ErrNotFound", err)
	}
	if err := lib.Delete(ctx, entry.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Delete unknown id: got %v, want ErrNotFound", err)
	}

	counts, err := lib.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if counts.Style != 0 {
		t.Errorf("style count = %d after delete, want 0", counts.Style)
	}
}

func TestSearchStyle(t *testing.T) {
	ctx := context.Background()
	lib := newTestLibrary(t)

	// Empty collection: no matches, no error.
	matches, err := lib.SearchStyle(ctx, "anything at all", 2)
	if err != nil {
		t.Fatalf("SearchStyle on empty library: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected no matches, got %d", len(matches))
	}

	bodies := []string{
		"Today I want to show you my favorite productivity apps",
		"This is the story of how I quit my job to make videos",
		"Let's unbox the new camera and see if it's worth it",
	}
	for i, body := range bodies {
		if _, err := lib.AddStyle(ctx, bodies[i][:20], body, ""); err != nil {
			t.Fatalf("AddStyle: %v", err)
		}
	}

	matches, err = lib.SearchStyle(ctx, "productivity apps for creators", 2)
	if err != nil {
		t.Fatalf("SearchStyle: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	for _, m := range matches {
		if m.Entry.Collection != core.CollectionStyle {
			t.Errorf("match from wrong collection: %+v", m.Entry)
		}
	}

	// Asking for more than stored returns everything, not an error.
	matches, err = lib.SearchStyle(ctx, "cameras", 10)
	if err != nil {
		t.Fatalf("SearchStyle with large k: %v", err)
	}
	if len(matches) != 3 {
		t.Errorf("got %d matches, want 3", len(matches))
	}
}

func TestSearchCreatorsFilter(t *testing.T) {
	ctx := context.Background()
	lib := newTestLibrary(t)

	for _, c := range []struct{ creator, title, body string }{
		{"MKBHD", "Phone review", "The phone's camera is the real story this year"},
		{"MKBHD", "Car review", "Electric cars are finally getting interesting"},
		{"Ali Abdaal", "Study tips", "Evidence based techniques for studying better"},
	} {
		if _, err := lib.AddCreator(ctx, c.creator, c.title, c.body, ""); err != nil {
			t.Fatalf("AddCreator: %v", err)
		}
	}

	// Unfiltered search sees all creators.
	matches, err := lib.SearchCreators(ctx, "reviewing new tech products", 3, nil)
	if err != nil {
		t.Fatalf("SearchCreators: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("got %d matches, want 3", len(matches))
	}

	// Filtered search only returns the named creator.
	matches, err = lib.SearchCreators(ctx, "reviewing new tech products", 3, []string{"Ali Abdaal"})
	if err != nil {
		t.Fatalf("SearchCreators filtered: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d filtered matches, want 1", len(matches))
	}
	if matches[0].Entry.Creator != "Ali Abdaal" {
		t.Errorf("filter leaked creator %q", matches[0].Entry.Creator)
	}
}

func TestSearchCreatorsFilterLowRankedCreator(t *testing.T) {
	ctx := context.Background()
	emb := &scriptedEmbedder{vectors: map[string][]float32{
		"camera gear recommendations": {1, 0, 0},
		"ali abdaal reading clip":     {0, 1, 0},
	}}
	for i := 0; i < 5; i++ {
		emb.vectors[fmt.Sprintf("mkbhd transcript %d", i)] = []float32{1, float32(i+1) * 0.01, 0}
	}

	lib, err := library.New(library.Config{DataDir: t.TempDir()}, emb)
	if err != nil {
		t.Fatalf("Failed to create library: %v", err)
	}
	defer lib.Close()

	for i := 0; i < 5; i++ {
		if _, err := lib.AddCreator(ctx, "MKBHD", fmt.Sprintf("Clip %d", i), fmt.Sprintf("mkbhd transcript %d", i), ""); err != nil {
			t.Fatalf("AddCreator: %v", err)
		}
	}
	if _, err := lib.AddCreator(ctx, "Ali Abdaal", "Reading clip", "ali abdaal reading clip", ""); err != nil {
		t.Fatalf("AddCreator: %v", err)
	}

	// Every MKBHD clip outranks the single Ali Abdaal clip for this query,
	// but the filter must still surface it.
	matches, err := lib.SearchCreators(ctx, "camera gear recommendations", 1, []string{"Ali Abdaal"})
	if err != nil {
		t.Fatalf("SearchCreators: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].Entry.Creator != "Ali Abdaal" {
		t.Errorf("got creator %q, want Ali Abdaal", matches[0].Entry.Creator)
	}
}

func TestSearchQueryTruncation(t *testing.T) {
	ctx := context.Background()
	rec := &recordingEmbedder{Embedder: mock.New(64)}
	lib, err := library.New(library.Config{DataDir: t.TempDir()}, rec)
	if err != nil {
		t.Fatalf("Failed to create library: %v", err)
	}
	defer lib.Close()

	if _, err := lib.AddStyle(ctx, "Entry", "a short body", ""); err != nil {
		t.Fatalf("AddStyle: %v", err)
	}

	if _, err := lib.SearchStyle(ctx, strings.Repeat("a", 600), 1); err != nil {
		t.Fatalf("SearchStyle: %v", err)
	}
	if len(rec.lastText) != 500 {
		t.Errorf("embedded query is %d bytes, want 500", len(rec.lastText))
	}

	// A multi-byte rune straddling the cut is dropped whole.
	if _, err := lib.SearchStyle(ctx, strings.Repeat("a", 499)+"日本語", 1); err != nil {
		t.Fatalf("SearchStyle: %v", err)
	}
	if !utf8.ValidString(rec.lastText) {
		t.Errorf("embedded query is not valid UTF-8: %q", rec.lastText[490:])
	}
	if len(rec.lastText) != 499 {
		t.Errorf("embedded query is %d bytes, want 499", len(rec.lastText))
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	lib, err := library.New(library.Config{DataDir: dir}, mock.New(64))
	if err != nil {
		t.Fatalf("Failed to create library: %v", err)
	}
	entry, err := lib.AddStyle(ctx, "Persistent entry", "this should survive a reopen", "")
	if err != nil {
		t.Fatalf("AddStyle: %v", err)
	}
	if err := lib.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := library.New(library.Config{DataDir: dir}, mock.New(64))
	if err != nil {
		t.Fatalf("Failed to reopen library: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, entry.ID)
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if got.Title != "Persistent entry" {
		t.Errorf("unexpected entry after reopen: %+v", got)
	}

	matches, err := reopened.SearchStyle(ctx, "survive a reopen", 1)
	if err != nil {
		t.Fatalf("SearchStyle after reopen: %v", err)
	}
	if len(matches) != 1 || matches[0].Entry.ID != entry.ID {
		t.Errorf("vector index did not survive reopen: %+v", matches)
	}
}
