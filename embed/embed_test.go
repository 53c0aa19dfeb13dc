package embed_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/draftwise/draftwise/embed"
	"github.com/draftwise/draftwise/embed/mock"
)

// countingEmbedder wraps the mock embedder and counts Embed calls.
type countingEmbedder struct {
	inner *mock.Embedder
	calls atomic.Int64
}

func (c *countingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	c.calls.Add(1)
	return c.inner.Embed(ctx, text)
}

func (c *countingEmbedder) Dimensions() int {
	return c.inner.Dimensions()
}

func TestMockEmbedderDeterministic(t *testing.T) {
	ctx := context.Background()
	m := mock.New(0)

	if m.Dimensions() != 384 {
		t.Fatalf("default dimensions = %d, want 384", m.Dimensions())
	}

	a, err := m.Embed(ctx, "a rough draft about woodworking")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	b, err := m.Embed(ctx, "a rough draft about woodworking")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	if len(a) != 384 {
		t.Fatalf("embedding length = %d, want 384", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("embeddings differ at index %d", i)
		}
	}

	other, err := m.Embed(ctx, "a completely different text")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	same := true
	for i := range a {
		if a[i] != other[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different texts produced identical embeddings")
	}
}

func TestMockEmbedderUnitVector(t *testing.T) {
	m := mock.New(64)
	emb, err := m.Embed(context.Background(), "normalize me")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	var norm float64
	for _, v := range emb {
		norm += float64(v) * float64(v)
	}
	if norm < 0.99 || norm > 1.01 {
		t.Errorf("norm^2 = %f, want ~1.0", norm)
	}
}

func TestCachedEmbedder(t *testing.T) {
	ctx := context.Background()
	counting := &countingEmbedder{inner: mock.New(32)}

	cached, err := embed.NewCached(counting, 1<<20)
	if err != nil {
		t.Fatalf("NewCached: %v", err)
	}
	defer cached.Close()

	if cached.Dimensions() != 32 {
		t.Fatalf("Dimensions = %d, want 32", cached.Dimensions())
	}

	first, err := cached.Embed(ctx, "hello creators")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	cached.Wait()

	second, err := cached.Embed(ctx, "hello creators")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	if counting.calls.Load() != 1 {
		t.Errorf("inner embedder called %d times, want 1", counting.calls.Load())
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("cached embedding differs at index %d", i)
		}
	}
}
