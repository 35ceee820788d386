package recursivesplit

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/botirk38/recursivesplit/backends/inmemory"
	"github.com/botirk38/recursivesplit/chunker"
	"github.com/botirk38/recursivesplit/options"
	"github.com/botirk38/recursivesplit/tokenizer"
	"github.com/botirk38/recursivesplit/types"
)

// closeTracker records whether the splitter closed its count backend.
type closeTracker struct {
	*inmemory.LRUBackend
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		s, err := New()
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		defer func() { _ = s.Close() }()

		cfg := s.Config()
		if cfg.ChunkSize != 512 || cfg.ChunkOverlap != 0 || cfg.Trim {
			t.Errorf("unexpected default config: %+v", cfg)
		}
		if last := cfg.Separators[len(cfg.Separators)-1]; last != "" {
			t.Errorf("expected trailing empty separator, got %q", last)
		}

		text := "Hello world. This is a test."
		if diff := cmp.Diff([]string{text}, s.SplitText(text)); diff != "" {
			t.Errorf("SplitText() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("errors", func(t *testing.T) {
		tests := []struct {
			name string
			opts []options.Option
			want error
		}{
			{
				name: "unknown kind",
				opts: []options.Option{options.WithTokenizer("bogus", "")},
				want: tokenizer.ErrUnknownTokenizerKind,
			},
			{
				name: "unknown encoding",
				opts: []options.Option{options.WithTokenizer(types.LengthTikToken, "nope_base")},
				want: tokenizer.ErrUnknownTokenizerSubKind,
			},
			{
				name: "overlap too large",
				opts: []options.Option{options.WithChunkSize(10), options.WithChunkOverlap(10)},
				want: chunker.ErrOverlapTooLarge,
			},
			{
				name: "zero chunk size",
				opts: []options.Option{options.WithChunkSize(0)},
				want: chunker.ErrInvalidChunkSize,
			},
			{
				name: "negative overlap",
				opts: []options.Option{options.WithChunkOverlap(-1)},
				want: chunker.ErrInvalidOverlap,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				s, err := New(tt.opts...)
				if !errors.Is(err, tt.want) {
					t.Errorf("New() error = %v, want %v", err, tt.want)
				}
				if s != nil {
					t.Error("expected nil splitter on error")
				}
			})
		}
	})

	t.Run("logs construction", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		_, err := New(options.WithChunkSize(64), options.WithLogger(logger))
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if !strings.Contains(buf.String(), "splitter created") || !strings.Contains(buf.String(), "chunk_size=64") {
			t.Errorf("unexpected log output: %q", buf.String())
		}
	})
}

func TestNewSplitter(t *testing.T) {
	if _, err := NewSplitter(chunker.DefaultChunkConfig(), nil); err == nil {
		t.Error("expected error for nil length function")
	}

	s, err := NewSplitter(chunker.ChunkConfig{ChunkSize: 10}, tokenizer.Bytes)
	if err != nil {
		t.Fatalf("NewSplitter() error = %v", err)
	}

	got := s.SplitText("Hello world. This is a test.")
	want := []string{"Hello ", "world. ", "This is a ", "test."}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SplitText() mismatch (-want +got):\n%s", diff)
	}

	if got := s.SplitText(""); len(got) != 0 {
		t.Errorf("SplitText(\"\") = %q, want no chunks", got)
	}
}

func TestSplitter_Tiktoken(t *testing.T) {
	s, err := New(
		options.WithTokenizer(types.LengthTikToken, "cl100k_base"),
		options.WithChunkSize(8),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if got := s.CountTokens("Hello, world!"); got != 4 {
		t.Errorf("CountTokens() = %d, want 4", got)
	}

	text := "The quick brown fox jumps over the lazy dog. " +
		"Pack my box with five dozen liquor jugs.\n\n" +
		"How vexingly quick daft zebras jump!"

	chunks := s.ChunkText(text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	var sb strings.Builder
	for i, c := range chunks {
		if c.Index != i {
			t.Errorf("chunk %d has index %d", i, c.Index)
		}
		if c.Tokens != s.CountTokens(c.Text) {
			t.Errorf("chunk %d tokens = %d, want %d", i, c.Tokens, s.CountTokens(c.Text))
		}
		sb.WriteString(c.Text)
	}
	if sb.String() != text {
		t.Errorf("chunks do not reconstruct the input: %q", sb.String())
	}
}

func TestSplitter_Trim(t *testing.T) {
	s, err := New(options.WithChunkSize(10), options.WithTrim(true))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got := s.SplitText("Hello world. This is a test.")
	want := []string{"Hello", "world.", "This is a", "test."}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SplitText() mismatch (-want +got):\n%s", diff)
	}

	if got := s.SplitText(" \n\n \t "); len(got) != 0 {
		t.Errorf("expected no chunks for whitespace, got %q", got)
	}
}

func TestSplitter_CountCache(t *testing.T) {
	lru, err := inmemory.NewLRUBackend(types.BackendConfig{Capacity: 128})
	if err != nil {
		t.Fatalf("NewLRUBackend() error = %v", err)
	}
	backend := &closeTracker{LRUBackend: lru}

	calls := 0
	s, err := New(
		options.WithChunkSize(10),
		options.WithCustomCountCache(backend),
		options.WithCountCacheNamespace("counting-bytes"),
		options.WithLengthFunction(func(text string) int {
			calls++
			return len(text)
		}),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	text := "Hello world. This is a test."
	first := s.SplitText(text)
	callsAfterFirst := calls

	second := s.SplitText(text)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("cached split differs (-first +second):\n%s", diff)
	}
	if calls != callsAfterFirst {
		t.Errorf("expected no new length calls on repeat, got %d more", calls-callsAfterFirst)
	}
	if n, _ := backend.Len(context.Background()); n == 0 {
		t.Error("expected counts in the backend")
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !backend.closed {
		t.Error("expected Close to close the count backend")
	}
}

func TestNew_ClosesCountCacheOnFailure(t *testing.T) {
	tests := []struct {
		name string
		opts []options.Option
	}{
		{"unknown kind", []options.Option{options.WithTokenizer("bogus", "")}},
		{"invalid chunk config", []options.Option{options.WithChunkSize(0)}},
		{"missing namespace", []options.Option{options.WithLengthFunction(tokenizer.Bytes)}},
		{"later option fails", []options.Option{options.WithLogger(nil)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lru, err := inmemory.NewLRUBackend(types.BackendConfig{Capacity: 8})
			if err != nil {
				t.Fatalf("NewLRUBackend() error = %v", err)
			}
			backend := &closeTracker{LRUBackend: lru}

			opts := append([]options.Option{options.WithCustomCountCache(backend)}, tt.opts...)
			s, err := New(opts...)
			if err == nil {
				t.Fatal("expected construction error")
			}
			if s != nil {
				t.Error("expected nil splitter on error")
			}
			if !backend.closed {
				t.Error("expected count backend to be closed after failed construction")
			}
		})
	}
}

func TestSplitter_SharedCountCache(t *testing.T) {
	shared, err := inmemory.NewLRUBackend(types.BackendConfig{Capacity: 64})
	if err != nil {
		t.Fatalf("NewLRUBackend() error = %v", err)
	}

	a, err := New(
		options.WithCustomCountCache(shared),
		options.WithCountCacheNamespace("bytes"),
		options.WithLengthFunction(func(s string) int { return len(s) }))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	b, err := New(
		options.WithCustomCountCache(shared),
		options.WithCountCacheNamespace("kilobytes"),
		options.WithLengthFunction(func(s string) int { return 1000 * len(s) }))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if got := a.CountTokens("hello"); got != 5 {
		t.Errorf("a.CountTokens() = %d, want 5", got)
	}
	if got := b.CountTokens("hello"); got != 5000 {
		t.Errorf("b.CountTokens() = %d, want 5000", got)
	}
	if got := a.CountTokens("hello"); got != 5 {
		t.Errorf("a.CountTokens() after b = %d, want 5", got)
	}
}

func TestSplitter_Concurrent(t *testing.T) {
	s, err := New(options.WithChunkSize(16), options.WithChunkOverlap(4))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	text := strings.Repeat("alpha beta gamma delta. ", 40)
	want := s.SplitText(text)

	errCh := make(chan string, 8)
	for range 8 {
		go func() {
			got := s.SplitText(text)
			errCh <- cmp.Diff(want, got)
		}()
	}
	for range 8 {
		if diff := <-errCh; diff != "" {
			t.Errorf("concurrent split mismatch (-want +got):\n%s", diff)
		}
	}
}
