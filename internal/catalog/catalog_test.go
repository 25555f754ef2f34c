package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/apperr"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/card"
)

func TestIcons_FixedTable(t *testing.T) {
	all := Icons()
	if len(all) == 0 {
		t.Fatal("no icons")
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Key >= all[i].Key {
			t.Fatalf("icons not sorted: %q >= %q", all[i-1].Key, all[i].Key)
		}
	}
	star, ok := LookupIcon(card.DefaultIcon)
	if !ok {
		t.Fatalf("default icon %q missing from table", card.DefaultIcon)
	}
	if star.Glyph == "" || star.Label == "" {
		t.Error("default icon missing label or glyph")
	}
	if _, ok := LookupIcon("no-such-icon"); ok {
		t.Error("unknown icon key resolved")
	}
}

func TestBuiltinExamples_BuildValidCards(t *testing.T) {
	s := NewStore()
	examples := s.List()
	if len(examples) < 2 {
		t.Fatalf("examples = %d, want at least 2 built-ins", len(examples))
	}
	for _, ex := range examples {
		c, err := card.Build(ex.Input)
		if err != nil {
			t.Errorf("example %q does not build: %v", ex.Slug, err)
			continue
		}
		if len(c.Terms) < 24 {
			t.Errorf("example %q has %d terms", ex.Slug, len(c.Terms))
		}
	}
}

func TestStore_LoadDirAndGet(t *testing.T) {
	dir := t.TempDir()
	writeExample(t, dir, "team-offsite.yaml")

	s := NewStore()
	if err := s.LoadDir(dir); err != nil {
		t.Fatalf("LoadDir: %v", err)
	}

	ex, err := s.Get("team-offsite")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ex.Name != "Team Offsite Bingo" {
		t.Errorf("name = %q", ex.Name)
	}
	if _, err := card.Build(ex.Input); err != nil {
		t.Errorf("loaded example does not build: %v", err)
	}

	if _, err := s.Get("missing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("missing example: error = %v, want ErrNotFound", err)
	}
}

func TestStore_RemoveKeepsBuiltins(t *testing.T) {
	s := NewStore()
	s.Remove(filepath.Join("examples", "buzzword.yaml"))
	if _, err := s.Get("buzzword"); err != nil {
		t.Errorf("built-in removed: %v", err)
	}
}

func TestWatch_LoadsAndRemoves(t *testing.T) {
	dir := t.TempDir()
	s := NewStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	events := make(chan string, 8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = Watch(ctx, s, dir, logger, func(kind, slug string) {
			events <- kind + ":" + slug
		})
	}()

	path := writeExample(t, dir, "retro.yaml")
	waitFor(t, events, "loaded:retro")
	if _, err := s.Get("retro"); err != nil {
		t.Fatalf("example not loaded: %v", err)
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	waitFor(t, events, "removed:retro")
	if _, err := s.Get("retro"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("example still present after remove: %v", err)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func writeExample(t *testing.T, dir, name string) string {
	t.Helper()
	content := "name: Team Offsite Bingo\ntitle: Team Offsite Bingo\nfreeSpaceIcon: trophy\nterms:\n"
	if name == "retro.yaml" {
		content = "name: Retro Bingo\ntitle: Retro Bingo\nterms:\n"
	}
	for i := 0; i < 24; i++ {
		content += "  - term number " + string(rune('a'+i)) + "\n"
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func waitFor(t *testing.T, events chan string, want string) {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case got := <-events:
			if got == want {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %q", want)
		}
	}
}
