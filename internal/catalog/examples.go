package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/apperr"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/card"
)

// Example is a ready-made card template users can start from.
type Example struct {
	Slug  string     `json:"slug"`
	Name  string     `json:"name"`
	Input card.Input `json:"input"`
}

// exampleFile is the YAML shape of one file in the examples directory.
type exampleFile struct {
	Name          string   `yaml:"name"`
	Title         string   `yaml:"title"`
	Terms         []string `yaml:"terms"`
	FreeSpaceIcon string   `yaml:"freeSpaceIcon"`
}

// Store holds built-in examples plus any loaded from an examples
// directory. Directory entries shadow built-ins with the same slug and can
// be removed again by the watcher; built-ins always remain.
type Store struct {
	mu     sync.RWMutex
	loaded map[string]Example // from the examples directory
}

// NewStore creates a store holding the built-in examples.
func NewStore() *Store {
	return &Store{loaded: make(map[string]Example)}
}

// List returns built-ins and directory examples, sorted by slug.
func (s *Store) List() []Example {
	s.mu.RLock()
	defer s.mu.RUnlock()
	merged := make(map[string]Example, len(builtins)+len(s.loaded))
	for slug, ex := range builtins {
		merged[slug] = ex
	}
	for slug, ex := range s.loaded {
		merged[slug] = ex
	}
	out := make([]Example, 0, len(merged))
	for _, ex := range merged {
		out = append(out, ex)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

// Get returns the example for slug.
func (s *Store) Get(slug string) (Example, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if ex, ok := s.loaded[slug]; ok {
		return ex, nil
	}
	if ex, ok := builtins[slug]; ok {
		return ex, nil
	}
	return Example{}, fmt.Errorf("example %q: %w", slug, apperr.ErrNotFound)
}

// LoadDir loads every *.yaml / *.yml file under dir. Files that fail to
// parse are skipped; the caller decides whether to log them.
func (s *Store) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("catalog: read examples dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !isExampleFile(entry.Name()) {
			continue
		}
		_ = s.LoadFile(filepath.Join(dir, entry.Name()))
	}
	return nil
}

// LoadFile loads one example file, keyed by its filename stem.
func (s *Store) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("catalog: read %s: %w", path, err)
	}
	var ef exampleFile
	if err := yaml.Unmarshal(data, &ef); err != nil {
		return fmt.Errorf("catalog: parse %s: %w", path, err)
	}
	slug := slugFor(path)
	name := ef.Name
	if name == "" {
		name = ef.Title
	}
	ex := Example{
		Slug: slug,
		Name: name,
		Input: card.Input{
			Title:         ef.Title,
			Terms:         ef.Terms,
			FreeSpaceIcon: ef.FreeSpaceIcon,
		},
	}
	s.mu.Lock()
	s.loaded[slug] = ex
	s.mu.Unlock()
	return nil
}

// Remove drops a directory-loaded example. Built-ins are unaffected.
func (s *Store) Remove(path string) {
	s.mu.Lock()
	delete(s.loaded, slugFor(path))
	s.mu.Unlock()
}

func slugFor(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(strings.TrimSuffix(base, filepath.Ext(base)), ".")
}

func isExampleFile(name string) bool {
	ext := filepath.Ext(name)
	return ext == ".yaml" || ext == ".yml"
}
