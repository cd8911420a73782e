package puzzle

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// Store persists generated puzzles as JSON files through a billy filesystem:
// osfs in production, memfs in tests. It is populated exclusively by the
// generator and read-only to everything else.
type Store struct {
	fs  billy.Filesystem
	dir string
}

// NewStore creates a store rooted at dir on the given filesystem.
func NewStore(fs billy.Filesystem, dir string) *Store {
	return &Store{fs: fs, dir: dir}
}

func (s *Store) path(id string) string {
	return s.dir + "/" + id + ".json"
}

// Save writes a puzzle artifact. Overwriting an existing id is an error;
// puzzles are immutable once generated.
func (s *Store) Save(p *Puzzle) error {
	if p.ID == "" {
		return fmt.Errorf("puzzle has no id")
	}
	if _, err := s.fs.Stat(s.path(p.ID)); err == nil {
		return fmt.Errorf("puzzle %s already exists", p.ID)
	}
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create puzzle dir: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode puzzle %s: %w", p.ID, err)
	}
	if err := util.WriteFile(s.fs, s.path(p.ID), data, 0o644); err != nil {
		return fmt.Errorf("failed to write puzzle %s: %w", p.ID, err)
	}
	return nil
}

// Load reads a puzzle by id.
func (s *Store) Load(id string) (*Puzzle, error) {
	data, err := util.ReadFile(s.fs, s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("puzzle %s not found", id)
		}
		return nil, fmt.Errorf("failed to read puzzle %s: %w", id, err)
	}
	var p Puzzle
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode puzzle %s: %w", id, err)
	}
	return &p, nil
}

// List returns the stored puzzle ids, sorted.
func (s *Store) List() ([]string, error) {
	infos, err := s.fs.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var ids []string
	for _, info := range infos {
		name := info.Name()
		if strings.HasSuffix(name, ".json") {
			ids = append(ids, strings.TrimSuffix(name, ".json"))
		}
	}
	sort.Strings(ids)
	return ids, nil
}
