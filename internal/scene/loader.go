package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bethropolis/stage/internal/logger"
	"github.com/bethropolis/stage/internal/types"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

var ErrInvalidScene = errors.New("invalid scene file")

type sceneFile struct {
	Name     string       `yaml:"name"`
	Width    int          `yaml:"width"`
	Height   int          `yaml:"height"`
	Entities []entityFile `yaml:"entities"`
}

type entityFile struct {
	ID    string `yaml:"id"`
	Kind  string `yaml:"kind"`
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
	W     int    `yaml:"w,omitempty"`
	H     int    `yaml:"h,omitempty"`
	Layer int    `yaml:"layer,omitempty"`
	Text  string `yaml:"text,omitempty"`
}

// Load reads a scene from a YAML file. The file name is used when the
// document has no name.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	logger.InfoTagf("scene", "Loaded scene %q with %d entities from %s", s.Name, s.Len(), path)
	return s, nil
}

// Parse builds a scene from YAML. Entities without an id get a fresh UUID.
func Parse(content []byte) (*Scene, error) {
	var doc sceneFile
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}

	if doc.Width <= 0 {
		doc.Width = DefaultWidth
	}
	if doc.Height <= 0 {
		doc.Height = DefaultHeight
	}

	s := New(doc.Name, doc.Width, doc.Height)
	for i, ef := range doc.Entities {
		id := strings.TrimSpace(ef.ID)
		if id == "" {
			id = uuid.New().String()
		}
		e := &Entity{
			ID:    id,
			Kind:  Kind(strings.ToLower(strings.TrimSpace(ef.Kind))),
			Pos:   types.Position{X: ef.X, Y: ef.Y},
			W:     ef.W,
			H:     ef.H,
			Layer: ef.Layer,
			Text:  ef.Text,
		}
		if err := s.Add(e); err != nil {
			return nil, fmt.Errorf("entity %d: %w", i, err)
		}
	}
	return s, nil
}

// Marshal encodes the scene as YAML, entities in the order they were added.
func Marshal(s *Scene) ([]byte, error) {
	s.mu.RLock()
	ents := make([]*Entity, 0, len(s.entities))
	for _, e := range s.entities {
		ents = append(ents, e)
	}
	doc := sceneFile{Name: s.Name, Width: s.Width, Height: s.Height}
	s.mu.RUnlock()

	sort.Slice(ents, func(i, j int) bool { return ents[i].seq < ents[j].seq })
	doc.Entities = make([]entityFile, len(ents))
	for i, e := range ents {
		ef := entityFile{ID: e.ID, Kind: string(e.Kind), X: e.Pos.X, Y: e.Pos.Y, Layer: e.Layer, Text: e.Text}
		if e.W != 1 {
			ef.W = e.W
		}
		if e.H != 1 {
			ef.H = e.H
		}
		doc.Entities[i] = ef
	}
	return yaml.Marshal(&doc)
}

// Save writes the scene to path. The file is replaced atomically so a
// failed write leaves the previous version intact.
func Save(s *Scene, path string) error {
	data, err := Marshal(s)
	if err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("save scene: %w", err)
	}
	defer os.Remove(tmp.Name()) // No-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("save scene: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save scene: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("save scene: %w", err)
	}
	logger.InfoTagf("scene", "Saved scene %q (%d entities) to %s", s.Name, s.Len(), path)
	return nil
}
