package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfrederiksen/playoff-picture/internal/picture"
	"github.com/pfrederiksen/playoff-picture/internal/standings"
)

// DefaultDataDir is where snapshots and output live unless configured.
const DefaultDataDir = "~/.local/share/playoff-picture"

const (
	standingsFile = "standings.json"
	pictureFile   = "playoff-picture.json"
)

// Storage handles persistence of standings and picture documents
type Storage struct {
	dataDir string
}

// ExpandHome expands a leading ~/ to the user's home directory
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], "/")), nil
}

// New creates a new Storage instance
func New(dataDir string) (*Storage, error) {
	if dataDir == "" {
		dataDir = DefaultDataDir
	}
	dataDir, err := ExpandHome(dataDir)
	if err != nil {
		return nil, err
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// Dir returns the resolved data directory
func (s *Storage) Dir() string {
	return s.dataDir
}

// StandingsPath returns the path to the standings snapshot file
func (s *Storage) StandingsPath() string {
	return filepath.Join(s.dataDir, standingsFile)
}

// PicturePath returns the default path of the output document
func (s *Storage) PicturePath() string {
	return filepath.Join(s.dataDir, pictureFile)
}

// LoadStandings loads the standings snapshot from disk. A missing file is
// standings.ErrNoSnapshot.
func (s *Storage) LoadStandings() (*standings.Snapshot, error) {
	data, err := os.ReadFile(s.StandingsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s does not exist", standings.ErrNoSnapshot, s.StandingsPath())
		}
		return nil, fmt.Errorf("reading standings: %w", err)
	}

	var snap standings.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing standings: %w", err)
	}
	if snap.Empty() {
		return nil, fmt.Errorf("%w: %s has no rows", standings.ErrNoSnapshot, s.StandingsPath())
	}
	return &snap, nil
}

// SaveStandings saves the standings snapshot to disk
func (s *Storage) SaveStandings(snap *standings.Snapshot) error {
	return writeJSON(s.StandingsPath(), snap)
}

// SavePicture writes the output document to path, or to PicturePath when
// path is empty. It returns the path written.
func (s *Storage) SavePicture(p *picture.Picture, path string) (string, error) {
	if path == "" {
		path = s.PicturePath()
	}
	path, err := ExpandHome(path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	p.Normalize()
	if err := writeJSON(path, p); err != nil {
		return "", err
	}
	return path, nil
}

// LoadPicture reads an output document from path, or from PicturePath when
// path is empty.
func (s *Storage) LoadPicture(path string) (*picture.Picture, error) {
	if path == "" {
		path = s.PicturePath()
	}
	return ReadPicture(path)
}

// ReadPicture reads an output document from any path
func ReadPicture(path string) (*picture.Picture, error) {
	path, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading picture: %w", err)
	}

	p := picture.New()
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parsing picture: %w", err)
	}
	p.Normalize()
	return p, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}

	return nil
}
