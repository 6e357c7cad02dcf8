package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/synapse/internal/runner"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

var framesHeader = []string{"frame", "nodes", "particles", "links", "mean_alpha"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Preset    string             `json:"preset"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Width     float64            `json:"width"`
	Height    float64            `json:"height"`
	Frames    int                `json:"frames"`
	NodeCount int                `json:"node_count"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a run directory holding metadata.json and frames.csv.
func (s *Store) Save(meta RunMetadata, result *runner.Result) (string, error) {
	if meta.Preset == "" {
		meta.Preset = "custom"
	}
	meta.Timestamp = time.Now()
	meta.Seed = result.Seed
	meta.Frames = result.FramesRun
	meta.Metrics = result.Metrics

	runDir, runID, err := s.makeRunDir(meta.Preset, meta.Timestamp)
	if err != nil {
		return "", err
	}
	meta.ID = runID

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteSamples(csvFile, result.Samples); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) makeRunDir(preset string, ts time.Time) (string, string, error) {
	if err := s.Init(); err != nil {
		return "", "", err
	}
	base := fmt.Sprintf("%s_%d", preset, ts.Unix())
	for i := 0; ; i++ {
		runID := base
		if i > 0 {
			runID = fmt.Sprintf("%s_%d", base, i)
		}
		runDir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			return runDir, runID, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
	}
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// List returns stored runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		if runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// Latest returns the most recent run, or nil when the store is empty.
func (s *Store) Latest() (*RunMetadata, error) {
	runs, err := s.List()
	if err != nil || len(runs) == 0 {
		return nil, err
	}
	return &runs[len(runs)-1], nil
}

func (s *Store) LoadSamples(runID string) ([]runner.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []runner.Sample{}, nil
	}

	samples := make([]runner.Sample, 0, len(records)-1)
	for i, record := range records[1:] {
		sm, err := parseSample(record)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", framesFile, i+2, err)
		}
		samples = append(samples, sm)
	}
	return samples, nil
}

func parseSample(record []string) (runner.Sample, error) {
	var sm runner.Sample
	if len(record) != len(framesHeader) {
		return sm, fmt.Errorf("expected %d fields, got %d", len(framesHeader), len(record))
	}
	ints := make([]int, 4)
	for i := range ints {
		v, err := strconv.Atoi(record[i])
		if err != nil {
			return sm, err
		}
		ints[i] = v
	}
	alpha, err := strconv.ParseFloat(record[4], 64)
	if err != nil {
		return sm, err
	}
	sm.Frame, sm.Nodes, sm.Particles, sm.Links = ints[0], ints[1], ints[2], ints[3]
	sm.MeanAlpha = alpha
	return sm, nil
}
