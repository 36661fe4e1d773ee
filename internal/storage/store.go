package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/warpfield/internal/sim"
	"github.com/san-kum/warpfield/internal/starfield"
)

const (
	metadataFile = "metadata.json"
	starsFile    = "stars.csv"
)

var ErrNotFound = errors.New("storage: run not found")

var starsHeader = []string{"frame", "star", "x", "y", "z", "pz"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

// RunMetadata describes one recorded run. Stats holds every frame.
type RunMetadata struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Timestamp   time.Time              `json:"timestamp"`
	Seed        uint64                 `json:"seed"`
	Stars       int                    `json:"stars"`
	Frames      int                    `json:"frames"`
	Width       float32                `json:"width"`
	Height      float32                `json:"height"`
	Centered    bool                   `json:"centered"`
	Recycle     string                 `json:"recycle"`
	Scale       float32                `json:"scale"`
	Speed       float32                `json:"speed"`
	RefreshRate float32                `json:"refresh_rate"`
	SampleEvery int                    `json:"sample_every"`
	Elapsed     time.Duration          `json:"elapsed_ns"`
	Metrics     map[string]float64     `json:"metrics"`
	Stats       []starfield.FrameStats `json:"stats"`
}

// NewMetadata fills the run description from the field config and result.
func NewMetadata(name string, fc starfield.Config, speed float32, sampleEvery int, res *sim.Result) RunMetadata {
	return RunMetadata{
		Name:        name,
		Seed:        res.Seed,
		Stars:       fc.Stars,
		Frames:      len(res.Stats),
		Width:       fc.View.Width,
		Height:      fc.View.Height,
		Centered:    fc.View.Centered,
		Recycle:     fc.View.Recycle.String(),
		Scale:       fc.View.Scale,
		Speed:       speed,
		RefreshRate: fc.RefreshRate,
		SampleEvery: sampleEvery,
		Elapsed:     res.Elapsed,
		Metrics:     res.Metrics,
		Stats:       res.Stats,
	}
}

// Save writes meta and the sampled star states into a new run directory
// and returns the run id.
func (s *Store) Save(meta RunMetadata, snapshots []sim.Snapshot) (string, error) {
	if err := s.Init(); err != nil {
		return "", err
	}
	now := time.Now()
	runID, runDir, err := s.newRunDir(meta.Name, now)
	if err != nil {
		return "", err
	}
	meta.ID = runID
	meta.Timestamp = now

	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeStars(filepath.Join(runDir, starsFile), snapshots); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) newRunDir(name string, now time.Time) (string, string, error) {
	if name == "" {
		name = "run"
	}
	base := fmt.Sprintf("%s_%s", name, now.Format("20060102-150405"))
	for i := 0; ; i++ {
		id := base
		if i > 0 {
			id = fmt.Sprintf("%s-%d", base, i)
		}
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return id, dir, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
	}
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeStars(path string, snapshots []sim.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(starsHeader); err != nil {
		return err
	}
	for _, snap := range snapshots {
		frame := strconv.FormatUint(snap.Frame, 10)
		for i, st := range snap.Stars {
			row := []string{
				frame,
				strconv.Itoa(i),
				formatFloat(st.X),
				formatFloat(st.Y),
				formatFloat(st.Z),
				formatFloat(st.PZ),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

// List returns every readable run, oldest first. Directories without
// valid metadata are skipped.
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
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadSnapshots reads the sampled star states back, grouped by frame.
func (s *Store) LoadSnapshots(runID string) ([]sim.Snapshot, error) {
	f, err := s.openStars(runID)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(starsHeader)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("storage: %s: %w", runID, err)
	}
	if len(records) < 2 {
		return []sim.Snapshot{}, nil
	}

	snaps := make([]sim.Snapshot, 0)
	for line, record := range records[1:] {
		frame, err := strconv.ParseUint(record[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("storage: %s line %d: %w", runID, line+2, err)
		}
		var vals [4]float32
		for j := range vals {
			v, err := strconv.ParseFloat(record[2+j], 32)
			if err != nil {
				return nil, fmt.Errorf("storage: %s line %d: %w", runID, line+2, err)
			}
			vals[j] = float32(v)
		}
		if len(snaps) == 0 || snaps[len(snaps)-1].Frame != frame {
			snaps = append(snaps, sim.Snapshot{Frame: frame})
		}
		last := &snaps[len(snaps)-1]
		last.Stars = append(last.Stars, starfield.Star{X: vals[0], Y: vals[1], Z: vals[2], PZ: vals[3]})
	}
	return snaps, nil
}

// ExportCSV copies the run's star CSV to w.
func (s *Store) ExportCSV(runID string, w io.Writer) error {
	f, err := s.openStars(runID)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}

func (s *Store) openStars(runID string) (*os.File, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, starsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}
	return f, nil
}
