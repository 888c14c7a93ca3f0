package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/sortviz/internal/driver"
)

const (
	metadataFile = "metadata.json"
	stepsFile    = "steps.csv"
)

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
	Algorithm string             `json:"algorithm"`
	Timestamp time.Time          `json:"timestamp"`
	Speed     int                `json:"speed"`
	Initial   []int              `json:"initial"`
	Final     []int              `json:"final"`
	Completed bool               `json:"completed"`
	Steps     int                `json:"steps"`
	Elapsed   time.Duration      `json:"elapsed_ns"`
	Metrics   map[string]float64 `json:"metrics"`
}

// FromResult builds the metadata of a finished run. The ID is assigned by Save.
func FromResult(res *driver.Result, speed int) RunMetadata {
	return RunMetadata{
		Algorithm: string(res.Algorithm),
		Timestamp: time.Now(),
		Speed:     speed,
		Initial:   res.Initial,
		Final:     res.Final,
		Completed: res.Completed,
		Steps:     res.Steps,
		Elapsed:   res.Elapsed,
		Metrics:   res.Metrics,
	}
}

func newRunID(algorithm string, t time.Time) string {
	return fmt.Sprintf("%s_%d_%s", algorithm, t.Unix(), uuid.NewString()[:8])
}

// Save writes the metadata and step trace of a run and returns its ID.
func (s *Store) Save(meta RunMetadata, steps []Step) (string, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.ID = newRunID(meta.Algorithm, meta.Timestamp)
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, stepsFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := writeSteps(csvFile, steps); err != nil {
		return "", err
	}
	return meta.ID, nil
}

var stepHeader = []string{"seq", "kind", "i", "j", "state", "inversions", "values", "status"}

func writeSteps(w io.Writer, steps []Step) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(stepHeader); err != nil {
		return err
	}
	for _, st := range steps {
		row := []string{
			strconv.FormatUint(st.Seq, 10),
			st.Kind,
			strconv.Itoa(st.I),
			strconv.Itoa(st.J),
			st.State,
			strconv.Itoa(st.Inversions),
			joinInts(st.Values),
			st.Status,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// List returns every readable run, oldest first.
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

func (s *Store) LoadSteps(runID string) ([]Step, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, stepsFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Step{}, nil
	}

	steps := make([]Step, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < len(stepHeader) {
			continue
		}
		seq, err := strconv.ParseUint(record[0], 10, 64)
		if err != nil {
			continue
		}
		i, _ := strconv.Atoi(record[2])
		j, _ := strconv.Atoi(record[3])
		inv, _ := strconv.Atoi(record[5])
		steps = append(steps, Step{
			Seq:        seq,
			Kind:       record[1],
			I:          i,
			J:          j,
			State:      record[4],
			Inversions: inv,
			Values:     splitInts(record[6]),
			Status:     record[7],
		})
	}
	return steps, nil
}

// CopySteps streams the raw step trace of a run to w.
func (s *Store) CopySteps(w io.Writer, runID string) error {
	file, err := os.Open(filepath.Join(s.baseDir, runID, stepsFile))
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = io.Copy(w, file)
	return err
}

type ExportData struct {
	RunMetadata
	Trace []Step `json:"trace"`
}

func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	steps, err := s.LoadSteps(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{RunMetadata: *meta, Trace: steps})
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}

func splitInts(s string) []int {
	fields := strings.Fields(s)
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}
