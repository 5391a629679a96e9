// Package storage keeps a directory of grown trees: one folder per tree with
// its metadata and the branch table. A record carries the seed and level
// settings, so the same scene config regrows the same tree.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/fibtree/internal/fibtree"
)

var ErrNotFound = errors.New("storage: tree not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Record describes one saved tree.
type Record struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Seed       int64     `json:"seed"`
	Levels     int       `json:"levels"`
	Branches   int       `json:"branches"`
	TrunkWidth int       `json:"trunk_width"`
	Output     string    `json:"output,omitempty"`

	// FixedLevels is set when the level count was given rather than drawn
	// from [MinLevels, MaxLevels] with the seeded source.
	FixedLevels bool `json:"fixed_levels"`
	MinLevels   int  `json:"min_levels"`
	MaxLevels   int  `json:"max_levels"`
}

// NewRecord fills the tree-derived fields of a record for a tree grown
// with an explicit level count.
func NewRecord(t *fibtree.Tree, seed int64, output string) Record {
	return Record{
		Seed:        seed,
		Levels:      t.Levels(),
		Branches:    t.Len(),
		TrunkWidth:  t.Trunk().Width(),
		Output:      output,
		FixedLevels: true,
		MinLevels:   t.Levels(),
		MaxLevels:   t.Levels(),
	}
}

// DrawnFrom marks the level count as drawn from [lo, hi].
func (r Record) DrawnFrom(lo, hi int) Record {
	r.FixedLevels = false
	r.MinLevels, r.MaxLevels = lo, hi
	return r
}

// ReproduceFlags returns the flags that regrow the recorded tree with the
// same scene config. A drawn level count is the first value taken from the
// seeded source, so the range is replayed instead of the result.
func (r Record) ReproduceFlags() []string {
	flags := []string{"--seed", strconv.FormatInt(r.Seed, 10)}
	if r.FixedLevels {
		return append(flags, "--levels", strconv.Itoa(r.Levels))
	}
	return append(flags,
		"--min-levels", strconv.Itoa(r.MinLevels),
		"--max-levels", strconv.Itoa(r.MaxLevels))
}

var csvHeader = []string{"index", "level", "parent", "left", "right", "width", "angle", "r", "g", "b"}

// Save writes metadata.json and branches.csv under a fresh id.
func (s *Store) Save(rec Record, rows []fibtree.Row) (string, error) {
	now := time.Now()
	rec.ID = fmt.Sprintf("tree%d_%d", rec.Levels, now.UnixNano())
	rec.Timestamp = now
	dir := filepath.Join(s.baseDir, rec.ID)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(dir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(dir, "branches.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteRows(csvFile, rows); err != nil {
		return "", err
	}
	return rec.ID, nil
}

// WriteRows writes the branch table as csv with a header line.
func WriteRows(w io.Writer, rows []fibtree.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			strconv.Itoa(r.Index),
			strconv.Itoa(r.Level),
			strconv.Itoa(r.Parent),
			strconv.Itoa(r.Left),
			strconv.Itoa(r.Right),
			strconv.Itoa(r.Width),
			strconv.FormatFloat(r.Angle, 'f', -1, 64),
			strconv.Itoa(r.Color.R),
			strconv.Itoa(r.Color.G),
			strconv.Itoa(r.Color.B),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// List returns every readable record. Folders without metadata are skipped.
func (s *Store) List() ([]Record, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Record{}, nil
		}
		return nil, err
	}

	recs := make([]Record, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		rec, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		recs = append(recs, *rec)
	}
	return recs, nil
}

func (s *Store) Load(id string) (*Record, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("storage: parse %s: %w", id, err)
	}
	return &rec, nil
}

// LoadRows reads the branch table saved with a tree.
func (s *Store) LoadRows(id string) ([]fibtree.Row, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, "branches.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []fibtree.Row{}, nil
	}

	rows := make([]fibtree.Row, 0, len(records)-1)
	for n, rec := range records[1:] {
		if len(rec) != len(csvHeader) {
			return nil, fmt.Errorf("storage: %s line %d: expected %d fields, got %d", id, n+2, len(csvHeader), len(rec))
		}
		ints := make([]int, len(rec))
		for i, field := range rec {
			if i == 6 {
				continue
			}
			if ints[i], err = strconv.Atoi(field); err != nil {
				return nil, fmt.Errorf("storage: %s line %d: %w", id, n+2, err)
			}
		}
		angle, err := strconv.ParseFloat(rec[6], 64)
		if err != nil {
			return nil, fmt.Errorf("storage: %s line %d: %w", id, n+2, err)
		}
		rows = append(rows, fibtree.Row{
			Index:  ints[0],
			Level:  ints[1],
			Parent: ints[2],
			Left:   ints[3],
			Right:  ints[4],
			Width:  ints[5],
			Angle:  angle,
			Color:  fibtree.Color{R: ints[7], G: ints[8], B: ints[9]},
		})
	}
	return rows, nil
}

// ExportJSON writes a record and its rows as one indented document.
func ExportJSON(w io.Writer, rec Record, rows []fibtree.Row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Record
		Rows []fibtree.Row `json:"rows"`
	}{rec, rows})
}
