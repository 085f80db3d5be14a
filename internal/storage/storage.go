package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gocarina/gocsv"
	"github.com/pfrederiksen/fiba-stats/internal/game"
)

// ErrInvalidArgument is returned before any I/O when a required argument
// (path, records, fragment) is missing.
var ErrInvalidArgument = errors.New("invalid argument")

// Storage handles the per-game output directory
type Storage struct {
	dataDir string
}

// New creates a new Storage instance
func New(dataDir string) (*Storage, error) {
	if strings.TrimSpace(dataDir) == "" {
		return nil, errors.Wrap(ErrInvalidArgument, "data directory is required")
	}

	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(err, "getting home directory")
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, errors.Wrap(err, "creating data directory")
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// Dir returns the data directory.
func (s *Storage) Dir() string {
	return s.dataDir
}

// Path returns the path of a file inside the data directory.
func (s *Storage) Path(name string) string {
	return filepath.Join(s.dataDir, name)
}

// FileName joins a date prefix and name parts with underscores. Team names
// keep their case here; whitespace becomes underscores.
//
//	FileName("26_August_2023", "South Sudan", "boxscore.html")
//	-> "26_August_2023_South_Sudan_boxscore.html"
func FileName(prefix string, parts ...string) string {
	out := make([]string, 0, len(parts)+1)
	for _, p := range append([]string{prefix}, parts...) {
		p = strings.Join(strings.Fields(p), "_")
		p = strings.ReplaceAll(p, string(filepath.Separator), "-")
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "_")
}

// AppendCSV appends records to the CSV file at path, creating it if needed.
// When header is true the column names (the csv tags of T, in field order)
// are written first.
func AppendCSV[T any](path string, records []T, header bool) error {
	if strings.TrimSpace(path) == "" {
		return errors.Wrap(ErrInvalidArgument, "filename must be provided")
	}
	if len(records) == 0 {
		return errors.Wrap(ErrInvalidArgument, "records to save must be provided")
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	if header {
		err = gocsv.Marshal(records, f)
	} else {
		err = gocsv.MarshalWithoutHeaders(records, f)
	}
	if err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}

	return f.Close()
}

// AppendRecord appends a single record; see AppendCSV.
func AppendRecord[T any](path string, record T, header bool) error {
	return AppendCSV(path, []T{record}, header)
}

// ReadCSV reads every row of a CSV file with a header into []T.
func ReadCSV[T any](path string) ([]T, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.Wrap(ErrInvalidArgument, "filename must be provided")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	var rows []T
	if err := gocsv.Unmarshal(f, &rows); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return rows, nil
}

// ReadGameLinks reads the input list of games. Blank rows are dropped and
// file order is preserved.
func ReadGameLinks(path string) ([]string, error) {
	rows, err := ReadCSV[game.GameLink](path)
	if err != nil {
		return nil, err
	}

	links := make([]string, 0, len(rows))
	for _, row := range rows {
		if u := strings.TrimSpace(row.URL); u != "" {
			links = append(links, u)
		}
	}
	return links, nil
}

// HasContent reports whether path exists and is non-empty. The driver uses it
// to avoid repeating the summary header when appending to an earlier run's
// file.
func HasContent(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Size() > 0
}

// HTMLPath returns the path WriteHTML writes to for path: the file name,
// not the directory, is lower-cased.
func HTMLPath(path string) string {
	return filepath.Join(filepath.Dir(path), strings.ToLower(filepath.Base(path)))
}

// WriteHTML writes fragment verbatim to HTMLPath(path), replacing any
// existing file.
func WriteHTML(path, fragment string) error {
	if strings.TrimSpace(path) == "" {
		return errors.Wrap(ErrInvalidArgument, "filename must be specified")
	}
	if fragment == "" {
		return errors.Wrap(ErrInvalidArgument, "data to save must be specified")
	}

	path = HTMLPath(path)
	if err := os.WriteFile(path, []byte(fragment), 0644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}

// SaveImage copies an image body to path, creating parent directories.
func SaveImage(path string, r io.Reader) error {
	if strings.TrimSpace(path) == "" {
		return errors.Wrap(ErrInvalidArgument, "image filename must be specified")
	}
	if r == nil {
		return errors.Wrap(ErrInvalidArgument, "image data must be provided")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "creating image directory")
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return f.Close()
}
