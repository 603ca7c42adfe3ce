package history

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Mavwarf/exticons/internal/icon"
	"github.com/Mavwarf/exticons/internal/paths"
)

// FileStore implements Store using a flat log file, one line per icon:
//
//	2026-10-19T09:30:00Z  variant=angular  size=16  bytes=612  sha256=…  path=chrome-extension/icons/icon16.png
//
// Failed sizes carry error="..." (Go-quoted) instead of bytes and sha256.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore that reads and writes the given log file.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Path() string { return f.path }

func (f *FileStore) Close() error { return nil }

// openLog opens (or creates) the log file for appending, creating the
// parent directory if needed.
func (f *FileStore) openLog() (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(f.path), paths.DirPerm); err != nil {
		return nil, err
	}
	return os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, paths.FilePerm)
}

func (f *FileStore) Record(run icon.Run) error {
	file, err := f.openLog()
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, e := range entriesOf(run) {
		fmt.Fprintln(w, formatLine(e))
	}
	return w.Flush()
}

func formatLine(e Entry) string {
	line := fmt.Sprintf("%s  variant=%s  size=%d", e.Time.Format(time.RFC3339), e.Variant, e.Size)
	if e.OK() {
		line += fmt.Sprintf("  bytes=%d  sha256=%s", e.Bytes, e.SHA256)
	} else {
		line += "  error=" + strconv.Quote(e.Error)
	}
	// path goes last: it is the only free-form value besides error.
	return line + "  path=" + e.Path
}

func parseLine(line string) (Entry, bool) {
	fields := strings.Split(line, "  ")
	if len(fields) < 3 {
		return Entry{}, false
	}
	ts, err := time.Parse(time.RFC3339, fields[0])
	if err != nil {
		return Entry{}, false
	}
	e := Entry{Time: ts}
	for i := 1; i < len(fields); i++ {
		key, val, ok := strings.Cut(fields[i], "=")
		if !ok {
			continue
		}
		switch key {
		case "variant":
			e.Variant = val
		case "size":
			e.Size, _ = strconv.Atoi(val)
		case "bytes":
			e.Bytes, _ = strconv.Atoi(val)
		case "sha256":
			e.SHA256 = val
		case "error":
			// A message may itself contain the field separator.
			for j := i; j < len(fields); j++ {
				if s, err := strconv.Unquote(val); err == nil {
					e.Error, i = s, j
					break
				}
				if j+1 < len(fields) {
					val += "  " + fields[j+1]
				}
			}
			if e.Error == "" {
				e.Error = val
			}
		case "path":
			e.Path = strings.Join(append([]string{val}, fields[i+1:]...), "  ")
			i = len(fields)
		}
	}
	e.OutputDir = filepath.Dir(e.Path)
	return e, true
}

func (f *FileStore) Entries(limit int) ([]Entry, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var entries []Entry
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		if e, ok := parseLine(line); ok {
			entries = append(entries, e)
		}
	}
	return tail(entries, limit), nil
}

func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
