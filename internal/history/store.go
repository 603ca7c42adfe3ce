// Package history records every generator run so icon changes can be traced
// back to the run (and checksum) that produced them.
package history

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/Mavwarf/exticons/internal/config"
	"github.com/Mavwarf/exticons/internal/icon"
	"github.com/Mavwarf/exticons/internal/paths"
)

// Entry is one recorded icon outcome.
type Entry struct {
	Time      time.Time
	Variant   string
	OutputDir string
	Size      int
	Path      string
	Bytes     int
	SHA256    string
	Error     string // empty on success
}

// OK reports whether the icon was written.
func (e Entry) OK() bool { return e.Error == "" }

// Store abstracts run history storage. FileStore keeps a flat log file;
// SQLiteStore keeps a database with one row per run and per icon.
type Store interface {
	Record(run icon.Run) error
	Entries(limit int) ([]Entry, error) // newest limit entries, oldest first; 0 = all
	Clear() error
	Path() string
	Close() error
}

// Open returns the store for kind inside dir.
func Open(kind, dir string) (Store, error) {
	switch kind {
	case config.StorageFile, "":
		return NewFileStore(filepath.Join(dir, paths.LogFileName)), nil
	case config.StorageSQLite:
		return NewSQLiteStore(filepath.Join(dir, paths.DBFileName))
	default:
		return nil, fmt.Errorf("unknown history storage %q", kind)
	}
}

// entriesOf flattens a run into entries.
func entriesOf(run icon.Run) []Entry {
	out := make([]Entry, 0, len(run.Results))
	for _, r := range run.Results {
		e := Entry{
			Time:      run.Time,
			Variant:   run.Variant,
			OutputDir: run.OutputDir,
			Size:      r.Size,
			Path:      r.Path,
			Bytes:     r.Bytes,
			SHA256:    r.SHA256,
		}
		if r.Err != nil {
			e.Error = r.Err.Error()
		}
		out = append(out, e)
	}
	return out
}

// tail returns the last limit entries (all when limit <= 0).
func tail(entries []Entry, limit int) []Entry {
	if limit > 0 && len(entries) > limit {
		return entries[len(entries)-limit:]
	}
	return entries
}
