//go:build !linux

package walk

import (
	"io"
	"os"
)

// openDir is the portable backend: os.ReadDir, whose DirEntry.Type() is
// already populated from the underlying readdir-family syscall on every Go
// port without an extra Lstat, satisfying spec.md §4.G's "elsewhere, stat on
// demand only for kind-unknown entries".
func (w *FSWalker) openDir(full string) (Dir, error) {
	f, err := os.Open(full)
	if err != nil {
		return nil, err
	}

	return &fsDir{f: f, walker: w}, nil
}

type fsDir struct {
	f       *os.File
	walker  *FSWalker
	entries []os.DirEntry
	pos     int
	loaded  bool
}

func (d *fsDir) ReadEntry() (Entry, error) {
	if !d.loaded {
		entries, err := d.f.ReadDir(-1)
		if err != nil {
			return Entry{}, err
		}

		d.entries = entries
		d.loaded = true
	}

	for d.pos < len(d.entries) {
		de := d.entries[d.pos]
		d.pos++

		kind := kindOf(de.Type())

		if kind == KindSymlink && d.walker.FollowSymlinks {
			if info, err := os.Stat(d.f.Name() + "/" + de.Name()); err == nil && info.IsDir() {
				kind = KindDirectory
			}
		}

		return Entry{Name: de.Name(), Kind: kind}, nil
	}

	return Entry{}, io.EOF
}

func (d *fsDir) Close() error {
	return d.f.Close()
}
