//go:build linux

package walk

import (
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// linuxDir is the Linux fast path: it reads directory entries with
// unix.Getdents, parsing raw dirent64 records directly instead of going
// through os.ReadDir, per spec.md §4.G ("platforms exposing a batch-read
// syscall with file-type in the entry, prefer it"). Entries whose d_type is
// DT_UNKNOWN (some filesystems, notably older XFS, never populate it) fall
// back to a per-entry Lstat, matching the spec's "elsewhere, stat on demand
// only for kind-unknown entries".
type linuxDir struct {
	f      *os.File
	walker *FSWalker
	buf    []byte
	n      int
	off    int
}

const getdentsBufSize = 32 * 1024

func (w *FSWalker) openDir(full string) (Dir, error) {
	f, err := os.Open(full)
	if err != nil {
		return nil, err
	}

	return &linuxDir{f: f, walker: w, buf: make([]byte, getdentsBufSize)}, nil
}

func (d *linuxDir) ReadEntry() (Entry, error) {
	for {
		if d.off >= d.n {
			n, err := unix.Getdents(int(d.f.Fd()), d.buf)
			if err != nil {
				return Entry{}, err
			}

			if n == 0 {
				return Entry{}, io.EOF
			}

			d.n = n
			d.off = 0
		}

		name, kind, reclen, ok := parseDirent(d.buf[d.off:d.n])
		if !ok {
			d.off = d.n

			continue
		}

		d.off += reclen

		if name == "." || name == ".." {
			continue
		}

		if kind == KindUnknown {
			if info, err := os.Lstat(d.f.Name() + "/" + name); err == nil {
				kind = kindOf(info.Mode())
			}
		}

		if kind == KindSymlink && d.walker.FollowSymlinks {
			if info, err := os.Stat(d.f.Name() + "/" + name); err == nil && info.IsDir() {
				kind = KindDirectory
			}
		}

		return Entry{Name: name, Kind: kind}, nil
	}
}

func (d *linuxDir) Close() error {
	return d.f.Close()
}

// dType mirrors the d_type values Linux's getdents64 reports. They line up
// with spec.md §6's entry-type constants for directory (4), regular (8) and
// symlink (10) byte-for-byte, which is why walk.Kind uses the same numbering.
const (
	dtUnknown = 0
	dtDir     = 4
	dtReg     = 8
	dtLnk     = 10
)

// parseDirent reads exactly one linux_dirent64 record from the front of buf,
// returning its name, Kind, and the record's length (to advance past it).
// ok is false once buf holds no further complete record.
//
// Record layout (see getdents64(2)): 8-byte inode, 8-byte offset, 2-byte
// reclen, 1-byte d_type, then the NUL-terminated name padded to reclen.
func parseDirent(buf []byte) (name string, kind Kind, reclen int, ok bool) {
	const headerLen = 19 // ino(8) + off(8) + reclen(2) + type(1)
	if len(buf) < headerLen {
		return "", KindUnknown, 0, false
	}

	reclen = int(uint16(buf[16]) | uint16(buf[17])<<8)
	if reclen <= 0 || reclen > len(buf) {
		return "", KindUnknown, 0, false
	}

	dtype := buf[18]

	nameBytes := buf[headerLen:reclen]

	end := 0
	for end < len(nameBytes) && nameBytes[end] != 0 {
		end++
	}

	name = string(nameBytes[:end])

	switch dtype {
	case dtDir:
		kind = KindDirectory
	case dtReg:
		kind = KindRegular
	case dtLnk:
		kind = KindSymlink
	default:
		kind = KindUnknown
	}

	return name, kind, reclen, true
}
