package walk

import "io"

// OpaqueHandle is whatever a virtual filesystem's OpenDirFunc returns; it is
// passed back unchanged to ReadDirFunc and CloseDirFunc. zlob never inspects
// it, matching spec.md §4.G/§9's "opendir/readdir/closedir callbacks operate
// on opaque handles".
type OpaqueHandle any

// OpenDirFunc opens path for iteration, returning an opaque handle.
type OpenDirFunc func(path string) (OpaqueHandle, error)

// ReadDirFunc returns the next entry from handle, or ok=false once
// exhausted. The caller (VirtualWalker) owns no part of entry.Name's
// backing storage beyond the duration of this call and the next one, per
// spec.md §9's callback contract ("entry's name buffer valid until the next
// readdir or closedir").
type ReadDirFunc func(handle OpaqueHandle) (entry Entry, ok bool, err error)

// CloseDirFunc releases handle.
type CloseDirFunc func(handle OpaqueHandle) error

// VirtualWalker implements FS by delegating every operation to caller-
// supplied callbacks, letting zlob glob over in-memory trees (archives,
// test fixtures, network filesystems) instead of the real filesystem.
//
// Grounded on cling-com-cling-sync/lib's FS interface plus its MemoryFS/
// subMemoryFS pair (an interface plus a swappable in-memory implementation):
// VirtualWalker is the interface side of that pattern narrowed to spec.md
// §4.G's actual contract (name+kind enumeration), and the sibling
// MemoryFS type below plays MemoryFS's role for tests.
type VirtualWalker struct {
	OpenDirFn  OpenDirFunc
	ReadDirFn  ReadDirFunc
	CloseDirFn CloseDirFunc
}

func (v *VirtualWalker) OpenDir(path string) (Dir, error) {
	handle, err := v.OpenDirFn(path)
	if err != nil {
		return nil, err
	}

	return &virtualDir{handle: handle, read: v.ReadDirFn, close: v.CloseDirFn}, nil
}

type virtualDir struct {
	handle OpaqueHandle
	read   ReadDirFunc
	close  CloseDirFunc
}

func (d *virtualDir) ReadEntry() (Entry, error) {
	entry, ok, err := d.read(d.handle)
	if err != nil {
		return Entry{}, err
	}

	if !ok {
		return Entry{}, io.EOF
	}

	return entry, nil
}

func (d *virtualDir) Close() error {
	if d.close == nil {
		return nil
	}

	return d.close(d.handle)
}

// MemoryFS is a minimal in-memory directory tree for tests and for callers
// who want VirtualWalker's callback contract without writing their own
// opendir/readdir/closedir trio. Construct with NewMemoryFS and populate
// with AddFile/AddDir before walking.
//
// Grounded on cling-com-cling-sync/lib's MemoryFS: a map keyed by full
// slash-separated path, same flat-map-plus-prefix-scan shape, narrowed to
// the name+kind data Walker needs instead of full file content and modes.
type MemoryFS struct {
	entries map[string]Kind
}

// NewMemoryFS creates an empty in-memory tree (just the root directory).
func NewMemoryFS() *MemoryFS {
	return &MemoryFS{entries: map[string]Kind{".": KindDirectory}}
}

// AddFile registers a regular file at path, creating any missing ancestor
// directories.
func (m *MemoryFS) AddFile(path string) *MemoryFS {
	return m.add(path, KindRegular)
}

// AddDir registers a directory at path, creating any missing ancestors.
func (m *MemoryFS) AddDir(path string) *MemoryFS {
	return m.add(path, KindDirectory)
}

func (m *MemoryFS) add(path string, kind Kind) *MemoryFS {
	m.entries[path] = kind

	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			parent := path[:i]
			if _, ok := m.entries[parent]; !ok {
				m.entries[parent] = KindDirectory
			}
		}
	}

	return m
}

// Walker returns a VirtualWalker backed by this tree's contents.
func (m *MemoryFS) Walker() *VirtualWalker {
	return &VirtualWalker{
		OpenDirFn: func(path string) (OpaqueHandle, error) {
			if path == "" {
				path = "."
			}

			if kind, ok := m.entries[path]; !ok || kind != KindDirectory {
				return nil, errNotADirectory(path)
			}

			var names []string

			for p := range m.entries {
				if p == path {
					continue
				}

				if dirOf(p) == path {
					names = append(names, p)
				}
			}

			return &memoryHandle{fs: m, names: names}, nil
		},
		ReadDirFn: func(handle OpaqueHandle) (Entry, bool, error) {
			h, _ := handle.(*memoryHandle)
			if h.pos >= len(h.names) {
				return Entry{}, false, nil
			}

			full := h.names[h.pos]
			h.pos++

			return Entry{Name: baseOf(full), Kind: h.fs.entries[full]}, true, nil
		},
		CloseDirFn: func(OpaqueHandle) error { return nil },
	}
}

type memoryHandle struct {
	fs    *MemoryFS
	names []string
	pos   int
}

type notADirectoryError string

func (e notADirectoryError) Error() string { return "walk: " + string(e) + " is not a directory" }

func errNotADirectory(path string) error { return notADirectoryError(path) }

func dirOf(p string) string {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] == '/' {
			return p[:i]
		}
	}

	return "."
}

func baseOf(p string) string {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] == '/' {
			return p[i+1:]
		}
	}

	return p
}
