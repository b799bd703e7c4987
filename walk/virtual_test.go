package walk_test

import (
	"sort"
	"testing"

	"github.com/patterndrift/zlob/walk"
)

func TestMemoryFSListsFilesAndDirs(t *testing.T) {
	t.Parallel()

	fs := walk.NewMemoryFS().AddFile("a.txt").AddFile("sub/b.txt").AddDir("empty")

	dir, err := fs.Walker().OpenDir(".")
	if err != nil {
		t.Fatalf("OpenDir: %v", err)
	}

	defer dir.Close() //nolint:errcheck

	var names []string

	for {
		entry, err := dir.ReadEntry()
		if err != nil {
			break
		}

		names = append(names, entry.Name)
	}

	sort.Strings(names)

	want := []string{"a.txt", "empty", "sub"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}

	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestMemoryFSOpenDirOnFileFails(t *testing.T) {
	t.Parallel()

	fs := walk.NewMemoryFS().AddFile("a.txt")

	if _, err := fs.Walker().OpenDir("a.txt"); err == nil {
		t.Fatal("expected an error opening a regular file as a directory")
	}
}

func TestVirtualWalkerDelegatesToCallbacks(t *testing.T) {
	t.Parallel()

	var closed bool

	w := &walk.VirtualWalker{
		OpenDirFn: func(path string) (walk.OpaqueHandle, error) {
			return new(int), nil
		},
		ReadDirFn: func(handle walk.OpaqueHandle) (walk.Entry, bool, error) {
			pos, _ := handle.(*int)
			if *pos >= 1 {
				return walk.Entry{}, false, nil
			}

			*pos++

			return walk.Entry{Name: "only.txt", Kind: walk.KindRegular}, true, nil
		},
		CloseDirFn: func(walk.OpaqueHandle) error {
			closed = true

			return nil
		},
	}

	dir, err := w.OpenDir("ignored")
	if err != nil {
		t.Fatalf("OpenDir: %v", err)
	}

	entry, err := dir.ReadEntry()
	if err != nil {
		t.Fatalf("ReadEntry: %v", err)
	}

	if entry.Name != "only.txt" {
		t.Errorf("entry.Name = %q, want %q", entry.Name, "only.txt")
	}

	if _, err := dir.ReadEntry(); err == nil {
		t.Fatal("expected io.EOF-shaped error after the single entry")
	}

	if err := dir.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if !closed {
		t.Error("CloseDirFn was not invoked")
	}
}
