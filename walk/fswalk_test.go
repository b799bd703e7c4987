package walk_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/patterndrift/zlob/walk"
)

func writeTree(t *testing.T) string {
	t.Helper()

	root := t.TempDir()

	if err := os.MkdirAll(filepath.Join(root, "sub"), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	for _, name := range []string{"a.txt", "b.log", filepath.Join("sub", "c.txt")} {
		if err := os.WriteFile(filepath.Join(root, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile(%s): %v", name, err)
		}
	}

	return root
}

func readAll(t *testing.T, fsys walk.FS, path string) []walk.Entry {
	t.Helper()

	dir, err := fsys.OpenDir(path)
	if err != nil {
		t.Fatalf("OpenDir(%q): %v", path, err)
	}

	defer dir.Close() //nolint:errcheck

	var entries []walk.Entry

	for {
		entry, err := dir.ReadEntry()
		if err != nil {
			break
		}

		entries = append(entries, entry)
	}

	return entries
}

func TestFSWalkerListsRootEntries(t *testing.T) {
	t.Parallel()

	root := writeTree(t)
	fsys := &walk.FSWalker{Root: root}

	entries := readAll(t, fsys, ".")

	names := make(map[string]walk.Kind, len(entries))
	for _, e := range entries {
		names[e.Name] = e.Kind
	}

	if names["a.txt"] != walk.KindRegular {
		t.Errorf("a.txt kind = %v, want KindRegular", names["a.txt"])
	}

	if names["sub"] != walk.KindDirectory {
		t.Errorf("sub kind = %v, want KindDirectory", names["sub"])
	}

	if len(entries) != 3 {
		t.Errorf("len(entries) = %d, want 3 (a.txt, b.log, sub)", len(entries))
	}
}

func TestFSWalkerListsSubdirectory(t *testing.T) {
	t.Parallel()

	root := writeTree(t)
	fsys := &walk.FSWalker{Root: root}

	entries := readAll(t, fsys, "sub")

	if len(entries) != 1 || entries[0].Name != "c.txt" || entries[0].Kind != walk.KindRegular {
		t.Errorf("entries = %+v, want [{c.txt KindRegular}]", entries)
	}
}

func TestFSWalkerOpenDirOnMissingPathFails(t *testing.T) {
	t.Parallel()

	root := writeTree(t)
	fsys := &walk.FSWalker{Root: root}

	if _, err := fsys.OpenDir("does-not-exist"); err == nil {
		t.Fatal("expected an error opening a missing directory")
	}
}

func TestWalkVisitsEveryEntry(t *testing.T) {
	t.Parallel()

	root := writeTree(t)
	fsys := &walk.FSWalker{Root: root}

	var visited []string

	err := walk.Walk(fsys, ".", func(path string, entry walk.Entry) (bool, error) {
		if entry.Kind == walk.KindDirectory {
			return true, nil
		}

		visited = append(visited, path)

		return false, nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}

	want := map[string]bool{"a.txt": true, "b.log": true, "sub/c.txt": true}
	if len(visited) != len(want) {
		t.Fatalf("visited = %v, want %d entries", visited, len(want))
	}

	for _, p := range visited {
		if !want[p] {
			t.Errorf("unexpected visited path %q", p)
		}
	}
}
