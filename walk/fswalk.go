package walk

import "os"

// FSWalker implements FS against the real operating-system filesystem,
// rooted at an absolute or process-relative base directory.
//
// Grounded on cling-com-cling-sync/lib's FS.ReadDir (wraps os.ReadDir) and
// on the doublestar glob.go port's isDir/isPathDir symlink-to-directory
// resolution (a follow-up Stat when an entry's type is a symlink). Unlike
// cling-com-cling-sync's FS, FSWalker exposes nothing beyond directory
// iteration: no writes, no locks, no Stat beyond what OpenDir needs.
//
// OpenDir dispatches to a platform-specific backend: fswalk_linux.go's
// getdents64 fast path on Linux, fswalk_other.go's os.ReadDir elsewhere.
type FSWalker struct {
	// Root is the base directory every OpenDir path is joined against.
	// Empty means the process's current working directory.
	Root string
	// FollowSymlinks causes directory entries reported as KindSymlink to be
	// re-stat'd so a symlink-to-directory can be descended into, per
	// spec.md §4.G ("Symlinks to directories are followed only when
	// enabled"). Default false matches the spec's stated default.
	FollowSymlinks bool
}

// OpenDir opens path (relative to w.Root) for iteration.
func (w *FSWalker) OpenDir(path string) (Dir, error) {
	return w.openDir(w.join(path))
}

func (w *FSWalker) join(path string) string {
	switch {
	case w.Root == "":
		if path == "" {
			return "."
		}

		return path
	case path == "." || path == "":
		return w.Root
	default:
		return w.Root + "/" + path
	}
}

// kindOf translates an fs.FileMode (as reported by os.DirEntry.Type or
// os.FileInfo.Mode) into a Kind.
func kindOf(mode os.FileMode) Kind {
	switch {
	case mode&os.ModeSymlink != 0:
		return KindSymlink
	case mode.IsDir():
		return KindDirectory
	case mode.IsRegular():
		return KindRegular
	default:
		return KindUnknown
	}
}
