// Package zlob implements a pathname-pattern matching library: filesystem
// globbing (Glob) and in-memory path filtering (MatchPaths,
// MatchPathsSlice), a drop-in superset of POSIX glob(3) plus GNU
// extensions, extended glob, brace expansion, "**" recursion, and
// .gitignore-aware pruning.
//
// Orchestration (this file, spec.md §4.H) ties together package brace
// (§4.D), package pattern (§4.F), package walk (§4.G), package fnmatch
// (§4.B/§4.C), and package ignore (§4.E); package internal/sortutil merges
// and deduplicates the partial result runs each sub-pattern produces.
package zlob

import (
	"errors"
	"os"
	"os/user"
	"strings"

	"go.uber.org/multierr"

	"github.com/patterndrift/zlob/brace"
	"github.com/patterndrift/zlob/fnmatch"
	"github.com/patterndrift/zlob/ignore"
	"github.com/patterndrift/zlob/internal/sortutil"
	"github.com/patterndrift/zlob/pattern"
	"github.com/patterndrift/zlob/walk"
)

// GlobOptions carries the collaborators Glob needs beyond the pattern and
// Flags bitmask: the real filesystem by default, or a caller-supplied
// Walker (AltDirFunc) / IgnoreProvider.
type GlobOptions struct {
	// ErrFunc is consulted on a directory-read failure, per spec.md §4.H
	// step 7. May be nil.
	ErrFunc ErrFunc
	// Walker overrides the filesystem backend. Required when flags has
	// AltDirFunc set (spec.md §6); ignored otherwise, where Glob constructs
	// a walk.FSWalker rooted at Root.
	Walker walk.FS
	// Root is the directory Glob resolves relative patterns against when
	// Walker is nil. Empty means the process's current working directory.
	Root string
	// IgnoreProvider supplies .gitignore rules when flags has GitIgnore
	// set. If nil and flags lacks AltDirFunc (i.e. the real filesystem is
	// in play), Glob constructs one rooted at os.DirFS(Root). If nil and
	// flags has AltDirFunc (a virtual filesystem), gitignore pruning is
	// disabled: a virtual tree has no io/fs.FS to read ".gitignore" text
	// from unless the caller supplies a Provider explicitly.
	IgnoreProvider *ignore.Provider
}

func (o GlobOptions) fnmatchFlags(flags Flags) fnmatch.Flags {
	var ff fnmatch.Flags
	if flags.Has(NoEscape) {
		ff |= fnmatch.NoEscape
	}

	if flags.Has(Period) {
		ff |= fnmatch.Period
	}

	if flags.Has(ExtGlob) {
		ff |= fnmatch.ExtGlob
	}

	return ff
}

// Glob populates result with the pathnames matching pattern under the real
// or virtual filesystem described by opts, per spec.md §4.H. It returns
// ErrNoMatch, ErrNoSpace, ErrAborted on the conditions spec.md §7 describes,
// or nil on success (including the NoCheck/NoMagic synthesized-match case).
func Glob(pat string, flags Flags, opts GlobOptions, result *Result) error {
	if result == nil {
		panic("zlob: Glob called with a nil result")
	}

	if !flags.Has(Append) {
		result.matchCount = 0
		result.pathv = nil
		result.pathlen = nil
		result.warnings = nil
		result.ownsStrings = true
		result.magic = false
	}

	d := &driver{flags: flags, opts: opts, ff: opts.fnmatchFlags(flags)}

	runs, magic, err := d.globAllAlternatives(pat)
	if err != nil {
		return err
	}

	result.magic = result.magic || magic

	if len(runs) == 0 {
		if flags.Has(NoCheck) || (flags.Has(NoMagic) && !magic) {
			result.addMatch(pat)

			return nil
		}

		return ErrNoMatch
	}

	for _, run := range runs {
		result.addMatch(run)
	}

	if d.warnings != nil {
		result.addWarning(d.warnings)
	}

	return nil
}

// driver carries the per-call state threaded through one Glob invocation:
// the resolved walker, the optional gitignore provider, and any non-fatal
// warnings accumulated along the way (spec.md §4.H step 7 / AMBIENT STACK).
type driver struct {
	flags    Flags
	opts     GlobOptions
	ff       fnmatch.Flags
	warnings error
}

func (d *driver) walker() walk.FS {
	if d.flags.Has(AltDirFunc) && d.opts.Walker != nil {
		return d.opts.Walker
	}

	return &walk.FSWalker{Root: d.opts.Root, FollowSymlinks: d.flags.Has(FollowSymlinks)}
}

func (d *driver) ignoreProvider() *ignore.Provider {
	if !d.flags.Has(GitIgnore) {
		return nil
	}

	if d.opts.IgnoreProvider != nil {
		return d.opts.IgnoreProvider
	}

	if d.flags.Has(AltDirFunc) {
		return nil
	}

	root := d.opts.Root
	if root == "" {
		root = "."
	}

	return ignore.NewProvider(os.DirFS(root), ignore.ProviderOptions{})
}

// globAllAlternatives runs the brace pass (spec.md §4.H step 1) and merges
// each alternative's independently-sorted run, per DESIGN.md's "append x
// brace" decision: merge globally unless NoSort is set, in which case each
// alternative's matches simply concatenate in encounter order.
func (d *driver) globAllAlternatives(pat string) (matches []string, magic bool, err error) {
	alternatives := []string{pat}
	if d.flags.Has(Brace) {
		alternatives = brace.Expand(pat)
	}

	var runs [][]string

	for _, alt := range alternatives {
		run, altMagic, err := d.globOne(alt)
		if err != nil {
			return nil, false, err
		}

		magic = magic || altMagic
		runs = append(runs, run)
	}

	if d.flags.Has(NoSort) {
		for _, run := range runs {
			matches = append(matches, run...)
		}

		return matches, magic, nil
	}

	return sortutil.MergeDedup(runs...), magic, nil
}

// globOne resolves one brace-expanded alternative: tilde expansion, the
// magic test, and the literal-or-descent dispatch (spec.md §4.H steps 2-9
// for a single sub-pattern).
func (d *driver) globOne(pat string) (matches []string, magic bool, err error) {
	pat, tildeFailed := d.expandTilde(pat)
	if tildeFailed {
		return nil, false, nil
	}

	analysis := pattern.Analyze(pat, d.flags.Has(Brace), d.flags.Has(NoEscape))
	magic = analysis.Suffix != "" || analysis.HasRecursive

	w := d.walker()

	if !magic {
		m, err := d.literalLookup(w, pat)
		if err != nil {
			return nil, magic, err
		}

		return m, magic, nil
	}

	base := analysis.LiteralPrefix
	if base == "" {
		base = "."
	}

	var out []string

	emit := func(p string, kind walk.Kind) {
		if d.flags.Has(Mark) && kind == walk.KindDirectory {
			p += "/"
		}

		out = append(out, p)
	}

	// spec.md §3's "simple_extension... drives a leaf fast path": when the
	// whole wildcard tail is one "*ext" segment with no recursion, skip
	// fnmatch's per-entry template dispatch entirely and filter the single
	// directory listing by suffix directly.
	if analysis.HasSimpleExtension {
		if err := d.descendSimpleExtension(w, base, analysis.SimpleExtension, emit); err != nil {
			return nil, magic, err
		}
	} else {
		var segs []string
		if analysis.Suffix != "" {
			segs = strings.Split(analysis.Suffix, "/")
		}

		if err := d.descend(w, base, segs, emit); err != nil {
			return nil, magic, err
		}
	}

	if !d.flags.Has(NoSort) {
		out = sortutil.SortDedup(out)
	}

	return out, magic, nil
}

// expandTilde implements spec.md §4.H step 2. failed is true only when
// TildeCheck is set and the user lookup did not succeed, in which case the
// caller must treat the whole alternative as a no-match.
func (d *driver) expandTilde(pat string) (expanded string, failed bool) {
	if !d.flags.Has(Tilde) && !d.flags.Has(TildeCheck) {
		return pat, false
	}

	if pat == "" || pat[0] != '~' {
		return pat, false
	}

	rest := pat[1:]

	name, tail, _ := strings.Cut(rest, "/")

	var home string

	if name == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			if d.flags.Has(TildeCheck) {
				return pat, true
			}

			return pat, false
		}

		home = h
	} else {
		u, err := user.Lookup(name)
		if err != nil {
			if d.flags.Has(TildeCheck) {
				return pat, true
			}

			return pat, false
		}

		home = u.HomeDir
	}

	if tail == "" {
		return home, false
	}

	return home + "/" + tail, false
}

// literalLookup implements spec.md §4.H step 3 for the no-magic case:
// confirm the literal path exists by scanning its parent directory (the
// Walker contract has no Stat beyond directory iteration), and emit it
// honoring OnlyDir/Mark.
func (d *driver) literalLookup(w walk.FS, p string) ([]string, error) {
	dir, base := splitPath(p)

	dh, err := w.OpenDir(dir)
	if err != nil {
		return nil, nil //nolint:nilerr // a missing parent means the literal path doesn't exist, not an error
	}

	defer dh.Close() //nolint:errcheck

	for {
		entry, err := dh.ReadEntry()
		if err != nil {
			return nil, nil //nolint:nilerr // EOF or read error: treat as not-found, matching spec's total-function style
		}

		if entry.Name != base {
			continue
		}

		if d.flags.Has(OnlyDir) && entry.Kind != walk.KindDirectory {
			return nil, nil
		}

		if prov := d.ignoreProvider(); prov != nil {
			ignored, _ := prov.Ignored(p, entry.Kind == walk.KindDirectory)
			if ignored {
				return nil, nil
			}
		}

		name := p
		if d.flags.Has(Mark) && entry.Kind == walk.KindDirectory {
			name += "/"
		}

		return []string{name}, nil
	}
}

func splitPath(p string) (dir, base string) {
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[:i], p[i+1:]
	}

	return ".", p
}

// descendSimpleExtension is the leaf fast path for patterns whose entire
// wildcard tail analyzed to pattern.Analysis.SimpleExtension: one directory,
// one suffix comparison per entry, no fnmatch.AnalyzeSegment/Match call at
// all (spec.md §3: "drives a leaf fast path").
func (d *driver) descendSimpleExtension(w walk.FS, dirPath, ext string, emit func(string, walk.Kind)) error {
	dh, err := w.OpenDir(dirPath)
	if err != nil {
		return d.handleDirError(dirPath, err)
	}

	defer dh.Close() //nolint:errcheck

	for {
		entry, err := dh.ReadEntry()
		if err != nil {
			break
		}

		if !strings.HasSuffix(entry.Name, ext) {
			continue
		}

		if d.flags.Has(Period) && len(entry.Name) > 0 && entry.Name[0] == '.' {
			continue
		}

		if d.flags.Has(OnlyDir) && entry.Kind != walk.KindDirectory {
			continue
		}

		childPath := entry.Name
		if dirPath != "." {
			childPath = dirPath + "/" + entry.Name
		}

		if d.ignored(childPath, entry.Kind == walk.KindDirectory) {
			continue
		}

		emit(childPath, entry.Kind)
	}

	return nil
}

// descend implements spec.md §4.H step 5: walk segs against dirPath's
// subtree, dispatching "**" (when Recursive is set) to recursive any-depth
// matching and every other segment to ordinary one-level directory
// filtering. emit is called once per leaf match, in encounter order; the
// caller sorts afterward unless NoSort is set.
func (d *driver) descend(w walk.FS, dirPath string, segs []string, emit func(string, walk.Kind)) error {
	if len(segs) == 0 {
		// Reached via a recursive "**" consuming zero further components:
		// the spec's decided Open Question is that "dir/**" includes dir
		// itself (DESIGN.md, grounded on doublestar's globDoubleStar).
		emit(dirPath, walk.KindDirectory)

		return nil
	}

	seg := segs[0]
	rest := segs[1:]

	if seg == "**" && d.flags.Has(Recursive) {
		return d.descendDoubleStar(w, dirPath, rest, emit)
	}

	dh, err := w.OpenDir(dirPath)
	if err != nil {
		return d.handleDirError(dirPath, err)
	}

	defer dh.Close() //nolint:errcheck

	analysis := fnmatch.AnalyzeSegment(seg, d.ff)
	isLast := len(rest) == 0

	for {
		entry, err := dh.ReadEntry()
		if err != nil {
			break
		}

		if !analysis.Match(seg, entry.Name, d.ff) {
			continue
		}

		childPath := dirPath + "/" + entry.Name
		if dirPath == "." {
			childPath = entry.Name
		}

		if isLast {
			if d.flags.Has(OnlyDir) && entry.Kind != walk.KindDirectory {
				continue
			}

			if d.ignored(childPath, entry.Kind == walk.KindDirectory) {
				continue
			}

			emit(childPath, entry.Kind)

			continue
		}

		if entry.Kind != walk.KindDirectory {
			continue
		}

		if prov := d.ignoreProvider(); prov != nil {
			skip, _ := prov.ShouldSkipDirectory(childPath)
			if skip {
				continue
			}
		}

		if err := d.descend(w, childPath, rest, emit); err != nil {
			return err
		}
	}

	return nil
}

// descendDoubleStar implements the "**" branch: it matches zero components
// (try rest at dirPath directly) and then, for every subdirectory at any
// depth under dirPath, tries rest anchored there too. The any-depth part is
// exactly package walk's "iterator of iterators" (spec.md §4.G): it uses
// walk.Walk's explicit frame stack instead of unbounded Go-call-stack
// recursion, pruning ignored subtrees via walk.ErrSkipDir.
func (d *driver) descendDoubleStar(w walk.FS, dirPath string, rest []string, emit func(string, walk.Kind)) error {
	if err := d.descend(w, dirPath, rest, emit); err != nil {
		return err
	}

	walkErr := walk.Walk(w, dirPath, func(path string, entry walk.Entry) (bool, error) {
		if entry.Kind != walk.KindDirectory {
			return false, nil
		}

		if prov := d.ignoreProvider(); prov != nil {
			if skip, _ := prov.ShouldSkipDirectory(path); skip {
				return false, walk.ErrSkipDir
			}
		}

		if err := d.descend(w, path, rest, emit); err != nil {
			return false, err
		}

		return true, nil
	})

	if walkErr == nil || errors.Is(walkErr, ErrAborted) {
		return walkErr
	}

	// A raw directory-open failure from walk.Walk itself (root or a pushed
	// child frame), not yet funneled through the Err/ErrFunc/warnings policy
	// that descend's own OpenDir calls already apply to their own failures.
	return d.handleDirError(dirPath, walkErr)
}

func (d *driver) ignored(childPath string, isDir bool) bool {
	prov := d.ignoreProvider()
	if prov == nil {
		return false
	}

	ignored, _ := prov.Ignored(childPath, isDir)

	return ignored
}

// handleDirError implements spec.md §4.H step 7: abort with ErrAborted when
// the Err flag is set or ErrFunc returns non-nil; otherwise the failure is
// folded into d.warnings and the walk continues.
func (d *driver) handleDirError(dirPath string, err error) error {
	if d.flags.Has(Err) {
		return ErrAborted
	}

	if d.opts.ErrFunc != nil {
		if cbErr := d.opts.ErrFunc(dirPath, err); cbErr != nil {
			return ErrAborted
		}
	}

	d.warnings = multierr.Append(d.warnings, err)

	return nil
}
