package zlob

import "go.uber.org/multierr"

// Result holds the pathnames produced by Glob, MatchPaths, or
// MatchPathsSlice, per spec.md §3's "Zlob result" and §4.I. It plays the
// same dual role the spec's C result struct does: Glob populates it with
// owned strings (built by the walk), while MatchPaths/MatchPathsSlice
// populate it with strings that alias the caller's own input slice
// (zero-copy). Free resets it either way via the single release path
// spec.md §4.I calls for; Go's GC does the rest, but Free still exists so
// callers coding to the spec's "one release entry point" discipline (and
// any cgo-facing wrapper built on top of this package) have exactly that.
//
// Result is not safe for concurrent use; each call should use its own.
type Result struct {
	// Offs is the number of leading reserved empty slots requested via the
	// DoOffs flag. A caller may set Offs before a call using the Append
	// flag; Free does not reset it (spec.md §4.I: "Re-initializing offs is
	// the caller's duty").
	Offs int

	pathv       []string
	pathlen     []int
	matchCount  int
	ownsStrings bool
	magic       bool
	warnings    error
}

// Pathc returns the number of matches (excluding reserved leading slots).
func (r *Result) Pathc() int { return r.matchCount }

// Pathv returns the full backing slice, including Offs leading empty
// strings and exactly Pathc matches after them; once at least one match has
// been added, len(Pathv()) == r.Offs+r.Pathc(). A Result with no matches
// (zero value, after Free, or after a no-match call) has an empty Pathv,
// with no reserved slots. There is no trailing NULL sentinel the way spec.md §3
// describes for the C struct: a Go slice already carries its own length,
// which is the sentinel.
func (r *Result) Pathv() []string { return r.pathv }

// Pathlen returns len(Pathv()[i]) for every i, precomputed per spec.md §3's
// "parallel length vector" so an FFI wrapper doesn't need to re-measure
// each string.
func (r *Result) Pathlen() []int { return r.pathlen }

// Matches returns just the match portion of Pathv, i.e. Pathv()[Offs:].
func (r *Result) Matches() []string {
	if r.matchCount == 0 {
		return nil
	}

	return r.pathv[r.Offs : r.Offs+r.matchCount]
}

// MagChar reports whether the pattern contained a magic character,
// mirroring spec.md §6's output-only MagChar flag bit.
func (r *Result) MagChar() bool { return r.magic }

// OwnsStrings reports whether Pathv's entries were built by Glob (true) or
// alias a caller-supplied slice via MatchPaths/MatchPathsSlice (false), per
// spec.md §9's "result ownership duality" note. A cgo-facing wrapper needs
// this to decide whether releasing a Result must also free each individual
// pathname or just the slice headers; plain Go callers can ignore it, since
// Free and the garbage collector already do the right thing either way.
func (r *Result) OwnsStrings() bool { return r.ownsStrings }

// Warnings returns the non-fatal directory-read or .gitignore-load errors
// accumulated during the call (when the Err flag was not set and any
// ErrFunc, if supplied, returned nil for each). Nil if none occurred.
func (r *Result) Warnings() error { return r.warnings }

// Free resets r to hold no matches. Safe to call on an already-freed or
// zero-value Result (spec.md §8 invariant 7): a second call is a no-op.
// Offs is left untouched, matching spec.md §4.I.
func (r *Result) Free() {
	r.pathv = nil
	r.pathlen = nil
	r.matchCount = 0
	r.ownsStrings = false
	r.magic = false
	r.warnings = nil
}

func (r *Result) addWarning(err error) {
	r.warnings = multierr.Append(r.warnings, err)
}

// reserveOffs ensures r.pathv/r.pathlen have r.Offs leading empty slots,
// used by both Glob and MatchPaths before appending their first match.
func (r *Result) reserveOffs() {
	if len(r.pathv) >= r.Offs {
		return
	}

	pad := r.Offs - len(r.pathv)
	r.pathv = append(r.pathv, make([]string, pad)...)
	r.pathlen = append(r.pathlen, make([]int, pad)...)
}

// addMatch appends one match, keeping Pathv/Pathlen/Pathc in lockstep.
func (r *Result) addMatch(path string) {
	r.reserveOffs()
	r.pathv = append(r.pathv, path)
	r.pathlen = append(r.pathlen, len(path))
	r.matchCount++
}

// setMatches replaces the match portion wholesale, leaving any Offs padding
// already present alone. Glob and MatchPaths add matches through addMatch
// and do not call it.
func (r *Result) setMatches(paths []string) {
	r.reserveOffs()
	r.pathv = append(r.pathv[:r.Offs], paths...)

	lens := make([]int, len(paths))
	for i, p := range paths {
		lens[i] = len(p)
	}

	r.pathlen = append(r.pathlen[:r.Offs], lens...)
	r.matchCount = len(paths)
}
