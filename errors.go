package zlob

import "errors"

// Sentinel errors returned by Glob, MatchPaths, and MatchPathsSlice, per
// spec.md §7's taxonomy. Check with errors.Is; none of these ever wraps an
// underlying cause beyond what ErrFunc/Result.Warnings() surfaces instead.
var (
	// ErrNoMatch is returned when the call completed normally but found
	// zero results and NoCheck/NoMagic did not synthesize one.
	ErrNoMatch = errors.New("zlob: no match")
	// ErrNoSpace is returned when an internal allocation failed.
	ErrNoSpace = errors.New("zlob: no space")
	// ErrAborted is returned when a directory read failed and either the
	// Err flag was set or the caller's ErrFunc returned non-nil.
	ErrAborted = errors.New("zlob: aborted")
)

// ErrFunc is called when a directory cannot be opened or read during a
// recursive descent. path is the directory that failed; err is the
// underlying OS error. Returning a non-nil error aborts the call with
// ErrAborted, exactly as if the Err flag were set for that one failure;
// returning nil lets the walk continue, and err is folded into the
// resulting Result's Warnings() instead.
type ErrFunc func(path string, err error) error
