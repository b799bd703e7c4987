package zlob

// Flags is the bitmask controlling Glob, MatchPaths, and MatchPathsSlice,
// a direct transcription of spec.md §6's flag-bit table.
type Flags uint32

const (
	// Err aborts the call on a directory-read error, returning ErrAborted.
	Err Flags = 1 << iota
	// Mark appends '/' to every directory pathname in the result.
	Mark
	// NoSort preserves encounter order instead of sorting bytewise ascending.
	NoSort
	// DoOffs reserves Result.Offs leading empty slots in the match list.
	DoOffs
	// NoCheck emits the pattern itself as the sole result when zero paths
	// match.
	NoCheck
	// Append adds to an already-populated Result instead of replacing it.
	Append
	// NoEscape treats '\' as a literal character in patterns.
	NoEscape
	// Period requires an explicit leading '.' in the pattern to match a
	// leading '.' in a name; otherwise such names are skipped.
	Period
	// MagChar is not read on input. Whether the pattern contained a magic
	// character is reported by Result.MagChar, not by setting this bit.
	MagChar
	// AltDirFunc uses the Walker supplied via GlobOptions.Walker instead of
	// the real filesystem.
	AltDirFunc
	// Brace enables "{a,b,c}" expansion.
	Brace
	// NoMagic behaves like NoCheck, but only when the pattern has no magic
	// character at all.
	NoMagic
	// Tilde enables "~" / "~user" expansion.
	Tilde
	// OnlyDir matches only directories.
	OnlyDir
	// TildeCheck behaves like Tilde, but fails with ErrNoMatch if the user
	// lookup fails (instead of leaving '~' literal).
	TildeCheck
	// FollowSymlinks descends through symlinks-to-directories during
	// recursive ("**") descent. spec.md §9's Open Questions leaves this
	// undecided ("default to 'no' and make it a flag if needed"); zlob
	// claims bit 15, which spec.md §6's table leaves unassigned between
	// TildeCheck (14) and the reserved "**"/extglob/gitignore bits (16-18).
	FollowSymlinks
	// Recursive enables "**" as a recursive any-components wildcard;
	// without it "**" is matched as a literal two-star component (spec.md
	// §6, bit 16).
	Recursive
	// ExtGlob enables ksh/bash extended-glob alternations
	// (@() ?() *() +() !()), spec.md §6 bit 17.
	ExtGlob
	// GitIgnore enables .gitignore-aware pruning, consulting every
	// .gitignore from the walk root down to each path's directory, spec.md
	// §6 bit 18. .gitignore files above the walk root are not read.
	GitIgnore
)

// Has reports whether all bits in want are set in f.
func (f Flags) Has(want Flags) bool {
	return f&want == want
}
