package ignore

import (
	"errors"
	"io/fs"
	"path"
	"strings"
	"sync"

	"go.uber.org/multierr"
)

const defaultIgnoreFileName = ".gitignore"

// ErrNilProvider is returned by Provider methods called on a nil receiver.
var ErrNilProvider = errors.New("ignore: nil provider")

// ProviderOptions configures a hierarchical Provider.
//
// Adapted from WoozyMasta-pathrules/provider.go's ProviderOptions: the same
// shape (a configurable rules file name plus shared matcher options) applied
// to .gitignore files instead of a sibling rule format.
type ProviderOptions struct {
	// IgnoreFileName is the rules file name consulted in every directory.
	// Empty defaults to ".gitignore".
	IgnoreFileName string
	// RulesOptions is passed to NewOptions when compiling each directory's
	// ignore file.
	RulesOptions Options
}

// Provider discovers and caches .gitignore files along a directory tree
// rooted at an fs.FS, and answers hierarchical ignore/pruning decisions
// without requiring the caller to pre-load anything.
//
// Grounded on WoozyMasta-pathrules/provider.go's Provider/cachedDirMatcher:
// the same mutex-guarded cache-with-in-flight-waitgroup structure, so
// concurrent walkers asking about sibling entries in the same directory
// only trigger one file read and one compile.
type Provider struct {
	fsys           fs.FS
	ignoreFileName string
	opts           Options

	mu    sync.Mutex
	cache map[string]*cachedDirRules

	warnMu   sync.Mutex
	warnings error
}

type cachedDirRules struct {
	rules   *Rules
	err     error
	loading bool
	wg      sync.WaitGroup
}

// NewProvider creates a Provider rooted at fsys. Paths passed to Provider
// methods are slash-separated and relative to fsys's root, matching io/fs
// conventions ("." for the root itself).
func NewProvider(fsys fs.FS, opts ProviderOptions) *Provider {
	name := opts.IgnoreFileName
	if name == "" {
		name = defaultIgnoreFileName
	}

	return &Provider{
		fsys:           fsys,
		ignoreFileName: name,
		opts:           opts.RulesOptions,
		cache:          make(map[string]*cachedDirRules),
	}
}

// Warnings returns the accumulated non-fatal errors encountered while
// loading or compiling ignore files (e.g. a malformed file in one
// directory does not prevent matching against the rest of the tree).
func (p *Provider) Warnings() error {
	p.warnMu.Lock()
	defer p.warnMu.Unlock()

	return p.warnings
}

func (p *Provider) addWarning(err error) {
	if err == nil {
		return
	}

	p.warnMu.Lock()
	p.warnings = multierr.Append(p.warnings, err)
	p.warnMu.Unlock()
}

// Ignored reports whether relPath (relative to the provider root, '/'
// separated) is ignored, consulting every .gitignore from the root down to
// relPath's containing directory per spec.md §4.E, nearest directory last.
func (p *Provider) Ignored(relPath string, isDir bool) (bool, error) {
	if p == nil {
		return false, ErrNilProvider
	}

	relPath = path.Clean(relPath)

	dir := dirOf(relPath, isDir)

	ignored := false

	for _, level := range p.chain(dir) {
		rules, err := p.loadDirRules(level)
		if err != nil {
			p.addWarning(err)

			continue
		}

		if rules == nil {
			continue
		}

		candidate := trimPrefixDir(relPath, level)

		dec := rules.Match(candidate, isDir)
		if dec.Matched {
			ignored = dec.Ignored
		}
	}

	return ignored, nil
}

// ShouldSkipDirectory reports whether the walker may prune dirPath
// entirely, consulting every applicable .gitignore level. Conservative:
// any level whose rules contain a negation that could reach inside dirPath
// inhibits pruning, mirroring Rules.ShouldSkipDirectory's single-file rule
// but applied across the whole directory chain.
func (p *Provider) ShouldSkipDirectory(dirPath string) (bool, error) {
	if p == nil {
		return false, ErrNilProvider
	}

	dirPath = path.Clean(dirPath)

	ancestor := dirOf(dirPath, true)

	ignored, err := p.Ignored(dirPath, true)
	if err != nil {
		return false, err
	}

	if !ignored {
		return false, nil
	}

	for _, level := range p.chain(ancestor) {
		rules, loadErr := p.loadDirRules(level)
		if loadErr != nil {
			p.addWarning(loadErr)

			continue
		}

		if rules == nil {
			continue
		}

		candidate := trimPrefixDir(dirPath, level)
		if rules.hasInhibitingNegation(candidate) {
			return false, nil
		}
	}

	// dirPath's own ignore file (if any) can re-include things beneath it;
	// any negation there always qualifies, since its coordinate origin is
	// dirPath itself.
	own, err := p.loadDirRules(dirPath)
	if err != nil {
		p.addWarning(err)

		return true, nil
	}

	if own != nil && own.hasInhibitingNegation("") {
		return false, nil
	}

	return true, nil
}

// chain returns every directory from the provider root down to dir
// (inclusive), in ascending order: root first, dir last.
func (p *Provider) chain(dir string) []string {
	if dir == "." || dir == "" {
		return []string{"."}
	}

	parts := strings.Split(dir, "/")
	levels := make([]string, 0, len(parts)+1)
	levels = append(levels, ".")

	for i := 1; i <= len(parts); i++ {
		levels = append(levels, strings.Join(parts[:i], "/"))
	}

	return levels
}

// loadDirRules returns the cached or newly-loaded Rules for exactly one
// directory's own ignore file (not its ancestors). A nil *Rules with a nil
// error means the directory has no ignore file.
func (p *Provider) loadDirRules(dir string) (*Rules, error) {
	p.mu.Lock()

	cached, ok := p.cache[dir]
	if ok {
		loading := cached.loading
		p.mu.Unlock()

		if loading {
			cached.wg.Wait()
		}

		return cached.rules, cached.err
	}

	cached = &cachedDirRules{loading: true}
	cached.wg.Add(1)
	p.cache[dir] = cached
	p.mu.Unlock()

	rules, err := p.readAndCompile(dir)

	p.mu.Lock()
	cached.rules = rules
	cached.err = err
	cached.loading = false
	cached.wg.Done()
	p.mu.Unlock()

	return rules, err
}

func (p *Provider) readAndCompile(dir string) (*Rules, error) {
	ignorePath := p.ignoreFileName
	if dir != "." && dir != "" {
		ignorePath = dir + "/" + p.ignoreFileName
	}

	content, err := fs.ReadFile(p.fsys, ignorePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, err
	}

	lines := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")

	return NewOptions(p.opts, lines...), nil
}

// dirOf returns the slash-separated directory containing relPath. When
// relPath is itself a directory, it is its own container for chain lookup.
func dirOf(relPath string, isDir bool) string {
	if isDir {
		return relPath
	}

	if i := strings.LastIndexByte(relPath, '/'); i >= 0 {
		return relPath[:i]
	}

	return "."
}

// trimPrefixDir returns relPath relative to level (a directory on relPath's
// chain), with no leading '/'.
func trimPrefixDir(relPath, level string) string {
	if level == "." || level == "" {
		return relPath
	}

	if relPath == level {
		return "."
	}

	return strings.TrimPrefix(relPath, level+"/")
}
