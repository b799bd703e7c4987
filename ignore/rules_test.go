package ignore

import "testing"

func TestRulesBasicIgnore(t *testing.T) {
	t.Parallel()

	r := New("*.log", "!keep.log")

	if !r.Ignored("debug.log", false) {
		t.Error("debug.log should be ignored")
	}

	if r.Ignored("keep.log", false) {
		t.Error("keep.log should be rescued by negation")
	}
}

func TestRulesDirOnly(t *testing.T) {
	t.Parallel()

	r := New("build/")

	if !r.Ignored("build", true) {
		t.Error("build/ as directory should be ignored")
	}

	if r.Ignored("build", false) {
		t.Error("build/ should not match a non-directory")
	}
}

func TestRulesRooted(t *testing.T) {
	t.Parallel()

	r := New("/config.yaml")

	if !r.Ignored("config.yaml", false) {
		t.Error("/config.yaml should match the root file")
	}

	if r.Ignored("sub/config.yaml", false) {
		t.Error("/config.yaml must not match a nested file")
	}
}

func TestRulesPathContaining(t *testing.T) {
	t.Parallel()

	r := New("src/*.o")

	if !r.Ignored("src/a.o", false) {
		t.Error("src/*.o should match src/a.o")
	}

	if r.Ignored("other/a.o", false) {
		t.Error("src/*.o must not match other/a.o")
	}
}

func TestRulesDoubleStar(t *testing.T) {
	t.Parallel()

	r := New("**/vendor")

	if !r.Ignored("vendor", true) {
		t.Error("**/vendor should match top-level vendor")
	}

	if !r.Ignored("a/b/vendor", true) {
		t.Error("**/vendor should match nested vendor")
	}
}

func TestRulesNegationRequiresParentNotExcluded(t *testing.T) {
	t.Parallel()

	// Classic gitignore gotcha: re-including a file inside an excluded
	// directory does not work unless the directory itself is re-included.
	r := New("a/", "!a/keep.txt")

	if !r.Ignored("a/keep.txt", false) {
		t.Error("negation inside an excluded ancestor should not rescue the file")
	}
}

func TestRulesNegationWithReincludedDir(t *testing.T) {
	t.Parallel()

	r := New("a/*", "!a/keep.txt")

	if r.Ignored("a/keep.txt", false) {
		t.Error("a/keep.txt should be rescued: parent 'a' itself is not excluded")
	}

	if !r.Ignored("a/other.txt", false) {
		t.Error("a/other.txt should remain ignored")
	}
}

func TestRulesLastMatchWins(t *testing.T) {
	t.Parallel()

	r := New("*.txt", "!a.txt", "a.txt")

	if !r.Ignored("a.txt", false) {
		t.Error("last matching rule should win: a.txt should be ignored again")
	}
}

func TestRulesCommentsAndBlankLines(t *testing.T) {
	t.Parallel()

	r := New("# a comment", "", "*.tmp")

	if !r.Ignored("x.tmp", false) {
		t.Error("*.tmp should still be ignored")
	}
}

func TestRulesEscapedHashAndBang(t *testing.T) {
	t.Parallel()

	r := New(`\#literal`, `\!literal`)

	if !r.Ignored("#literal", false) {
		t.Error("escaped # should be treated as a literal pattern")
	}

	if !r.Ignored("!literal", false) {
		t.Error("escaped ! should be treated as a literal pattern")
	}
}

func TestShouldSkipDirectorySimple(t *testing.T) {
	t.Parallel()

	r := New("node_modules/")

	if !r.ShouldSkipDirectory("node_modules") {
		t.Error("node_modules should be skippable")
	}

	if r.ShouldSkipDirectory("src") {
		t.Error("src should not be skippable")
	}
}

func TestShouldSkipDirectoryInhibitedByNegation(t *testing.T) {
	t.Parallel()

	r := New("build/", "!build/keep")

	if r.ShouldSkipDirectory("build") {
		t.Error("build should not be prunable: a later negation could reach inside it")
	}
}

func TestShouldSkipDirectoryNegationElsewhereDoesNotInhibit(t *testing.T) {
	t.Parallel()

	r := New("build/", "!other/keep")

	if !r.ShouldSkipDirectory("build") {
		t.Error("a negation for an unrelated directory must not block pruning of build")
	}
}

func TestRulesCaseFold(t *testing.T) {
	t.Parallel()

	r := NewOptions(Options{CaseFold: true}, "*.LOG")

	if !r.Ignored("debug.log", false) {
		t.Error("with CaseFold, *.LOG should match debug.log")
	}
}
