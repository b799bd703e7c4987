package ignore

import (
	"testing"
	"testing/fstest"
)

func TestProviderSingleLevel(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		".gitignore": &fstest.MapFile{Data: []byte("*.log\n!keep.log\n")},
	}

	p := NewProvider(fsys, ProviderOptions{})

	ignored, err := p.Ignored("debug.log", false)
	if err != nil {
		t.Fatal(err)
	}

	if !ignored {
		t.Error("debug.log should be ignored by root .gitignore")
	}

	ignored, err = p.Ignored("keep.log", false)
	if err != nil {
		t.Fatal(err)
	}

	if ignored {
		t.Error("keep.log should be rescued")
	}
}

func TestProviderHierarchical(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		".gitignore":     &fstest.MapFile{Data: []byte("*.tmp\n")},
		"src/.gitignore": &fstest.MapFile{Data: []byte("*.o\n")},
	}

	p := NewProvider(fsys, ProviderOptions{})

	ignored, err := p.Ignored("src/main.o", false)
	if err != nil {
		t.Fatal(err)
	}

	if !ignored {
		t.Error("src/main.o should be ignored by src/.gitignore")
	}

	ignored, err = p.Ignored("src/main.tmp", false)
	if err != nil {
		t.Fatal(err)
	}

	if !ignored {
		t.Error("src/main.tmp should be ignored by the root .gitignore")
	}

	ignored, err = p.Ignored("src/main.c", false)
	if err != nil {
		t.Fatal(err)
	}

	if ignored {
		t.Error("src/main.c should not be ignored")
	}
}

func TestProviderNestedOverridesRoot(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		".gitignore":     &fstest.MapFile{Data: []byte("*.log\n")},
		"logs/.gitignore": &fstest.MapFile{Data: []byte("!important.log\n")},
	}

	p := NewProvider(fsys, ProviderOptions{})

	ignored, err := p.Ignored("logs/important.log", false)
	if err != nil {
		t.Fatal(err)
	}

	if ignored {
		t.Error("a nested .gitignore negation should rescue the file")
	}

	ignored, err = p.Ignored("logs/other.log", false)
	if err != nil {
		t.Fatal(err)
	}

	if !ignored {
		t.Error("logs/other.log should still be ignored by the root rule")
	}
}

func TestProviderShouldSkipDirectory(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		".gitignore": &fstest.MapFile{Data: []byte("build/\n")},
	}

	p := NewProvider(fsys, ProviderOptions{})

	skip, err := p.ShouldSkipDirectory("build")
	if err != nil {
		t.Fatal(err)
	}

	if !skip {
		t.Error("build should be prunable")
	}
}

func TestProviderShouldSkipDirectoryInhibitedByNestedNegation(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		".gitignore":           &fstest.MapFile{Data: []byte("build/\n")},
		"build/.gitignore":     &fstest.MapFile{Data: []byte("!keep\n")},
	}

	p := NewProvider(fsys, ProviderOptions{})

	skip, err := p.ShouldSkipDirectory("build")
	if err != nil {
		t.Fatal(err)
	}

	if skip {
		t.Error("build's own .gitignore has a negation, pruning must be inhibited")
	}
}

func TestProviderNoIgnoreFilesAnywhere(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"src/main.go": &fstest.MapFile{Data: []byte("package main\n")},
	}

	p := NewProvider(fsys, ProviderOptions{})

	ignored, err := p.Ignored("src/main.go", false)
	if err != nil {
		t.Fatal(err)
	}

	if ignored {
		t.Error("nothing should be ignored with no .gitignore files present")
	}
}
