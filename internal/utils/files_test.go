package utils

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// chdir mirrors testing.T.Chdir, which is unavailable before Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()

	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory due to %s", err.Error())
	}

	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory due to %s", err.Error())
	}

	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Errorf("Failed to restore working directory due to %s", err.Error())
		}
	})
}

func TestModuleRoot(t *testing.T) {
	root := t.TempDir()

	gomod := []byte("module example.com/testmod\n\ngo 1.25\n")
	if err := os.WriteFile(filepath.Join(root, "go.mod"), gomod, 0644); err != nil {
		t.Fatalf("Failed to write go.mod due to %s", err.Error())
	}

	sub := filepath.Join(root, "internal", "deep")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatalf("Failed to create subdirectory due to %s", err.Error())
	}

	chdir(t, sub)

	got, err := ModuleRoot()
	if err != nil {
		t.Fatalf("Failed to call ModuleRoot due to %s", err.Error())
	}

	// TempDir may sit behind a symlink, resolve both sides before comparing.
	wantResolved, _ := filepath.EvalSymlinks(root)
	gotResolved, _ := filepath.EvalSymlinks(got)
	if gotResolved != wantResolved {
		t.Errorf("got: %s, want: %s.", gotResolved, wantResolved)
	}
}

func TestModuleRootSkipsInvalidModfile(t *testing.T) {
	root := t.TempDir()

	gomod := []byte("module example.com/testmod\n\ngo 1.25\n")
	if err := os.WriteFile(filepath.Join(root, "go.mod"), gomod, 0644); err != nil {
		t.Fatalf("Failed to write go.mod due to %s", err.Error())
	}

	sub := filepath.Join(root, "broken")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatalf("Failed to create subdirectory due to %s", err.Error())
	}

	// A go.mod with no module directive must not count as a root.
	if err := os.WriteFile(filepath.Join(sub, "go.mod"), []byte("// empty\n"), 0644); err != nil {
		t.Fatalf("Failed to write broken go.mod due to %s", err.Error())
	}

	chdir(t, sub)

	got, err := ModuleRoot()
	if err != nil {
		t.Fatalf("Failed to call ModuleRoot due to %s", err.Error())
	}

	wantResolved, _ := filepath.EvalSymlinks(root)
	gotResolved, _ := filepath.EvalSymlinks(got)
	if gotResolved != wantResolved {
		t.Errorf("got: %s, want: %s.", gotResolved, wantResolved)
	}
}

func TestResolveModulePath(t *testing.T) {
	root := t.TempDir()

	gomod := []byte("module example.com/testmod\n\ngo 1.25\n")
	if err := os.WriteFile(filepath.Join(root, "go.mod"), gomod, 0644); err != nil {
		t.Fatalf("Failed to write go.mod due to %s", err.Error())
	}

	chdir(t, root)

	got, err := ResolveModulePath(filepath.Join("assets", "icon.svg"))
	if err != nil {
		t.Fatalf("Failed to call ResolveModulePath due to %s", err.Error())
	}

	if filepath.Base(got) != "icon.svg" || filepath.Base(filepath.Dir(got)) != "assets" {
		t.Errorf("got: %s, want a path ending in assets/icon.svg.", got)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.txt")

	if err := os.WriteFile(path, []byte("hello world"), 0644); err != nil {
		t.Fatalf("Failed to write test file due to %s", err.Error())
	}

	got, err := ReadFile(context.Background(), path)
	if err != nil {
		t.Fatalf("Failed to call ReadFile due to %s", err.Error())
	}

	if got != "hello world" {
		t.Errorf("got: %s, want: hello world.", got)
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Fatal("Expected ReadFile to fail on a missing file")
	}
}

func TestReadFileCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ReadFile(ctx, filepath.Join(t.TempDir(), "nope.txt"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
