package utils

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/mod/modfile"
)

// ErrNoModuleRoot - No go.mod in the working directory or any parent.
var ErrNoModuleRoot = errors.New("ModuleRoot: no go.mod found in any parent directory")

// ModuleRoot walks up from the working directory to the nearest directory
// whose go.mod declares a module path and returns that directory.
func ModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory for ModuleRoot: %w", err)
	}

	return moduleRootFrom(dir)
}

func moduleRootFrom(dir string) (string, error) {
	for {
		data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
		if err == nil && modfile.ModulePath(data) != "" {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoModuleRoot
		}

		dir = parent
	}
}

// ResolveModulePath resolves rel against the module root.
func ResolveModulePath(rel string) (string, error) {
	root, err := ModuleRoot()
	if err != nil {
		return "", err
	}

	return filepath.Join(root, rel), nil
}

// ReadFile reads the whole file at path off the calling goroutine and
// returns its contents as a string. Cancelling the context abandons the
// wait, not the underlying read.
func ReadFile(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		data []byte
		err  error
	}

	ch := make(chan result, 1)

	go func() {
		data, err := os.ReadFile(path)
		ch <- result{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.err != nil {
			return "", fmt.Errorf("failed to read file %s: %w", path, res.err)
		}
		return string(res.data), nil
	}
}
