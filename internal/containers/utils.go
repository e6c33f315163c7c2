package containers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
)

// Container is a running test dependency
type Container interface {
	Terminate(ctx context.Context)
}

// GetProjectRoot finds the module root, the nearest
// directory holding go.mod, starting from the working directory.
// Go runs the tests of a package from its own directory.
func GetProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return findModuleRoot(dir)
}

func findModuleRoot(dir string) (string, error) {
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("no go.mod found up to the filesystem root")
		}

		dir = parent
	}
}
