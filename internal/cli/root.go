package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/stridehq/stride/internal/storage"
	"github.com/stridehq/stride/internal/tracker"
)

// Context carries the shared dependencies into every command.
type Context struct {
	Store   storage.Provider
	Tracker *tracker.Tracker
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
