package pathutil

import (
	"os"
	"path/filepath"
	"strings"
)

// Expand resolves a leading ~/ to the user's home directory and
// substitutes $VAR and ${VAR} references from the environment.
func Expand(path string) string {
	path = os.ExpandEnv(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return path
}
