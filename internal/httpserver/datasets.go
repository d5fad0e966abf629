package httpserver

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed responses/*.json
var embeddedResponses embed.FS

var errDatasetNotFound = errors.New("dataset not found")

// readDataset returns the JSON for name, preferring dataDir over the
// embedded samples. name must be a bare "<id>.json" file name.
func readDataset(dataDir, name string) ([]byte, error) {
	if name != filepath.Base(name) || !strings.HasSuffix(name, ".json") || strings.HasPrefix(name, ".") {
		return nil, errDatasetNotFound
	}

	if dataDir != "" {
		b, err := os.ReadFile(filepath.Join(dataDir, name))
		if err == nil {
			return b, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	b, err := embeddedResponses.ReadFile("responses/" + name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errDatasetNotFound
	}
	return b, err
}
