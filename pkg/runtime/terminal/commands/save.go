package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/de-tools/hostaway-atlas/pkg/models/domain"
	fileexport "github.com/de-tools/hostaway-atlas/pkg/store/export"
)

type saveFlags struct {
	dir    string
	format string
}

// save writes t under dir as base.<format> and returns the path.
func (s *saveFlags) save(base, title string, t *domain.Table) (string, error) {
	format, err := fileexport.ParseFormat(s.format)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, format.FileName(base))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := fileexport.Render(f, format, title, t); err != nil {
		return "", err
	}
	return path, f.Close()
}
