package pptx

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultUploadsDir is where user-supplied base templates are looked up
const DefaultUploadsDir = "/mnt/user-data/uploads"

// CustomTemplate is a base presentation found on disk
type CustomTemplate struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Filename string `json:"filename"`
}

// FindCustomTemplates lists .pptx and .ppt files in dir sorted by file
// name. A missing directory yields an empty list.
func FindCustomTemplates(dir string) ([]CustomTemplate, error) {
	if dir == "" {
		dir = DefaultUploadsDir
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []CustomTemplate{}, nil
		}
		return nil, fmt.Errorf("reading uploads directory: %w", err)
	}

	templates := make([]CustomTemplate, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		switch strings.ToLower(ext) {
		case ".pptx", ".ppt":
		default:
			continue
		}
		templates = append(templates, CustomTemplate{
			Name:     strings.TrimSuffix(name, ext),
			Path:     filepath.Join(dir, name),
			Filename: name,
		})
	}

	sort.Slice(templates, func(i, j int) bool {
		return templates[i].Filename < templates[j].Filename
	})
	return templates, nil
}
