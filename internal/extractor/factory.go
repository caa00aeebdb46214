package extractor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Factory picks a ContentLoader for a file
type Factory struct{}

// NewFactory creates a new loader factory
func NewFactory() *Factory {
	return &Factory{}
}

// GetLoaderForFile returns the loader matching the file extension.
// Unknown extensions are treated as plain text.
func (f *Factory) GetLoaderForFile(path string) (ContentLoader, string) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".pdf":
		return &PDFLoader{}, ext
	case ".xlsx":
		return &ExcelLoader{}, ext
	default:
		return &TextLoader{}, ext
	}
}

// Load opens path and returns its content as one buffer with line breaks
// removed. Callers that must not fail on unreadable files treat the error as
// empty content.
func (f *Factory) Load(path string) (string, error) {
	loader, ext := f.GetLoaderForFile(path)

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	content, err := loader.Load(file)
	if err != nil {
		return "", fmt.Errorf("load %s content: %w", ext, err)
	}
	return content, nil
}
