package prompt

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/davidbz/promptgate/internal/domain"
	"github.com/davidbz/promptgate/internal/observability"
)

const (
	templateFileName = "skprompt.txt"
	sidecarFileName  = "config.json"
)

// FileStore loads a template from a prompt directory holding skprompt.txt
// and an optional config.json.
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Load reads the template and sidecar from disk.
func (s *FileStore) Load(ctx context.Context) (*domain.PromptTemplate, error) {
	logger := observability.FromContext(ctx)

	templatePath := filepath.Join(s.dir, templateFileName)
	text, err := os.ReadFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt template %s: %w", templatePath, err)
	}

	var opts []domain.TemplateOption

	sidecarPath := filepath.Join(s.dir, sidecarFileName)
	data, err := os.ReadFile(sidecarPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Debug("no prompt config found", observability.String("path", sidecarPath))
	case err != nil:
		return nil, fmt.Errorf("failed to read prompt config %s: %w", sidecarPath, err)
	default:
		opts, err = parseSidecar(data)
		if err != nil {
			return nil, err
		}
	}

	name := filepath.Base(filepath.Clean(s.dir))

	tmpl, err := domain.NewPromptTemplate(name, string(text), opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid prompt template %s: %w", templatePath, err)
	}

	logger.Info("prompt template loaded",
		observability.String("template", name),
		observability.String("source", templatePath),
		observability.Int("length", len(text)))

	return tmpl, nil
}
