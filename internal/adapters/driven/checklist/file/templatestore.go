package file

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/equipcheck/internal/core/domain"
	"github.com/custodia-labs/equipcheck/internal/core/ports/driven"
	"github.com/custodia-labs/equipcheck/internal/logger"
)

// Ensure TemplateStore implements the interface.
var _ driven.ChecklistStore = (*TemplateStore)(nil)

//go:embed default_checklist.toml
var defaultTemplate []byte

// TemplateStore loads the checklist template from a TOML file on disk with
// fallback to the embedded default.
//
// The store uses lazy initialisation: the file is only created on the first
// Load, not in the constructor.
type TemplateStore struct {
	path     string
	initOnce sync.Once
	initErr  error
}

// NewTemplateStore creates a new file-based template store.
// If path is empty, defaults to ~/.equipcheck/checklist.toml.
func NewTemplateStore(path string) (*TemplateStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		path = filepath.Join(home, ".equipcheck", "checklist.toml")
	}
	return &TemplateStore{path: path}, nil
}

// Load returns the template, reading the file on every call so edits apply
// to the next inspection. When the file cannot be created the embedded default
// is used; a file that exists but does not parse is an error.
func (s *TemplateStore) Load(ctx context.Context) (domain.ChecklistTemplate, error) {
	if err := ctx.Err(); err != nil {
		return domain.ChecklistTemplate{}, err
	}

	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		logger.Warn("checklist template unavailable, using built-in default: %v", s.initErr)
		return DefaultTemplate()
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultTemplate()
		}
		return domain.ChecklistTemplate{}, fmt.Errorf("read checklist template: %w", err)
	}

	tmpl, err := parseTemplate(data)
	if err != nil {
		return domain.ChecklistTemplate{}, fmt.Errorf("parse %s: %w", s.path, err)
	}
	logger.Debug("loaded checklist template %s: %d section(s), %d question(s)",
		s.path, len(tmpl.Sections), tmpl.QuestionCount())
	return tmpl, nil
}

// Path returns the template file path.
func (s *TemplateStore) Path() string {
	return s.path
}

// DefaultTemplate returns the embedded template.
func DefaultTemplate() (domain.ChecklistTemplate, error) {
	return parseTemplate(defaultTemplate)
}

// initialise writes the default template if no file exists yet.
// Called once via sync.Once on first Load.
func (s *TemplateStore) initialise() {
	if _, err := os.Stat(s.path); !errors.Is(err, os.ErrNotExist) {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		s.initErr = fmt.Errorf("create checklist directory: %w", err)
		return
	}
	if err := os.WriteFile(s.path, defaultTemplate, 0600); err != nil {
		s.initErr = fmt.Errorf("create default checklist: %w", err)
	}
}

// parseTemplate decodes and cleans a template. Blank questions are dropped,
// as are sections left without questions.
func parseTemplate(data []byte) (domain.ChecklistTemplate, error) {
	var raw domain.ChecklistTemplate
	if err := toml.Unmarshal(data, &raw); err != nil {
		return domain.ChecklistTemplate{}, err
	}

	tmpl := domain.ChecklistTemplate{Sections: make([]domain.ChecklistSection, 0, len(raw.Sections))}
	for i, sec := range raw.Sections {
		name := strings.TrimSpace(sec.Name)
		if name == "" {
			return domain.ChecklistTemplate{}, fmt.Errorf("section %d: %w: missing name", i+1, domain.ErrInvalidInput)
		}
		questions := make([]string, 0, len(sec.Questions))
		for _, q := range sec.Questions {
			if q = strings.TrimSpace(q); q != "" {
				questions = append(questions, q)
			}
		}
		if len(questions) == 0 {
			continue
		}
		tmpl.Sections = append(tmpl.Sections, domain.ChecklistSection{Name: name, Questions: questions})
	}
	return tmpl, nil
}
