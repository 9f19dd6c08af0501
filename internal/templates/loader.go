package templates

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"
	"text/template"
)

//go:embed files
var filesFS embed.FS

// Common template paths
const (
	ToolHelpTemplate       = "tools/help_template.md"
	ToolSurpresaGastos     = "tools/surpresa_gastos.md"
	ToolLembreteEmprestimo = "tools/lembrete_emprestimo.md"
	MessageLoanReminder    = "messages/loan_reminder.tmpl"
)

// Loader loads text assets and message templates from embedded files
type Loader struct {
	cache  map[string]string
	parsed map[string]*template.Template
	mu     sync.RWMutex
}

// NewLoader creates a new loader
func NewLoader() *Loader {
	return &Loader{
		cache:  make(map[string]string),
		parsed: make(map[string]*template.Template),
	}
}

// Load loads a file from the embedded filesystem
func (l *Loader) Load(name string) (string, error) {
	l.mu.RLock()
	if content, ok := l.cache[name]; ok {
		l.mu.RUnlock()
		return content, nil
	}
	l.mu.RUnlock()

	content, err := filesFS.ReadFile(path.Join("files", name))
	if err != nil {
		return "", fmt.Errorf("failed to load template %s: %w", name, err)
	}

	text := strings.TrimRight(string(content), "\n")

	l.mu.Lock()
	l.cache[name] = text
	l.mu.Unlock()

	return text, nil
}

// MustLoad loads a file and panics on error (for initialization)
func (l *Loader) MustLoad(name string) string {
	content, err := l.Load(name)
	if err != nil {
		panic(fmt.Sprintf("failed to load required template %s: %v", name, err))
	}
	return content
}

// Render executes a message template with the given data
func (l *Loader) Render(name string, data any) (string, error) {
	tmpl, err := l.template(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return buf.String(), nil
}

func (l *Loader) template(name string) (*template.Template, error) {
	l.mu.RLock()
	if tmpl, ok := l.parsed[name]; ok {
		l.mu.RUnlock()
		return tmpl, nil
	}
	l.mu.RUnlock()

	text, err := l.Load(name)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New(path.Base(name)).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	l.mu.Lock()
	l.parsed[name] = tmpl
	l.mu.Unlock()

	return tmpl, nil
}

// List returns all embedded files, relative to the files root
func (l *Loader) List() ([]string, error) {
	var names []string

	err := fs.WalkDir(filesFS, "files", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			names = append(names, strings.TrimPrefix(p, "files/"))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	return names, nil
}

// Global loader instance
var defaultLoader = NewLoader()

// Load is a convenience function using the default loader
func Load(name string) (string, error) {
	return defaultLoader.Load(name)
}

// MustLoad is a convenience function using the default loader
func MustLoad(name string) string {
	return defaultLoader.MustLoad(name)
}

// Render is a convenience function using the default loader
func Render(name string, data any) (string, error) {
	return defaultLoader.Render(name, data)
}
