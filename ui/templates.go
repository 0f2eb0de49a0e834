package ui

import (
	"fmt"
	"html/template"
	"io/fs"
	"log"
)

var funcMap = template.FuncMap{
	"add": func(a, b int) int { return a + b },
	"sub": func(a, b int) int { return a - b },
}

// LoadTemplates parses the page and fragment templates in fsys. Each template
// is named by its path, e.g. "fragments/task_details.html".
func LoadTemplates(fsys fs.FS) (*template.Template, error) {
	pages, err := fs.Glob(fsys, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to glob page templates: %w", err)
	}
	fragments, err := fs.Glob(fsys, "fragments/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to glob fragment templates: %w", err)
	}

	files := append(pages, fragments...)
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found")
	}

	t := template.New("").Funcs(funcMap)
	for _, file := range files {
		content, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", file, err)
		}
		if _, err := t.New(file).Parse(string(content)); err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", file, err)
		}
	}

	log.Printf("[TemplateInit] Parsed %d templates", len(files))
	return t, nil
}
