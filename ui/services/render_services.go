package services

import (
	"bytes"
	"html/template"
	"log"

	"occustats/internal/errors"
)

// TemplateLoader parses the full template set
type TemplateLoader func() (*template.Template, error)

type RenderService struct {
	load      TemplateLoader
	reload    bool
	templates *template.Template
}

// NewRenderService parses the templates once. With reload set, every Render
// parses them again so edits on disk show up without a restart.
func NewRenderService(load TemplateLoader, reload bool) (*RenderService, error) {
	templates, err := load()
	if err != nil {
		return nil, err
	}
	return &RenderService{
		load:      load,
		reload:    reload,
		templates: templates,
	}, nil
}

// Render executes one named template into memory so a failure never leaves a
// half-written response.
func (s *RenderService) Render(name string, data interface{}) ([]byte, error) {
	templates := s.templates
	if s.reload {
		fresh, err := s.load()
		if err != nil {
			log.Printf("[RenderService] Template reload failed: %v", err)
			return nil, errors.RenderFailed("templates", err)
		}
		templates = fresh
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("[RenderService] Failed to render %s: %v", name, err)
		return nil, errors.RenderFailed(name, err)
	}
	return buf.Bytes(), nil
}
