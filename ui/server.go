package ui

import (
	"embed"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"os"
	"runtime"

	"occustats/internal"
	"occustats/internal/container"
	"occustats/ui/middleware"
	"occustats/ui/services"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"
)

//go:embed templates static
var embeddedFiles embed.FS

// Server represents the dashboard web server
type Server struct {
	router *gin.Engine
	c      *container.Container
	render *services.RenderService
	logger *internal.Logger

	// bounds concurrent workbook builds
	exportSem *semaphore.Weighted
}

// NewServer builds the router over an initialized container. Templates come
// from the embedded files unless reloading is enabled in gin debug mode, in
// which case they are parsed from the configured directory on every render.
func NewServer(c *container.Container) (*Server, error) {
	cfg := c.Config.Server
	reload := cfg.ReloadTemplates && gin.IsDebugging()

	var load services.TemplateLoader
	if reload {
		dir := cfg.TemplatesDir
		log.Printf("[TemplateInit] Reloading templates from %s on every render", dir)
		load = func() (*template.Template, error) { return LoadTemplates(os.DirFS(dir)) }
	} else {
		templatesFS, err := fs.Sub(embeddedFiles, "templates")
		if err != nil {
			return nil, err
		}
		load = func() (*template.Template, error) { return LoadTemplates(templatesFS) }
	}

	render, err := services.NewRenderService(load, reload)
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:    gin.Default(),
		c:         c,
		render:    render,
		logger:    c.Logger.Named("UI"),
		exportSem: semaphore.NewWeighted(int64(runtime.NumCPU())),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	// Static charts
	s.router.GET("/charts/:id", s.handleChart)
	s.router.GET("/api/charts", s.handleChartSpecs)
	s.router.GET("/api/charts/:id", s.handleChartSpec)

	// Everything below reads or changes the caller's selection
	sessioned := s.router.Group("/", middleware.Session(s.c.Sessions, s.c.Config.Dashboard.SessionTTL))
	sessioned.GET("/", s.handleIndex)
	sessioned.POST("/callbacks/:input", s.handleCallback)
	sessioned.GET("/fragments/occupation-table", s.handleTablePage)
	sessioned.GET("/api/state", s.handleState)
	sessioned.GET("/export/occupation-table.xlsx", s.handleExport)
}

// Handler exposes the router for an http.Server or httptest
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) renderHTML(c *gin.Context, status int, name string, data interface{}) {
	body, err := s.render.Render(name, data)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.Data(status, "text/html; charset=utf-8", body)
}

func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}
