package ui

import (
	"io/fs"
	"log"
	"net/http"
)

// setupMiddleware configures static file serving; gin.Default already
// installs the logger and recovery middleware.
func (s *Server) setupMiddleware() {
	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		log.Printf("[setupMiddleware] Error creating static filesystem: %v", err)
		return
	}
	s.router.StaticFS("/static", http.FS(staticFS))
}
