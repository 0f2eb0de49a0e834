package ui

import (
	stderrors "errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"occustats/internal/charts"
	"occustats/internal/errors"
	"occustats/internal/reactive"
	"occustats/internal/selector"
	"occustats/ui/middleware"

	"github.com/gin-gonic/gin"
)

type chartView struct {
	ID        string
	Title     string
	Kind      charts.Kind
	Src       string
	Narrative template.HTML
}

// pageData feeds the index page and every fragment
type pageData struct {
	Charts      []chartView
	Occupations []string
	View        selector.View
	Page        selector.Page

	// Set for callback responses
	OOB               bool
	Update            reactive.Update
	RefreshTaskSelect bool
}

// Changed reports whether the last callback touched node id
func (d pageData) Changed(id string) bool {
	return d.Update.Changed(id)
}

func (s *Server) chartViews() []chartView {
	views := make([]chartView, 0, len(s.c.Charts))
	for _, spec := range s.c.Charts {
		views = append(views, chartView{
			ID:    spec.ID,
			Title: spec.Title,
			Kind:  spec.Kind,
			Src:   "/charts/" + spec.ID,
			// Narratives are rendered by gomarkdown with raw HTML skipped
			Narrative: template.HTML(spec.NarrativeHTML),
		})
	}
	return views
}

func currentView(c *gin.Context) selector.View {
	var view selector.View
	middleware.CurrentSession(c).Read(func(st *reactive.State) {
		view = selector.ViewOf(st)
	})
	return view
}

func tablePage(view selector.View, n int) (selector.Page, error) {
	if view.Table == nil {
		return selector.Page{}, errors.InternalError("occupation table has not been computed")
	}
	return view.Table.Page(n)
}

// handleIndex serves the full dashboard for the caller's current selection
func (s *Server) handleIndex(c *gin.Context) {
	view := currentView(c)
	page, err := tablePage(view, 1)
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.renderHTML(c, http.StatusOK, "index.html", pageData{
		Charts:      s.chartViews(),
		Occupations: s.c.Dashboard.OccupationOptions(),
		View:        view,
		Page:        page,
	})
}

// handleCallback sets one input from the form field "value" and answers with
// out-of-band fragments for HTMX or the update as JSON otherwise
func (s *Server) handleCallback(c *gin.Context) {
	input := c.Param("input")
	if !s.c.Dashboard.Graph().IsInput(input) {
		s.respondError(c, errors.InvalidInput(fmt.Sprintf("unknown input %q", input)))
		return
	}
	value := c.PostForm("value")

	var (
		update reactive.Update
		view   selector.View
	)
	err := middleware.CurrentSession(c).Do(func(st *reactive.State) error {
		u, err := s.c.Dashboard.Select(c.Request.Context(), st, input, value)
		if err != nil {
			return err
		}
		update = u
		view = selector.ViewOf(st)
		return nil
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.logger.Debug("%s=%q changed inputs %v, recomputed %v", input, value, update.Inputs, update.Outputs)

	if !isHTMX(c) {
		c.JSON(http.StatusOK, gin.H{
			"inputs":  update.Inputs,
			"outputs": update.Outputs,
			"state":   view,
		})
		return
	}

	page, err := tablePage(view, 1)
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.renderHTML(c, http.StatusOK, "fragments/callback.html", pageData{
		View:   view,
		Page:   page,
		OOB:    true,
		Update: update,
		// a reset of the task input needs the dropdown redrawn too
		RefreshTaskSelect: update.Changed(selector.OutputTaskOptions) ||
			(input != selector.InputTask && update.Changed(selector.InputTask)),
	})
}

// handleTablePage serves one page of the current occupation table
func (s *Server) handleTablePage(c *gin.Context) {
	n := 1
	if raw := c.Query("page"); raw != "" {
		var err error
		if n, err = strconv.Atoi(raw); err != nil {
			s.respondError(c, errors.InvalidInput(fmt.Sprintf("page %q is not a number", raw)))
			return
		}
	}

	view := currentView(c)
	page, err := tablePage(view, n)
	if err != nil {
		s.respondError(c, err)
		return
	}

	if !isHTMX(c) {
		c.JSON(http.StatusOK, page)
		return
	}
	s.renderHTML(c, http.StatusOK, "fragments/occupation_table.html", pageData{View: view, Page: page})
}

// handleChart serves a chart rendered at startup
func (s *Server) handleChart(c *gin.Context) {
	id := c.Param("id")
	img, ok := s.c.ChartImages[id]
	if !ok {
		s.respondError(c, errors.NotFound(fmt.Sprintf("chart %q", id)))
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, s.c.Renderer.ContentType(), img)
}

func (s *Server) handleChartSpecs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"charts": s.c.Charts})
}

// handleChartSpec returns one chart's points, axis summaries and narrative
func (s *Server) handleChartSpec(c *gin.Context) {
	id := c.Param("id")
	spec, ok := charts.Find(s.c.Charts, id)
	if !ok {
		s.respondError(c, errors.NotFound(fmt.Sprintf("chart %q", id)))
		return
	}
	c.JSON(http.StatusOK, spec)
}

func (s *Server) handleState(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	c.JSON(http.StatusOK, gin.H{
		"session": sess.ID.String(),
		"version": sess.Version(),
		"state":   currentView(c),
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"occupations": len(s.c.Dashboard.OccupationOptions()),
		"sessions":    s.c.Sessions.Len(),
	})
}

// respondError writes {error, code}. A failed output computation is a server
// error whatever its underlying code.
func (s *Server) respondError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	var computeErr *reactive.ComputeError
	if stderrors.As(err, &computeErr) {
		status = http.StatusInternalServerError
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	} else {
		s.logger.Debug("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.AbortWithStatusJSON(status, gin.H{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}
