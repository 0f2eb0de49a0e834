package ui

import (
	"bytes"
	"math"
	"net/http"

	"occustats/adapters/excel"
	"occustats/internal/errors"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// handleExport downloads the caller's whole occupation table as a workbook
func (s *Server) handleExport(c *gin.Context) {
	view := currentView(c)
	if view.Table == nil {
		s.respondError(c, errors.InternalError("occupation table has not been computed"))
		return
	}

	rows := make([][]interface{}, 0, len(view.Table.Records))
	for _, r := range view.Table.Records {
		rows = append(rows, []interface{}{
			r.Occupation,
			r.Task,
			cellValue(r.AutomationPercentage),
			cellValue(r.AugmentationPercentage),
			cellValue(r.ProductivityMultiplier),
		})
	}

	if err := s.exportSem.Acquire(c.Request.Context(), 1); err != nil {
		s.respondError(c, errors.Wrap(err, "export cancelled"))
		return
	}
	defer s.exportSem.Release(1)

	var buf bytes.Buffer
	if err := excel.WriteTable(&buf, "Occupation Tasks", view.Table.Columns, rows); err != nil {
		s.respondError(c, errors.RenderFailed("occupation table workbook", err))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+exportName(view.Occupation)+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// cellValue leaves missing numerics blank
func cellValue(v float64) interface{} {
	if math.IsNaN(v) {
		return ""
	}
	return v
}

func exportName(occ string) string {
	if occ == "" {
		return "occupation-table.xlsx"
	}
	var b []byte
	for _, r := range occ {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b = append(b, byte(r))
		case r >= 'A' && r <= 'Z':
			b = append(b, byte(r-'A'+'a'))
		default:
			if len(b) > 0 && b[len(b)-1] != '-' {
				b = append(b, '-')
			}
		}
	}
	slug := string(bytes.TrimRight(b, "-"))
	if slug == "" {
		return "occupation-table.xlsx"
	}
	return "occupation-table-" + slug + ".xlsx"
}
