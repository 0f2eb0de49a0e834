package selector

import (
	"occustats/domain/occupation"
	"occustats/internal/errors"
)

// Table is the occupation table output: the selected occupation's rows
// restricted to the five display columns.
type Table struct {
	Columns  []string                          `json:"columns"`
	Rows     []occupation.Row                  `json:"rows"`
	Records  []occupation.OccupationTaskDetail `json:"-"`
	PageSize int                               `json:"page_size"`
}

// Page is one page of a Table; Number is 1-based
type Page struct {
	Columns []string         `json:"columns"`
	Rows    []occupation.Row `json:"rows"`
	Number  int              `json:"number"`
	Count   int              `json:"count"`
	Total   int              `json:"total"`
}

func newTable(rows []occupation.OccupationTaskDetail, pageSize int) *Table {
	return &Table{
		Columns:  append([]string(nil), occupation.TableColumns...),
		Rows:     occupation.TableRows(rows),
		Records:  rows,
		PageSize: pageSize,
	}
}

// PageCount is the number of pages; an empty table still has one (empty) page
func (t *Table) PageCount() int {
	if len(t.Rows) == 0 {
		return 1
	}
	return (len(t.Rows) + t.PageSize - 1) / t.PageSize
}

// Page returns page n, counting from 1
func (t *Table) Page(n int) (Page, error) {
	if n < 1 || n > t.PageCount() {
		return Page{}, errors.InvalidInput("page out of range")
	}
	start := (n - 1) * t.PageSize
	end := start + t.PageSize
	if end > len(t.Rows) {
		end = len(t.Rows)
	}
	return Page{
		Columns: t.Columns,
		Rows:    t.Rows[start:end],
		Number:  n,
		Count:   t.PageCount(),
		Total:   len(t.Rows),
	}, nil
}
