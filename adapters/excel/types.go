package excel

// RawRowData represents a row of raw Excel data as string key-value pairs
type RawRowData map[string]string

// ExcelData represents the complete Excel dataset
type ExcelData struct {
	Headers    []string     // Column headers
	Rows       []RawRowData // Data rows
	RowNumbers []int        // Record number of each row, header is record 1
}

// HasColumn reports whether the header row contains name
func (d *ExcelData) HasColumn(name string) bool {
	for _, h := range d.Headers {
		if h == name {
			return true
		}
	}
	return false
}
