package charts

import (
	"fmt"
	"strings"

	"occustats/internal/profiling"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// significanceLevel is the p-value below which a correlation is called significant
const significanceLevel = 0.05

type pair struct {
	xName, yName string
	x, y         []float64
}

// narrative writes one Markdown sentence per column pair, quoting the computed correlation
func narrative(pairs []pair, occupations int) string {
	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteString(" ")
		}
		c, err := profiling.Correlate(p.x, p.y)
		if err != nil {
			fmt.Fprintf(&b, "The correlation between %s and %s cannot be computed (%v).", p.xName, p.yName, err)
			continue
		}
		fmt.Fprintf(&b, "There is a **%s %s** correlation of approximately **%.2f** between %s and %s (p = %.3f",
			c.Strength, c.Direction(), c.R, p.xName, p.yName, c.PValue)
		if c.Significant(significanceLevel) {
			b.WriteString(", statistically significant")
		}
		b.WriteString(").")
	}
	fmt.Fprintf(&b, "\n\n_Computed over %d occupations._\n", occupations)
	return b.String()
}

// RenderMarkdown converts a narrative to HTML. Raw HTML in the source is skipped.
func RenderMarkdown(md string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.SkipHTML})
	return string(markdown.ToHTML([]byte(md), p, r))
}
