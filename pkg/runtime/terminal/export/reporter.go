package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/revenue-atlas/pkg/models/api"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
)

type TableConfig struct {
	NameWidth  int
	ValueWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:  20,
		ValueWidth: 36,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Handle(report api.RevenueReport, format string) error {
	switch format {
	case FormatJSON:
		return c.writeJSON(report)
	case FormatTable, "":
		return c.writeTable(report)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func (c *Reporter) HandleProperties(properties []api.Property) error {
	if len(properties) == 0 {
		_, err := fmt.Fprintln(c.writer, "No properties found")
		return err
	}
	for _, p := range properties {
		if _, err := fmt.Fprintf(c.writer, "%-*s %s\n", c.config.NameWidth, p.ID, p.Name); err != nil {
			return err
		}
	}
	return nil
}

func (c *Reporter) writeJSON(report api.RevenueReport) error {
	enc := json.NewEncoder(c.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func (c *Reporter) writeTable(report api.RevenueReport) error {
	funcMap := template.FuncMap{
		"formatRow": func(name string, value interface{}) string {
			return fmt.Sprintf("| %-*s | %-*v |",
				c.config.NameWidth, name,
				c.config.ValueWidth, value)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2))
		},
		"month": func(m *string) string {
			if m == nil {
				return "n/a"
			}
			return *m
		},
		"trend": func(t *float64) string {
			if t == nil {
				return "n/a"
			}
			return fmt.Sprintf("%+.1f%%", *t)
		},
	}

	tmpl := `
Revenue summary for property {{.PropertyID}} (tenant {{.TenantID}})

{{separator}}
{{formatRow "Report month" (month .ReportMonth)}}
{{formatRow "Total" (printf "%s %s" .Total .Currency)}}
{{formatRow "Reservations" .Count}}
{{formatRow "Trend vs prior" (trend .TrendPercentage)}}
{{separator}}
`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}
