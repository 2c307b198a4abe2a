// Package output renders command results as a table, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/jrsteele09/go-auth-console/internal/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"gopkg.in/yaml.v3"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

var formats = []string{FormatTable, FormatJSON, FormatYAML}

// Table is the tabular form of a result. Empty is printed instead of a table with no rows.
type Table struct {
	Headers []string
	Rows    [][]string
	Empty   string
}

// Append adds a row.
func (t *Table) Append(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// KeyValue builds a two column table, one field per row.
func KeyValue(pairs ...[2]string) Table {
	t := Table{Headers: []string{"Field", "Value"}}
	for _, p := range pairs {
		t.Append(p[0], p[1])
	}
	return t
}

func ValidateFormat(format string) error {
	if !slices.Contains(formats, format) {
		return errors.Validationf("output format %q must be one of %v", format, formats)
	}
	return nil
}

type Printer struct {
	w      io.Writer
	format string
}

func New(w io.Writer, format string) (*Printer, error) {
	if format == "" {
		format = FormatTable
	}
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	return &Printer{w: w, format: format}, nil
}

func (p *Printer) Format() string {
	return p.format
}

// Print writes v as JSON or YAML, or t when the format is table.
func (p *Printer) Print(v any, t Table) error {
	switch p.format {
	case FormatJSON:
		return p.printJSON(v)
	case FormatYAML:
		return p.printYAML(v)
	}
	return p.printTable(t)
}

// Message writes a line of text. It is dropped for JSON and YAML so their output stays
// machine readable.
func (p *Printer) Message(format string, args ...any) {
	if p.format != FormatTable {
		return
	}
	_, _ = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *Printer) printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(p.w, string(data))
	return err
}

// printYAML goes through JSON first so keys follow the json tags of the API records.
func (p *Printer) printYAML(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return enc.Close()
}

func (p *Printer) printTable(t Table) error {
	if len(t.Rows) == 0 && t.Empty != "" {
		_, err := fmt.Fprintln(p.w, t.Empty)
		return err
	}

	table := tablewriter.NewWriter(p.w)
	table.Options(
		tablewriter.WithHeader(t.Headers),
		tablewriter.WithRendition(
			tw.Rendition{
				Borders: tw.Border{
					Left:   tw.State(1),
					Top:    tw.State(1),
					Right:  tw.State(1),
					Bottom: tw.State(1),
				},
			},
		),
		tablewriter.WithAlignment(tw.MakeAlign(len(t.Headers), tw.AlignLeft)),
	)
	for _, row := range t.Rows {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("failed to append row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}
