package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sooquk/dashboard/internal/domain/shared"
)

// Column renders one table column
type Column[T any] struct {
	Header string
	Value  func(T) string
}

// Field is one labelled value of a detail view
type Field struct {
	Label string
	Value string
}

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// RenderTable writes rows under a header line
func RenderTable[T any](w io.Writer, cols []Column[T], rows []T) error {
	tw := newTabWriter(w)
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = strings.ToUpper(c.Header)
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	cells := make([]string, len(cols))
	for _, row := range rows {
		for i, c := range cols {
			cells[i] = cell(c.Value(row))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// RenderDetail writes one label/value pair per line
func RenderDetail(w io.Writer, fields []Field) error {
	tw := newTabWriter(w)
	for _, f := range fields {
		fmt.Fprintf(tw, "%s:\t%s\n", f.Label, cell(f.Value))
	}
	return tw.Flush()
}

// cell keeps a value on one line
func cell(s string) string {
	s = strings.NewReplacer("\t", " ", "\r", " ", "\n", " ").Replace(s)
	if s == "" {
		return "-"
	}
	return s
}

func badge(label string, tone shared.Tone) string {
	switch tone {
	case shared.ToneSuccess:
		return "✓ " + label
	case shared.ToneWarning:
		return "! " + label
	case shared.ToneDanger:
		return "✗ " + label
	case shared.ToneInfo:
		return "• " + label
	}
	return label
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func active(b bool) string {
	if b {
		return badge("active", shared.ToneSuccess)
	}
	return badge("inactive", shared.ToneNeutral)
}

func id64(id int64) string {
	return strconv.FormatInt(id, 10)
}

func optID(id *int64) string {
	if id == nil {
		return ""
	}
	return id64(*id)
}

func date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func optMoney(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return money(*d)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
