// Package export turns one log's full data into a downloadable document.
// Render is a pure function from log data to markdown; RenderHTML runs
// the markdown through goldmark for a standalone HTML document.
package export

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/ledgerline/stockbook/pkg/types"
)

//go:embed templates/*.md
var templates embed.FS

// logView is the template model for one exported log.
type logView struct {
	Date     string
	Author   string
	Locked   bool
	Sections []sectionView
}

// sectionView carries one section's table, rows already in the section's
// current sort order.
type sectionView struct {
	Title   string
	Header  []string
	Divider []string
	Rows    [][]string
}

// Render produces the markdown document for one log: a titled header and
// one table per section, honoring each section's sort view.
func Render(l *types.Log) string {
	view := buildView(l)

	raw, err := templates.ReadFile("templates/log.md")
	if err != nil {
		return fmt.Sprintf("error reading log template: %v", err)
	}
	tmpl, err := template.New("log").
		Funcs(template.FuncMap{"join": strings.Join}).
		Parse(string(raw))
	if err != nil {
		return fmt.Sprintf("error parsing log template: %v", err)
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, view); err != nil {
		return fmt.Sprintf("error executing log template: %v", err)
	}
	return b.String()
}

// RenderHTML converts the markdown rendition into a standalone HTML
// document using goldmark with the GFM table extension.
func RenderHTML(l *types.Log) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var body bytes.Buffer
	if err := md.Convert([]byte(Render(l)), &body); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}

	var doc bytes.Buffer
	fmt.Fprintf(&doc, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=%q>\n<title>Stock log %s</title>\n</head>\n<body>\n", "utf-8", l.Date)
	doc.Write(body.Bytes())
	doc.WriteString("</body>\n</html>\n")
	return doc.Bytes(), nil
}

func buildView(l *types.Log) logView {
	view := logView{
		Date:   l.Date,
		Author: l.Author,
		Locked: l.Locked,
	}
	for _, sec := range l.Sections {
		sv := sectionView{Title: title(sec.Name)}
		for _, col := range sec.Table.Columns {
			sv.Header = append(sv.Header, escapeCell(col.Name))
			sv.Divider = append(sv.Divider, "---")
		}
		for _, row := range sec.Table.SortedRows() {
			cells := make([]string, 0, len(sec.Table.Columns))
			for _, col := range sec.Table.Columns {
				cells = append(cells, escapeCell(row.Values[col.ColumnID]))
			}
			sv.Rows = append(sv.Rows, cells)
		}
		view.Sections = append(view.Sections, sv)
	}
	return view
}

// escapeCell keeps free-text cell content from breaking the markdown
// table syntax.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
