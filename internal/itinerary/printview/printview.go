// Package printview renders an itinerary document tree as a standalone HTML
// page suitable for browser print or capture into an A4 PDF.
// Atomic blocks map to CSS break-inside: avoid.
package printview

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/pkordes/travel-desk/internal/itinerary"
)

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
@page { size: A4; margin: 14mm; }
body { font-family: "Helvetica Neue", Arial, sans-serif; font-size: 11pt; color: #1f2933; max-width: 210mm; margin: 0 auto; }
.atomic { break-inside: avoid; page-break-inside: avoid; }
.header { border-bottom: 2px solid #1f2933; padding-bottom: 8px; margin-bottom: 12px; }
.day { margin-top: 16px; }
.item, .free-day { border: 1px solid #d9e2ec; border-radius: 6px; padding: 8px 10px; margin: 6px 0; }
.item-unknown { border-style: dashed; border-color: #d64545; }
.field { margin: 2px 0; }
.field .label { color: #627d98; min-width: 110px; display: inline-block; }
.muted { color: #627d98; font-size: 9.5pt; }
.badge { display: inline-block; border-radius: 10px; padding: 1px 8px; margin-right: 4px; font-size: 9pt; background: #e4e7eb; }
.badge-primary { background: #2680c2; color: #fff; }
.badge-accent { background: #f0b429; }
.badge-success { background: #8eedc7; }
.icon { float: right; font-size: 9pt; color: #9fb3c8; }
.footer { margin-top: 24px; border-top: 1px solid #d9e2ec; padding-top: 8px; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// Write renders doc as an HTML page to w.
func Write(w io.Writer, doc itinerary.Document) error {
	var body bytes.Buffer
	for _, n := range doc.Children {
		writeNode(&body, n)
	}
	data := struct {
		Title string
		Body  template.HTML
	}{
		Title: doc.Title,
		// writeNode escapes every text value it emits.
		Body: template.HTML(body.String()), //nolint:gosec
	}
	if err := page.Execute(w, data); err != nil {
		return fmt.Errorf("printview.Write: %w", err)
	}
	return nil
}

func writeNode(b *bytes.Buffer, n itinerary.Node) {
	esc := template.HTMLEscapeString
	switch v := n.(type) {
	case itinerary.AtomicBlock:
		fmt.Fprintf(b, `<div class="atomic %s">`, esc(v.Class))
		for _, c := range v.Children {
			writeNode(b, c)
		}
		b.WriteString("</div>\n")
	case itinerary.Section:
		fmt.Fprintf(b, `<div class="%s">`, esc(v.Class))
		for _, c := range v.Children {
			writeNode(b, c)
		}
		b.WriteString("</div>\n")
	case itinerary.Heading:
		level := min(max(v.Level, 1), 6)
		fmt.Fprintf(b, "<h%d>%s</h%d>", level, esc(v.Text), level)
	case itinerary.Text:
		class := ""
		if v.Muted {
			class = ` class="muted"`
		}
		fmt.Fprintf(b, "<p%s>%s</p>", class, esc(v.Text))
	case itinerary.Field:
		fmt.Fprintf(b, `<div class="field"><span class="label">%s</span> %s</div>`, esc(v.Label), esc(v.Value))
	case itinerary.Badge:
		class := "badge"
		if v.Tone != "" {
			class += " badge-" + esc(v.Tone)
		}
		fmt.Fprintf(b, `<span class="%s">%s</span>`, class, esc(v.Text))
	case itinerary.Icon:
		fmt.Fprintf(b, `<span class="icon" data-icon="%s">%s</span>`, esc(v.Name), esc(strings.ToUpper(v.Name)))
	}
}
