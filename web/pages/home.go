// Package pages renders the site's full HTML pages.
package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/cristianadrielbraun/qrgen/web/components"
)

// HomeProps configures the generator page.
type HomeProps struct {
	Title       string
	MaxBytes    int
	Formats     []components.FormatOption
	ScriptPath  string
	Placeholder string
}

// HomePage renders the generator form. The page script calls
// /api/check-capacity before /api/generate.
func HomePage(p HomeProps) templ.Component {
	if p.Title == "" {
		p.Title = "QR Generator"
	}
	if p.Formats == nil {
		p.Formats = components.DefaultFormats()
	}
	if p.ScriptPath == "" {
		p.ScriptPath = "/web/static/app.js"
	}
	if p.Placeholder == "" {
		p.Placeholder = "Enter text or a URL"
	}

	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := templ.EscapeString(p.Title)
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`+
			`<meta name="viewport" content="width=device-width, initial-scale=1">`+
			`<title>%s</title><script src="https://cdn.tailwindcss.com"></script></head>`+
			`<body class="min-h-screen bg-zinc-50 text-zinc-900"><main class="mx-auto max-w-xl p-6 space-y-6">`+
			`<h1 class="text-2xl font-semibold">%s</h1>`, title, title); err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, `<section class="space-y-4 rounded-lg border bg-white p-4">`+
			`<textarea id="qr-input" rows="4" class="w-full rounded-md border p-2" placeholder="%s"></textarea>`+
			`<p id="capacity-info" class="text-xs text-zinc-500" data-max-bytes="%d">Up to %d bytes per code.</p>`,
			templ.EscapeString(p.Placeholder), p.MaxBytes, p.MaxBytes); err != nil {
			return err
		}
		if err := components.FormatPicker(p.Formats).Render(ctx, w); err != nil {
			return err
		}
		if err := components.Button(components.ButtonProps{ID: "generate-btn", Label: "Generate", Class: "w-full"}).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<p id="loading" class="hidden text-sm">Generating…</p></section>`+
			`<section id="result-card" class="hidden space-y-3 rounded-lg border bg-white p-4">`+
			`<div id="qr-output" class="flex justify-center"></div>`+
			`<p id="qr-info" class="text-xs text-zinc-500"></p>`); err != nil {
			return err
		}
		if err := components.Button(components.ButtonProps{ID: "download-btn", Label: "Download", Class: "w-full bg-white text-zinc-900 border hover:bg-zinc-100"}).Render(ctx, w); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, `</section></main><script src="%s"></script></body></html>`, templ.EscapeString(p.ScriptPath))
		return err
	})
}
