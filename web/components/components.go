// Package components holds the small HTML building blocks of the site.
package components

import (
	"context"
	"fmt"
	"io"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
)

const buttonBase = "inline-flex items-center justify-center rounded-md px-4 py-2 text-sm font-medium " +
	"bg-zinc-900 text-white hover:bg-zinc-700 disabled:opacity-50 disabled:pointer-events-none"

// ButtonProps configures Button.
type ButtonProps struct {
	ID    string
	Label string
	// Class is merged over the base classes; conflicting utilities win.
	Class string
	Type  string
}

// ButtonClass merges extra utility classes over the button defaults.
func ButtonClass(extra string) string {
	return twmerge.Merge(buttonBase, extra)
}

// Button renders a <button>.
func Button(p ButtonProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		typ := p.Type
		if typ == "" {
			typ = "button"
		}
		_, err := fmt.Fprintf(w, `<button id="%s" type="%s" class="%s">%s</button>`,
			templ.EscapeString(p.ID), templ.EscapeString(typ),
			templ.EscapeString(ButtonClass(p.Class)), templ.EscapeString(p.Label))
		return err
	})
}

// FormatPicker renders the output format radio group.
func FormatPicker(options []FormatOption) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<fieldset class="flex gap-6"><legend class="sr-only">Format</legend>`); err != nil {
			return err
		}
		for _, o := range options {
			checked := ""
			if o.Checked {
				checked = " checked"
			}
			if _, err := fmt.Fprintf(w,
				`<label class="flex items-center gap-2 text-sm" title="%s"><input type="radio" name="format" value="%s"%s> %s</label>`,
				templ.EscapeString(o.Hint), templ.EscapeString(o.Value), checked, templ.EscapeString(o.Label)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</fieldset>`)
		return err
	})
}
