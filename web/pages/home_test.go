package pages

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHomePageElements(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HomePage(HomeProps{Title: "Codes <&> More", MaxBytes: 2953}).Render(context.Background(), &buf))
	html := buf.String()

	for _, id := range []string{"qr-input", "capacity-info", "generate-btn", "loading", "result-card", "qr-output", "qr-info", "download-btn"} {
		assert.Contains(t, html, `id="`+id+`"`)
	}
	assert.Contains(t, html, `data-max-bytes="2953"`)
	assert.Contains(t, html, `value="svg" checked`)
	assert.Contains(t, html, `<script src="/web/static/app.js">`)
	assert.Contains(t, html, "Codes &lt;&amp;&gt; More")
	assert.NotContains(t, html, "<&>")
}
