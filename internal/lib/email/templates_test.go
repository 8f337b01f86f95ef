package email

import (
	"bytes"
	"fmt"
	"html/template"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Renders every embedded template with its preview data so a renamed
// placeholder or missing file fails here instead of at send time.
func TestEmbeddedTemplatesRender(t *testing.T) {
	for tmplName, data := range PreviewData {
		t.Run(string(tmplName), func(t *testing.T) {
			tmpl, err := template.ParseFS(templateFS, fmt.Sprintf("templates/%s.html", tmplName))
			require.NoError(t, err)

			var body bytes.Buffer
			require.NoError(t, tmpl.Execute(&body, data))
			assert.NotEmpty(t, body.String())

			for _, value := range data {
				assert.Contains(t, body.String(), value)
			}
		})
	}
}

func TestReceiptTemplateEscapesHTML(t *testing.T) {
	tmpl, err := template.ParseFS(templateFS, "templates/receipt.html")
	require.NoError(t, err)

	data := map[string]string{
		"DonorName":     `<script>alert("x")</script>`,
		"Amount":        "250.00",
		"Currency":      "USD",
		"GiftDate":      "2025-11-04",
		"ReceiptNumber": "RCPT-2025-000123",
	}

	var body bytes.Buffer
	require.NoError(t, tmpl.Execute(&body, data))
	assert.NotContains(t, body.String(), "<script>")
}
