package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatLKR(t *testing.T) {
	assert.Equal(t, "LKR 0", FormatLKR(0))
	assert.Equal(t, "LKR 950", FormatLKR(950))
	assert.Equal(t, "LKR 89,500", FormatLKR(89500))
	assert.Equal(t, "LKR 1,250,000", FormatLKR(1250000))
	assert.Equal(t, "LKR -1,500", FormatLKR(-1500))
}

func TestRenderEmail_EscapesBodyNotSubject(t *testing.T) {
	msg, err := RenderEmail("Hi {{.Name}}", "<p>{{.Name}} {{lkr .Amount}}</p>", map[string]any{
		"Name":   "Tom & <Jerry>",
		"Amount": int64(25000),
	})
	require.NoError(t, err)

	assert.Equal(t, "Hi Tom & <Jerry>", msg.Subject)
	assert.Equal(t, "<p>Tom &amp; &lt;Jerry&gt; LKR 25,000</p>", msg.HTML)
	assert.Empty(t, msg.To)
}

func TestParseEmail_RejectsBrokenTemplates(t *testing.T) {
	assert.NoError(t, ParseEmail("ok", "<p>{{.X}}</p>"))
	assert.Error(t, ParseEmail("{{.Broken", "<p></p>"))
	assert.Error(t, ParseEmail("ok", "<p>{{if}}</p>"))
}

func TestDefaultTemplatesParse(t *testing.T) {
	for key, tpl := range DefaultTemplates {
		assert.NoError(t, ParseEmail(tpl.Subject, tpl.Body), key)
	}
}

func TestBuildMIME(t *testing.T) {
	raw := string(BuildMIME("Heaven Palace <bookings@example.com>", Email{
		To:      "guest@example.com",
		Subject: "Booking\r\nBcc: evil@example.com",
		HTML:    "<h1>Thanks</h1><p>See you soon</p>",
	}))

	assert.Contains(t, raw, "To: guest@example.com\r\n")
	assert.Contains(t, raw, "Subject: Booking  Bcc: evil@example.com\r\n")
	assert.NotContains(t, raw, "\r\nBcc:")
	assert.Contains(t, raw, "Thanks See you soon")
	assert.True(t, strings.HasSuffix(raw, "--"+mimeBoundary+"--\r\n"))
}
