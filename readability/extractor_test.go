package readability_test

import (
	"testing"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	_, err := ext.Extract("  ", "https://example.com")

	require.Error(t, err)
	assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
}

func TestExtractor_RejectsInvalidURL(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	_, err := ext.Extract("<p>x</p>", "://bad")

	require.Error(t, err)
	assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
}

func TestExtractor_ExtractsTitle(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Page Title</title></head>
<body><article><p>Content</p></article></body>
</html>`

	ext := readability.NewExtractor()
	result, err := ext.Extract(html, "https://example.com/post")

	require.NoError(t, err)
	assert.Equal(t, "Page Title", result.Title)
}

func TestExtractor_ExtractsExcerptFromDescription(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head>
<title>Launch</title>
<meta name="description" content="We shipped the new widget.">
<meta name="author" content="Jane Roe">
</head>
<body><article><p>This is the main article content that should be preserved in the output.</p></article></body>
</html>`

	ext := readability.NewExtractor()
	result, err := ext.Extract(html, "https://example.com/post")

	require.NoError(t, err)
	assert.Equal(t, "We shipped the new widget.", result.Excerpt)
}
