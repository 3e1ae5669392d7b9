package preview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmit(t *testing.T) {
	page, err := Emit("logo.json")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
	assert.Contains(t, page, `const animationPath = "logo.json";`)
	assert.Contains(t, page, "lottie-web/5.10.2/lottie.min.js")
	for _, id := range []string{`id="play"`, `id="pause"`, `id="stop"`} {
		assert.Contains(t, page, id)
	}
	assert.Contains(t, page, "<title>Lottie Preview: logo</title>")
	assert.NotContains(t, page, "share-qr")
}

func TestEmitIsPure(t *testing.T) {
	a, err := Emit("a/b.json")
	require.NoError(t, err)
	b, err := Emit("a/b.json")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEmitEscapesReference(t *testing.T) {
	page, err := Emit(`x";alert(1);".json`)
	require.NoError(t, err)
	assert.NotContains(t, page, `"x";alert(1);"`)
}

func TestEmitWithShareURL(t *testing.T) {
	page, err := EmitWithOptions("logo.json", Options{Title: "Logo", ShareURL: ShareLink("https://example.com/anim/", "logo.html")})
	require.NoError(t, err)

	assert.Contains(t, page, "<title>Logo</title>")
	assert.Contains(t, page, `src="data:image/png;base64,`)
	assert.Contains(t, page, `alt="https://example.com/anim/logo.html"`)
}

func TestQRDataURI(t *testing.T) {
	uri, err := QRDataURI("https://example.com")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,iVBOR"))
}

func TestSVGPage(t *testing.T) {
	svg := []byte(`<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg"><rect width="5" height="5"/></svg>`)
	page, err := SVGPage("shapes & more", svg)
	require.NoError(t, err)

	assert.Contains(t, page, "<title>shapes &amp; more</title>")
	assert.Contains(t, page, `<svg xmlns="http://www.w3.org/2000/svg"><rect width="5" height="5"/></svg>`)
	assert.NotContains(t, page, "<?xml")
}
