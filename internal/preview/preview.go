// Package preview renders the static HTML pages written next to each
// animation: a lottie-web player and an inline view of the source SVG.
package preview

import (
	"bytes"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"path"
	"strings"

	"github.com/skip2/go-qrcode"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// QRSize is the edge length in pixels of the share code.
const QRSize = 160

// Options adds optional parts to the player page.
type Options struct {
	Title string
	// ShareURL, when set, is encoded as a QR code on the page.
	ShareURL string
}

type playerPage struct {
	Title    string
	Ref      string
	QR       template.URL
	ShareURL string
}

// Emit returns a player page that loads the animation at ref, a path
// relative to the page.
func Emit(ref string) (string, error) {
	return EmitWithOptions(ref, Options{})
}

// EmitWithOptions is Emit with a custom title and an optional share code.
func EmitWithOptions(ref string, opts Options) (string, error) {
	page := playerPage{Title: opts.Title, Ref: ref, ShareURL: opts.ShareURL}
	if page.Title == "" {
		page.Title = "Lottie Preview: " + strings.TrimSuffix(path.Base(ref), path.Ext(ref))
	}
	if opts.ShareURL != "" {
		uri, err := QRDataURI(opts.ShareURL)
		if err != nil {
			return "", err
		}
		page.QR = template.URL(uri)
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "player.html", page); err != nil {
		return "", fmt.Errorf("render player page: %w", err)
	}
	return buf.String(), nil
}

// QRDataURI encodes content as a PNG QR code data URI.
func QRDataURI(content string) (string, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, QRSize)
	if err != nil {
		return "", fmt.Errorf("encode share code: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// SVGPage embeds svg, trusted as-is, in a titled page.
func SVGPage(title string, svg []byte) (string, error) {
	var buf bytes.Buffer
	err := templates.ExecuteTemplate(&buf, "svg.html", struct {
		Title string
		SVG   template.HTML
	}{title, template.HTML(stripProlog(svg))})
	if err != nil {
		return "", fmt.Errorf("render svg page: %w", err)
	}
	return buf.String(), nil
}

// stripProlog drops a leading XML declaration, which is not valid inside
// an HTML body.
func stripProlog(svg []byte) []byte {
	s := bytes.TrimSpace(svg)
	if bytes.HasPrefix(s, []byte("<?xml")) {
		if i := bytes.Index(s, []byte("?>")); i >= 0 {
			s = bytes.TrimSpace(s[i+2:])
		}
	}
	return s
}

// ShareLink joins base and the page file name.
func ShareLink(base, page string) string {
	return strings.TrimRight(base, "/") + "/" + page
}
