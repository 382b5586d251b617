// Package fs reads meetup pages from local files and writes records to disk.
package fs

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/freitagsfoo"
	"github.com/fwojciec/freitagsfoo/wikitext"
)

// File extensions recognized by ReadPage and PageSource.
const (
	WikitextExt = ".wikitext"
	ExportExt   = ".xml"
)

// TitleToPath converts a page title to a relative file path.
// Example: Freitagsfoo/2019-10-11 → Freitagsfoo/2019-10-11.wikitext
func TitleToPath(title, ext string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", freitagsfoo.Errorf(freitagsfoo.EINVALID, "empty page title")
	}

	// Wiki titles use spaces and underscores interchangeably.
	name := strings.ReplaceAll(title, " ", "_")
	clean := path.Clean("/" + name)
	if clean == "/" || strings.Contains(name, "..") {
		return "", freitagsfoo.Errorf(freitagsfoo.EINVALID, "invalid page title %q", title)
	}

	return filepath.FromSlash(strings.TrimPrefix(clean, "/")) + ext, nil
}

// newPage splits text into a page, deriving the top section locally.
func newPage(title, text string) *freitagsfoo.Page {
	doc := wikitext.Parse(text)
	return &freitagsfoo.Page{
		Title:      title,
		Text:       text,
		TopSection: doc.Sections()[0].Contents(),
	}
}
