package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/freitagsfoo"
)

// Ensure PageSource implements freitagsfoo.PageSource at compile time.
var _ freitagsfoo.PageSource = (*PageSource)(nil)

// PageSource serves pages from a directory laid out by title, so that
// "Freitagsfoo/2019-10-11" is read from <dir>/Freitagsfoo/2019-10-11.wikitext
// or, failing that, from an XML export at <dir>/Freitagsfoo/2019-10-11.xml.
type PageSource struct {
	dir string
}

// NewPageSource creates a PageSource rooted at dir.
func NewPageSource(dir string) *PageSource {
	return &PageSource{dir: dir}
}

// FetchPage reads the page with the given title.
func (s *PageSource) FetchPage(ctx context.Context, title string) (*freitagsfoo.Page, error) {
	for _, ext := range []string{WikitextExt, ExportExt} {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rel, err := TitleToPath(title, ext)
		if err != nil {
			return nil, err
		}

		page, err := readPage(filepath.Join(s.dir, rel), title)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return page, nil
	}
	return nil, freitagsfoo.Errorf(freitagsfoo.ENOTFOUND, "page %q not found in %s", title, s.dir)
}

// ReadPage reads a single page file. Files ending in .xml are treated as a
// MediaWiki export; anything else is raw wikitext titled after the file name.
func ReadPage(path string) (*freitagsfoo.Page, error) {
	page, err := readPage(path, "")
	if errors.Is(err, fs.ErrNotExist) {
		return nil, freitagsfoo.Errorf(freitagsfoo.ENOTFOUND, "file %s not found", path)
	}
	return page, err
}

func readPage(path, title string) (*freitagsfoo.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(filepath.Ext(path), ExportExt) {
		return ParseExport(data, title)
	}

	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return newPage(title, string(data)), nil
}
