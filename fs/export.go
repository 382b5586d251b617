package fs

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/freitagsfoo"
)

// ParseExport reads a page from a MediaWiki XML export (Special:Export).
// When title is empty the first page in the export is returned; otherwise the
// page whose title matches. Only the last revision of a page is used.
func ParseExport(data []byte, title string) (*freitagsfoo.Page, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, freitagsfoo.Errorf(freitagsfoo.EINVALID, "invalid export XML: %v", err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "mediawiki" {
		return nil, freitagsfoo.Errorf(freitagsfoo.EINVALID, "not a MediaWiki export")
	}

	for _, pageEl := range root.SelectElements("page") {
		titleEl := pageEl.SelectElement("title")
		if titleEl == nil {
			continue
		}
		pageTitle := strings.TrimSpace(titleEl.Text())
		if title != "" && !sameTitle(pageTitle, title) {
			continue
		}

		revisions := pageEl.SelectElements("revision")
		if len(revisions) == 0 {
			return nil, freitagsfoo.Errorf(freitagsfoo.ENOTFOUND, "page %q has no revisions", pageTitle)
		}
		textEl := revisions[len(revisions)-1].SelectElement("text")
		if textEl == nil {
			return nil, freitagsfoo.Errorf(freitagsfoo.ENOTFOUND, "page %q has no text", pageTitle)
		}
		return newPage(pageTitle, textEl.Text()), nil
	}

	if title == "" {
		return nil, freitagsfoo.Errorf(freitagsfoo.ENOTFOUND, "export contains no pages")
	}
	return nil, freitagsfoo.Errorf(freitagsfoo.ENOTFOUND, "page %q not found in export", title)
}

func sameTitle(a, b string) bool {
	return strings.ReplaceAll(a, "_", " ") == strings.ReplaceAll(b, "_", " ")
}
