// Package goquery implements pyscrape.PageParser on top of goquery.
package goquery

import (
	"net/url"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pyscrape"
)

// Attrs constrains the attributes of an element looked up by FindTag.
// Values must match exactly, except "class", which matches when the
// element carries that class among others.
type Attrs map[string]string

// String formats the constraints in key order, e.g. {class: docutils}.
func (a Attrs) String() string {
	if len(a) == 0 {
		return "{}"
	}
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+a[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (a Attrs) match(sel *goquery.Selection) bool {
	for name, want := range a {
		if name == "class" {
			if !sel.HasClass(want) {
				return false
			}
			continue
		}
		got, ok := sel.Attr(name)
		if !ok || got != want {
			return false
		}
	}
	return true
}

// NewDocument parses html into a navigable document.
func NewDocument(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, pyscrape.Errorf(pyscrape.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// FindTag returns the first descendant of sel named tag that satisfies attrs.
// Returns ENOTFOUND if there is none.
func FindTag(sel *goquery.Selection, tag string, attrs Attrs) (*goquery.Selection, error) {
	return FindTagFunc(sel, tag, attrs.String(), attrs.match)
}

// FindTagFunc is like FindTag but matches elements with an arbitrary predicate.
// The description is used in the error message.
func FindTagFunc(sel *goquery.Selection, tag string, desc string, match func(*goquery.Selection) bool) (*goquery.Selection, error) {
	found := sel.Find(tag).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return match(s)
	}).First()
	if found.Length() == 0 {
		return nil, pyscrape.Errorf(pyscrape.ENOTFOUND, "tag not found: %s %s", tag, desc)
	}
	return found, nil
}

// resolveURL resolves href against the page it was found on.
func resolveURL(pageURL string, href string) (string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", pyscrape.Errorf(pyscrape.EINVALID, "invalid page URL %q: %v", pageURL, err)
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", pyscrape.Errorf(pyscrape.EINVALID, "invalid link %q: %v", href, err)
	}
	return base.ResolveReference(ref).String(), nil
}

// hrefOf returns the href of the first anchor in sel.
func hrefOf(sel *goquery.Selection) (string, error) {
	a := sel
	if goquery.NodeName(sel) != "a" {
		a = sel.Find("a").First()
	}
	href, ok := a.Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return "", pyscrape.Errorf(pyscrape.ENOTFOUND, "tag not found: a {href: <any>}")
	}
	return href, nil
}
