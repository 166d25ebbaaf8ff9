// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package editor

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PreviewCSP is the Content-Security-Policy the preview is served with.
// The sandbox directive gives the frame an opaque origin with scripts
// disabled, so generated markup never runs in the host page's context.
const PreviewCSP = "sandbox; default-src 'none'; style-src 'unsafe-inline'; img-src data:"

// Preview is the renderable form of a document.
type Preview struct {
	Styles   string // <style> elements lifted from the document head
	Body     string // inner HTML of <body>, or the raw text on fallback
	Fallback bool   // true when the input had no usable <body>
}

// RenderPreview extracts the body content of text. Input without an
// explicit <body> tag, or input that fails to parse, is returned verbatim
// as the body with Fallback set. It never panics.
func RenderPreview(text string) (p Preview) {
	defer func() {
		if r := recover(); r != nil {
			p = Preview{Body: text, Fallback: true}
		}
	}()

	if !hasBodyTag(text) {
		return Preview{Body: text, Fallback: true}
	}

	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return Preview{Body: text, Fallback: true}
	}

	body := findElement(doc, atom.Body)
	if body == nil {
		return Preview{Body: text, Fallback: true}
	}

	var bodyBuf bytes.Buffer
	if err := renderChildren(&bodyBuf, body); err != nil {
		return Preview{Body: text, Fallback: true}
	}

	var styleBuf bytes.Buffer
	if head := findElement(doc, atom.Head); head != nil {
		for c := head.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.DataAtom == atom.Style {
				if err := html.Render(&styleBuf, c); err != nil {
					styleBuf.Reset()
					break
				}
			}
		}
	}

	return Preview{Styles: styleBuf.String(), Body: bodyBuf.String()}
}

// HTML wraps the preview in a standalone document for the sandboxed frame.
func (p Preview) HTML() string {
	return fmt.Sprintf("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"UTF-8\">\n%s\n</head>\n<body>\n%s\n</body>\n</html>\n",
		p.Styles, p.Body)
}

// hasBodyTag reports whether the input contains an explicit <body> start
// tag. The parser would synthesize one for any input, so the tokenizer is
// used to tell a real document from a fragment.
func hasBodyTag(text string) bool {
	z := html.NewTokenizer(strings.NewReader(text))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if string(name) == "body" {
				return true
			}
		}
	}
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

func renderChildren(w io.Writer, n *html.Node) error {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(w, c); err != nil {
			return err
		}
	}
	return nil
}
