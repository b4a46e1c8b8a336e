// Package scrape fetches public tax guidance from IRS.gov and OECD.org.
// No API keys are involved; everything here works off the public HTML.
package scrape

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/net/html"
)

// maxBodyBytes bounds how much of a page we read. IRB indexes are
// large but nowhere near this.
const maxBodyBytes = 4 << 20

type pageLink struct {
	text string
	href string
}

// collectLinks parses an HTML document and returns every anchor that
// has both an href and visible text.
func collectLinks(r io.Reader) ([]pageLink, error) {
	doc, err := html.Parse(io.LimitReader(r, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var links []pageLink
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			href := attrValue(n, "href")
			text := strings.TrimSpace(nodeText(n))
			if href != "" && text != "" {
				links = append(links, pageLink{text: text, href: href})
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links, nil
}

// collectResultLinks returns the first anchor inside each element whose
// class attribute contains the given class name. IRS search pages wrap
// each hit in a div with class "result".
func collectResultLinks(r io.Reader, class string) ([]pageLink, error) {
	doc, err := html.Parse(io.LimitReader(r, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var links []pageLink
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, class) {
			if a := firstAnchor(n); a != nil {
				links = append(links, pageLink{
					text: strings.TrimSpace(nodeText(a)),
					href: attrValue(a, "href"),
				})
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links, nil
}

func firstAnchor(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "a" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if a := firstAnchor(c); a != nil {
			return a
		}
	}
	return nil
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attrValue(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// absoluteURL resolves site-relative hrefs against the given base.
func absoluteURL(base, href string) string {
	if strings.HasPrefix(href, "/") {
		return base + href
	}
	return href
}

func closeBody(resp *http.Response) {
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	resp.Body.Close()
}
