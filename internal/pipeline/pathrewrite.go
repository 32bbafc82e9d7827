package pipeline

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteRelativePaths re-bases relative image, link, and media paths in
// rendered HTML by prepending prefix. Posts publish one directory deep
// (posts/<slug>/index.html), so a reference like img/pic.png written
// against the content root needs the page-to-root prefix to keep
// resolving after the build.
//
// Left alone: absolute URLs, protocol-relative URLs, root-relative paths,
// anchors, data: URIs, and srcset attributes (set-valued, rarely written
// by hand in posts).
func RewriteRelativePaths(htmlContent, prefix string) (string, error) {
	if prefix == "" {
		return htmlContent, nil
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	rewriteNode(doc, prefix)

	return renderHTML(doc, isFragment)
}

// parseHTML parses HTML content, handling both full documents and
// fragments. Returns the parsed node and whether it was a fragment.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	// Full document: starts with <!DOCTYPE or <html.
	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	// Fragment: parse with body context to avoid wrapping.
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}

	return container, true, nil
}

// renderHTML renders the document back to a string. Fragments render
// their children directly to avoid growing an <html><body> wrapper.
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if isFragment {
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}

	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// rewriteNode traverses the DOM and re-bases relative references.
func rewriteNode(n *html.Node, prefix string) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "img":
			rewriteAttr(n, "src", prefix)
		case "a":
			rewriteAttr(n, "href", prefix)
		case "video":
			rewriteAttr(n, "src", prefix)
			rewriteAttr(n, "poster", prefix)
		case "audio", "source":
			rewriteAttr(n, "src", prefix)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, prefix)
	}
}

// rewriteAttr re-bases a single attribute if it holds a relative path.
func rewriteAttr(n *html.Node, attrName, prefix string) {
	for i, attr := range n.Attr {
		if attr.Key != attrName {
			continue
		}
		if !isRelativePath(attr.Val) {
			continue
		}
		n.Attr[i].Val = prefix + strings.TrimPrefix(attr.Val, "./")
	}
}

// isRelativePath reports whether the value should be re-based.
func isRelativePath(pathVal string) bool {
	if pathVal == "" {
		return false
	}
	// Anchors, root-relative (and protocol-relative), query-only.
	if strings.HasPrefix(pathVal, "#") ||
		strings.HasPrefix(pathVal, "/") ||
		strings.HasPrefix(pathVal, "?") {
		return false
	}
	// Anything with a scheme (http, https, data, mailto, file).
	if u, err := url.Parse(pathVal); err != nil || u.Scheme != "" {
		return false
	}
	return true
}
