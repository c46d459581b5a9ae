package mediawiki

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"vedetta/internal/domain"
)

// ParseWatchlist extracts candidates from the rendered changes list of
// Special:Watchlist. The wiki marks every line with either the watched
// (unseen change) or not-watched class; a line carrying neither is a
// markup change we refuse to guess about.
func ParseWatchlist(markup string) ([]domain.WatchlistCandidate, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse watchlist: %w", err)
	}

	var candidates []domain.WatchlistCandidate
	var walkErr error

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if walkErr != nil {
			return
		}
		if n.Type == html.ElementNode && hasClass(n, "mw-changeslist-line") {
			cand, err := parseLine(n)
			if err != nil {
				walkErr = err
				return
			}
			candidates = append(candidates, cand)
			return // lines do not nest
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if walkErr != nil {
		return nil, walkErr
	}
	return candidates, nil
}

// parseLine reads one changes-list line: seen state from the line
// classes, page title and diff link from the diff anchor, plus the
// editor and byte-delta decorations.
func parseLine(line *html.Node) (domain.WatchlistCandidate, error) {
	var cand domain.WatchlistCandidate

	switch {
	case hasClass(line, "mw-changeslist-line-watched"):
		cand.HasUnseenChange = true
	case hasClass(line, "mw-changeslist-line-not-watched"):
		cand.HasUnseenChange = false
	default:
		return cand, fmt.Errorf("watchlist line without a watched/not-watched class")
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case hasClass(n, "mw-changeslist-diff"):
				cand.Name = domain.PageName(attr(n, "title"))
				cand.DiffURL = attr(n, "href")
			case hasClass(n, "mw-userlink"):
				cand.Editor = attr(n, "title")
			case hasClass(n, "mw-diff-bytes"):
				cand.ByteDiff = collectText(n)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(line)

	if cand.Name == "" {
		return cand, fmt.Errorf("watchlist line without a diff link")
	}
	return cand, nil
}

// hasClass reports whether the node's class attribute contains name.
func hasClass(n *html.Node, name string) bool {
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == name {
				return true
			}
		}
	}
	return false
}

// attr returns the value of the named attribute, or "".
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// collectText concatenates the text nodes under n.
func collectText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}
