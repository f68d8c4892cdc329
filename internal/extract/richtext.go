package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"bread-partners-sdk/internal/models"
)

// richTextFrom converts the first element matching selector into styled
// spans. A missing element yields an empty RichText.
func richTextFrom(doc *goquery.Document, selector string) models.RichText {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return models.RichText{}
	}
	return richTextFromNode(sel.Nodes[0])
}

type spanStyle struct {
	bold      bool
	italic    bool
	underline bool
	linkURL   string
}

func richTextFromNode(root *html.Node) models.RichText {
	var rt models.RichText
	for child := root.FirstChild; child != nil; child = child.NextSibling {
		walkSpans(child, spanStyle{}, &rt)
	}
	return rt
}

// walkSpans descends the node tree accumulating inline style state. Each
// text node becomes one span carrying the style in effect at its depth.
func walkSpans(node *html.Node, style spanStyle, rt *models.RichText) {
	switch node.Type {
	case html.TextNode:
		if node.Data == "" {
			return
		}
		rt.Spans = append(rt.Spans, models.RichTextSpan{
			Text:      node.Data,
			Bold:      style.bold,
			Italic:    style.italic,
			Underline: style.underline,
			LinkURL:   style.linkURL,
		})
		return
	case html.ElementNode:
		switch node.Data {
		case "b", "strong":
			style.bold = true
		case "i", "em":
			style.italic = true
		case "u":
			style.underline = true
		case "a":
			style.underline = true
			style.linkURL = attrValue(node, "href")
		case "br":
			rt.Spans = append(rt.Spans, models.RichTextSpan{Text: "\n"})
			return
		case "script", "style":
			return
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walkSpans(child, style, rt)
		}
	}
}

func attrValue(node *html.Node, name string) string {
	for _, attr := range node.Attr {
		if strings.EqualFold(attr.Key, name) {
			return attr.Val
		}
	}
	return ""
}
