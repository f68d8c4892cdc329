package models

import (
	"sort"
	"strconv"
	"strings"
)

// TextPlacementModel is the structured result of text-placement
// extraction. Created once per extraction and never mutated.
type TextPlacementModel struct {
	ActionType      string
	ActionTarget    string
	ContentText     string
	ActionLink      string
	ActionContentID string
}

// PopupPlacementModel is the structured result of popup extraction. The
// RTPS orchestrator may patch OverlayType, Location and WebViewURL from
// the approval fetch's render context; nothing else mutates it.
type PopupPlacementModel struct {
	OverlayType                string
	Location                   string
	BrandLogoURL               string
	WebViewURL                 string
	OverlayTitle               RichText
	OverlaySubtitle            RichText
	OverlayContainerBarHeading RichText
	BodyHeader                 RichText
	PrimaryActionButton        *PrimaryActionButtonModel
	DynamicBody                DynamicBodyModel
	Disclosure                 RichText
}

// PrimaryActionButtonModel holds the call-to-action button attributes.
// ContentFetchID is a second placement id used to lazily fetch a follow-up
// popup for the single-product drill-down.
type PrimaryActionButtonModel struct {
	OverlayType     string
	ContentFetchID  string
	ActionTarget    string
	ActionType      string
	ActionContentID string
	Location        string
	ButtonText      string
}

// DynamicBodyModel maps section keys ("div{n}" or "footer{n}", n in
// document order) to tag→HTML content. Built once by extraction and
// read-only afterward.
type DynamicBodyModel struct {
	BodyDiv map[string]DynamicBodyContent
}

type DynamicBodyContent struct {
	TagValuePairs map[string]string
}

// SectionKeys returns the section keys in rendering order: ascending
// numeric suffix, with the div section before the footer section of the
// same index.
func (m DynamicBodyModel) SectionKeys() []string {
	keys := make([]string, 0, len(m.BodyDiv))
	for k := range m.BodyDiv {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ni, fi := sectionIndex(keys[i])
		nj, fj := sectionIndex(keys[j])
		if ni != nj {
			return ni < nj
		}
		return !fi && fj
	})
	return keys
}

func sectionIndex(key string) (n int, footer bool) {
	rest := key
	if strings.HasPrefix(key, "footer") {
		footer = true
		rest = strings.TrimPrefix(key, "footer")
	} else {
		rest = strings.TrimPrefix(key, "div")
	}
	n, _ = strconv.Atoi(rest)
	return n, footer
}

// RichText is HTML-derived styled text. Spans preserve inline emphasis and
// links from the source fragment; renderers walk them in order.
type RichText struct {
	Spans []RichTextSpan
}

type RichTextSpan struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
	LinkURL   string
}

// Text returns the concatenated plain text of all spans.
func (r RichText) Text() string {
	var b strings.Builder
	for _, s := range r.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// IsEmpty reports whether the rich text carries no visible characters.
func (r RichText) IsEmpty() bool {
	return strings.TrimSpace(r.Text()) == ""
}
