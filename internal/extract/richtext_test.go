package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bread-partners-sdk/internal/models"
)

func parseRichText(t *testing.T, fragment string) models.RichText {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	require.NoError(t, err)
	return richTextFrom(doc, ".subject")
}

func TestRichTextStyles(t *testing.T) {
	tests := []struct {
		name string
		html string
		want []models.RichTextSpan
	}{
		{
			name: "plain text",
			html: `<p class="subject">hello</p>`,
			want: []models.RichTextSpan{{Text: "hello"}},
		},
		{
			name: "nested emphasis compounds",
			html: `<p class="subject"><b>bold <i>and italic</i></b></p>`,
			want: []models.RichTextSpan{
				{Text: "bold ", Bold: true},
				{Text: "and italic", Bold: true, Italic: true},
			},
		},
		{
			name: "strong and em aliases",
			html: `<p class="subject"><strong>a</strong><em>b</em><u>c</u></p>`,
			want: []models.RichTextSpan{
				{Text: "a", Bold: true},
				{Text: "b", Italic: true},
				{Text: "c", Underline: true},
			},
		},
		{
			name: "anchor underlines and carries href",
			html: `<p class="subject"><a href="https://example.com/x">link</a></p>`,
			want: []models.RichTextSpan{
				{Text: "link", Underline: true, LinkURL: "https://example.com/x"},
			},
		},
		{
			name: "line break becomes newline span",
			html: `<p class="subject">one<br/>two</p>`,
			want: []models.RichTextSpan{
				{Text: "one"},
				{Text: "\n"},
				{Text: "two"},
			},
		},
		{
			name: "script content is dropped",
			html: `<p class="subject">safe<script>alert(1)</script></p>`,
			want: []models.RichTextSpan{{Text: "safe"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := parseRichText(t, tt.html)
			assert.Equal(t, tt.want, rt.Spans)
		})
	}
}

func TestRichTextMissingSelector(t *testing.T) {
	rt := parseRichText(t, `<p class="other">hi</p>`)
	assert.True(t, rt.IsEmpty())
	assert.Empty(t, rt.Spans)
}
