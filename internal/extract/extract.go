// Package extract turns placement HTML fragments into structured content
// models. It recognizes the small fixed vocabulary of CSS class names and
// data-attributes defined by the placement HTML contract; it does not
// render anything. Malformed markup never fails a parse: the underlying
// parser recovers best-effort, and absent nodes degrade to empty fields.
package extract

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	sdkerrors "bread-partners-sdk/internal/common/errors"
	"bread-partners-sdk/internal/models"
)

// Options tunes extraction behavior.
type Options struct {
	// AccumulateDuplicateProps controls what happens when one body child
	// contains more than one value prop or connector. The placement
	// contract has historically let later matches overwrite the section
	// entry (last wins); leave this false to keep that behavior. When
	// true, duplicate matches merge their tag maps instead.
	AccumulateDuplicateProps bool
}

// Extractor parses placement fragments into content models.
type Extractor struct {
	opts Options
}

func New() *Extractor {
	return &Extractor{}
}

func NewWithOptions(opts Options) *Extractor {
	return &Extractor{opts: opts}
}

// ExtractText parses a text-placement fragment.
func (e *Extractor) ExtractText(htmlContent string) (*models.TextPlacementModel, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, sdkerrors.NewExtractionError(err.Error())
	}

	actionContentID := doc.Find("[data-action-content-id]").First().AttrOr("data-action-content-id", "")
	actionTarget := doc.Find("[data-action-target]").First().AttrOr("data-action-target", "")
	actionType := doc.Find("[data-action-type]").First().AttrOr("data-action-type", "")

	actionLink := strings.TrimSpace(doc.Find(".epjs-body-action a").Text())
	contentText := strings.TrimSpace(ownText(doc.Find(".epjs-body").First()))
	paymentDetailsSup := strings.TrimSpace(doc.Find("sup").Text())

	paymentDetails := doc.Find(".ep-text-placement").Text()
	if actionLink != "" {
		paymentDetails = strings.ReplaceAll(paymentDetails, actionLink, "")
	}
	if paymentDetailsSup != "" {
		paymentDetails = strings.ReplaceAll(paymentDetails, paymentDetailsSup, "")
	}
	paymentDetails = strings.TrimSpace(paymentDetails)

	return &models.TextPlacementModel{
		ActionType:      actionType,
		ActionTarget:    actionTarget,
		ContentText:     combineContentText(contentText, paymentDetails),
		ActionLink:      actionLink,
		ActionContentID: actionContentID,
	}, nil
}

// combineContentText merges the body's own text with the payment details
// line. Both empty yields empty; one non-empty yields it with a trailing
// space; equal strings collapse to one copy.
func combineContentText(contentText, paymentDetails string) string {
	switch {
	case contentText == "" && paymentDetails == "":
		return ""
	case contentText == "":
		return paymentDetails + " "
	case paymentDetails == "":
		return contentText + " "
	case contentText == paymentDetails:
		return contentText + " "
	default:
		return contentText + " " + paymentDetails + " "
	}
}

// ExtractPopup parses a popup-placement fragment.
func (e *Extractor) ExtractPopup(htmlContent string) (*models.PopupPlacementModel, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, sdkerrors.NewExtractionError(err.Error())
	}

	overlayType := doc.Find("[data-overlay-metadata]").First().AttrOr("data-overlay-type", "")
	brandLogoURL := doc.Find(".brand.logo img").First().AttrOr("src", "")
	webViewURL := doc.Find("iframe").First().AttrOr("src", "")

	return &models.PopupPlacementModel{
		OverlayType:                overlayType,
		BrandLogoURL:               brandLogoURL,
		WebViewURL:                 webViewURL,
		OverlayTitle:               richTextFrom(doc, ".epjs-css-overlay-title"),
		OverlaySubtitle:            richTextFrom(doc, ".epjs-css-overlay-subtitle"),
		OverlayContainerBarHeading: richTextFrom(doc, ".epjs-css-overlay-body-title-bar"),
		BodyHeader:                 richTextFrom(doc, ".epjs-css-overlay-header"),
		PrimaryActionButton:        extractPrimaryActionButton(doc, ".action-button"),
		DynamicBody:                e.buildDynamicBody(doc),
		Disclosure:                 richTextFrom(doc, ".epjs-css-overlay-disclosures"),
	}, nil
}

func extractPrimaryActionButton(doc *goquery.Document, selector string) *models.PrimaryActionButtonModel {
	button := doc.Find(selector).First()
	if button.Length() == 0 {
		return nil
	}

	overlayType := doc.Find(".epjs-css-modal-footer").First().AttrOr("data-overlay-type", "")

	return &models.PrimaryActionButtonModel{
		OverlayType:     overlayType,
		ContentFetchID:  button.AttrOr("data-content-fetch", ""),
		ActionTarget:    button.AttrOr("data-action-target", ""),
		ActionType:      button.AttrOr("data-action-type", ""),
		ActionContentID: button.AttrOr("data-action-content-id", ""),
		Location:        button.AttrOr("data-location", ""),
		ButtonText:      strings.TrimSpace(button.Find("span").Text()),
	}
}

// buildDynamicBody walks the direct children of the overlay body container
// in document order, assigning each child one zero-based sequence index.
// Value props and connectors land under "div{n}", footers under
// "footer{n}".
func (e *Extractor) buildDynamicBody(doc *goquery.Document) models.DynamicBodyModel {
	model := models.DynamicBodyModel{BodyDiv: map[string]models.DynamicBodyContent{}}

	container := doc.Find(".epjs-css-overlay-body-content").First()
	if container.Length() == 0 {
		return model
	}

	sequence := 0
	container.Children().Each(func(_ int, child *goquery.Selection) {
		divKey := "div" + strconv.Itoa(sequence)
		footerKey := "footer" + strconv.Itoa(sequence)

		child.Find(".epjs-css-overlay-value-prop").Each(func(_ int, prop *goquery.Selection) {
			e.assign(model.BodyDiv, divKey, childTagMap(prop))
		})

		child.Find(".epjs-css-overlay-value-prop-connector").Each(func(_ int, connector *goquery.Selection) {
			inner, _ := connector.Html()
			e.assign(model.BodyDiv, divKey, map[string]string{"connector": inner})
		})

		child.Find(".epjs-css-overlay-body-footer").Each(func(_ int, footer *goquery.Selection) {
			e.assign(model.BodyDiv, footerKey, childTagMap(footer))
		})

		sequence++
	})

	return model
}

func (e *Extractor) assign(bodyDiv map[string]models.DynamicBodyContent, key string, pairs map[string]string) {
	if e.opts.AccumulateDuplicateProps {
		if existing, ok := bodyDiv[key]; ok {
			for tag, value := range pairs {
				existing.TagValuePairs[tag] = value
			}
			return
		}
	}
	bodyDiv[key] = models.DynamicBodyContent{TagValuePairs: pairs}
}

// childTagMap maps each child element's tag name to its inner HTML.
func childTagMap(sel *goquery.Selection) map[string]string {
	pairs := map[string]string{}
	sel.Children().Each(func(_ int, child *goquery.Selection) {
		if len(child.Nodes) == 0 {
			return
		}
		inner, _ := child.Html()
		pairs[child.Nodes[0].Data] = inner
	})
	return pairs
}

// ownText returns the element's own text, excluding descendant element
// text.
func ownText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	var b strings.Builder
	for child := sel.Nodes[0].FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.TextNode {
			b.WriteString(child.Data)
		}
	}
	return b.String()
}
