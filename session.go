package breadpartners

import (
	"context"
	"fmt"

	sdkerrors "bread-partners-sdk/internal/common/errors"
	"bread-partners-sdk/internal/events"
	"bread-partners-sdk/internal/models"
	"bread-partners-sdk/internal/placements"
)

// PlacementSession holds the state of one registered placement: the
// fetched envelope, the extracted text model and the sink its events flow
// to. Interactions after the initial rendering go through here.
type PlacementSession struct {
	sdk       *SDK
	sink      *events.Sink
	merchant  *models.MerchantConfiguration
	placement models.PlacementData
	response  *models.PlacementsResponse
	text      *models.TextPlacementModel
}

// TextModel returns the extracted text placement model, or nil when the
// registration did not render a text placement.
func (p *PlacementSession) TextModel() *models.TextPlacementModel {
	return p.text
}

// HandleTextInteraction dispatches a tap on the placement text according
// to its action type.
func (p *PlacementSession) HandleTextInteraction(ctx context.Context) {
	if p.text == nil || p.response == nil {
		p.sink.Emit(events.SDKError{Err: sdkerrors.NewUnsupportedPlacementError("no text placement rendered in this session")})
		return
	}

	actionType, ok := models.ActionTypeFrom(p.text.ActionType)
	if !ok {
		p.sink.Emit(events.SDKError{Err: sdkerrors.NewUnsupportedPlacementError(
			fmt.Sprintf("unknown action type %q", p.text.ActionType))})
		return
	}

	// The tap report precedes any events of the fetch it triggers.
	switch actionType {
	case models.ActionShowOverlay:
		p.sink.Emit(events.TextClicked{})
		p.showOverlay(ctx)
	case models.ActionNoAction:
		p.sink.Emit(events.TextClicked{})
	case models.ActionRedirect:
		p.sink.Emit(events.TextClicked{})
		p.sink.Emit(events.OpenExternal{URL: p.text.ActionTarget})
	case models.ActionRedirectInternal:
		p.sink.Emit(events.TextClicked{})
		p.sink.Emit(events.OpenInternal{URL: p.text.ActionTarget})
	default:
		p.sink.Emit(events.SDKError{Err: sdkerrors.NewUnsupportedPlacementError(
			fmt.Sprintf("action type %q has no native handling", p.text.ActionType))})
	}
}

// showOverlay resolves the popup fragment referenced by the text
// placement's action content id and surfaces it.
func (p *PlacementSession) showOverlay(_ context.Context) {
	content := p.contentByID(p.text.ActionContentID)
	if content == nil || content.ContentData == nil {
		p.sink.Emit(events.SDKError{Err: sdkerrors.NewExtractionError(
			fmt.Sprintf("no popup content with id %q", p.text.ActionContentID))})
		return
	}

	popup, err := p.sdk.extractor.ExtractPopup(content.ContentData.HTMLContent)
	if err != nil {
		p.sink.Emit(events.SDKError{Err: err})
		return
	}

	if _, ok := models.OverlayTypeFrom(popup.OverlayType); !ok {
		p.sink.Emit(events.SDKError{Err: sdkerrors.NewUnsupportedPlacementError(
			fmt.Sprintf("unknown overlay type %q", popup.OverlayType))})
		return
	}

	p.sink.Emit(events.RenderPopup{Popup: popup})
}

func (p *PlacementSession) contentByID(id string) *models.PlacementContent {
	for i := range p.response.PlacementContent {
		if p.response.PlacementContent[i].ID == id {
			return &p.response.PlacementContent[i]
		}
	}
	return nil
}

// HandleActionButtonTapped dispatches a tap on a popup's primary action
// button. A button carrying a content-fetch id drills down into a
// follow-up popup; otherwise the tap is only reported.
func (p *PlacementSession) HandleActionButtonTapped(ctx context.Context, button *models.PrimaryActionButtonModel) {
	p.sink.Emit(events.ActionButtonTapped{})
	if button == nil || button.ContentFetchID == "" {
		return
	}

	request := placements.BuildContentFetchRequest(p.sdk.integrationKey, button.ContentFetchID, p.merchant, p.placement)
	response, err := p.sdk.placements.FetchPlacements(ctx, request)
	if err != nil {
		p.sink.Emit(events.SDKError{Err: err})
		return
	}

	content, err := placements.FirstPopupContent(response)
	if err != nil {
		p.sink.Emit(events.SDKError{Err: err})
		return
	}

	popup, err := p.sdk.extractor.ExtractPopup(content.ContentData.HTMLContent)
	if err != nil {
		p.sink.Emit(events.SDKError{Err: err})
		return
	}
	if popup.OverlayType == "" {
		popup.OverlayType = button.OverlayType
	}

	p.sink.Emit(events.RenderPopup{Popup: popup})
}

// HandleWebViewMessage forwards one raw message from the popup's web
// surface.
func (p *PlacementSession) HandleWebViewMessage(raw string) error {
	return p.sdk.bridge.Handle(raw, p.sink)
}

// Close stops event delivery for this session.
func (p *PlacementSession) Close() {
	p.sink.Close()
}

// RTPSSession is the counterpart for a pre-screen run: the flow itself
// has finished by the time it is returned, but the embedded approval
// surface keeps posting messages through it.
type RTPSSession struct {
	sdk  *SDK
	sink *events.Sink
}

// HandleWebViewMessage forwards one raw message from the embedded
// approval surface.
func (r *RTPSSession) HandleWebViewMessage(raw string) error {
	return r.sdk.bridge.Handle(raw, r.sink)
}

// Close stops event delivery for this session.
func (r *RTPSSession) Close() {
	r.sink.Close()
}
