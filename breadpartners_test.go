package breadpartners

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bread-partners-sdk/internal/common/config"
	sdkerrors "bread-partners-sdk/internal/common/errors"
	"bread-partners-sdk/internal/common/logger"
	"bread-partners-sdk/internal/events"
	"bread-partners-sdk/internal/models"
)

const testTextFragment = `
<div class="ep-text-placement" data-action-type="SHOW_OVERLAY" data-action-target="modal" data-action-content-id="popup-1">
  <span class="epjs-body">Pay over time</span>
  <span class="epjs-body-action"><a>Learn more</a></span>
</div>`

const testPopupFragment = `
<div class="epjs-css-overlay" data-overlay-metadata data-overlay-type="EMBEDDED_OVERLAY">
  <iframe src="https://offers.example.com/embed"></iframe>
  <h1 class="epjs-css-overlay-title">Special financing</h1>
</div>`

type brandServer struct {
	server            *httptest.Server
	placementsBody    string
	brandConfigBody   string
	brandConfigStatus int
	prescreenBody     string

	mu              sync.Mutex
	placementCalls  int
	releasePlacings chan struct{}
}

func newBrandServer(t *testing.T) *brandServer {
	t.Helper()
	bs := &brandServer{
		brandConfigBody: `{"config": {"clientName": "acme", "recaptchaSiteKeyQA": "qa-key"}}`,
		prescreenBody:   `{"returnCode": "10"}`,
	}
	bs.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/config"):
			if bs.brandConfigStatus != 0 {
				w.WriteHeader(bs.brandConfigStatus)
				return
			}
			w.Write([]byte(bs.brandConfigBody))
		case r.URL.Path == "/generatePlacements":
			if bs.releasePlacings != nil {
				<-bs.releasePlacings
			}
			bs.mu.Lock()
			bs.placementCalls++
			bs.mu.Unlock()
			w.Write([]byte(bs.placementsBody))
		case r.URL.Path == "/api/prescreen":
			w.Write([]byte(bs.prescreenBody))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(bs.server.Close)
	return bs
}

func newTestSDK(t *testing.T, bs *brandServer) *SDK {
	t.Helper()
	cfg := config.Default()
	cfg.App.Environment = "stage"
	cfg.Endpoints.Stage.BrandBaseURL = bs.server.URL
	cfg.Endpoints.Stage.RTPSBaseURL = bs.server.URL

	sdk, err := New(Options{
		IntegrationKey: "key-123",
		Config:         cfg,
		Logger:         logger.NewTestLogger(t),
	})
	require.NoError(t, err)
	return sdk
}

func textEnvelope() string {
	return `{
		"placements": [{"id": "p1", "content": {"contentId": "text-1"}}],
		"placementContent": [
			{"id": "text-1", "contentType": "HTML", "contentData": {"htmlContent": ` + jsonString(testTextFragment) + `}},
			{"id": "popup-1", "contentType": "HTML", "contentData": {"htmlContent": ` + jsonString(testPopupFragment) + `}}
		]
	}`
}

func jsonString(s string) string {
	data, _ := json.Marshal(s)
	return string(data)
}

func TestNewRequiresIntegrationKey(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err)
	assert.True(t, sdkerrors.IsCode(err, sdkerrors.ErrCodeConfiguration))
}

func TestRegisterPlacementsRendersTextWithLink(t *testing.T) {
	bs := newBrandServer(t)
	bs.placementsBody = textEnvelope()
	sdk := newTestSDK(t, bs)

	var collected []events.Event
	session, err := sdk.RegisterPlacements(context.Background(), nil,
		models.PlacementData{PlacementID: "p1", LocationType: models.LocationProduct},
		RenderOptions{},
		func(e events.Event) { collected = append(collected, e) })
	require.NoError(t, err)

	require.Len(t, collected, 1)
	text, ok := collected[0].(events.RenderTextWithLink)
	require.True(t, ok)
	assert.Equal(t, "Learn more", text.Model.ActionLink)
	assert.Equal(t, "SHOW_OVERLAY", text.Model.ActionType)
	assert.Equal(t, "popup-1", text.Model.ActionContentID)

	require.NotNil(t, session.TextModel())
}

func TestRegisterPlacementsSplitRendering(t *testing.T) {
	bs := newBrandServer(t)
	bs.placementsBody = textEnvelope()
	sdk := newTestSDK(t, bs)

	var collected []events.Event
	_, err := sdk.RegisterPlacements(context.Background(), nil,
		models.PlacementData{PlacementID: "p1"},
		RenderOptions{SplitTextAndAction: true},
		func(e events.Event) { collected = append(collected, e) })
	require.NoError(t, err)

	require.Len(t, collected, 1)
	_, ok := collected[0].(events.RenderSplitTextAndButton)
	assert.True(t, ok)
}

func TestRegisterPlacementsEmptyEnvelopeEmitsSingleError(t *testing.T) {
	bs := newBrandServer(t)
	bs.placementsBody = `{"placements": [], "placementContent": []}`
	sdk := newTestSDK(t, bs)

	var collected []events.Event
	_, err := sdk.RegisterPlacements(context.Background(), nil,
		models.PlacementData{PlacementID: "p1"}, RenderOptions{},
		func(e events.Event) { collected = append(collected, e) })
	require.NoError(t, err)

	require.Len(t, collected, 1)
	failure, ok := collected[0].(events.SDKError)
	require.True(t, ok)
	assert.True(t, sdkerrors.IsCode(failure.Err, sdkerrors.ErrCodeExtraction))
}

func TestRegisterPlacementsOpenExperience(t *testing.T) {
	bs := newBrandServer(t)
	bs.placementsBody = `{
		"placements": [{"id": "p1"}],
		"placementContent": [
			{"id": "popup-1", "contentType": "HTML", "contentData": {"htmlContent": ` + jsonString(testPopupFragment) + `}}
		]
	}`
	sdk := newTestSDK(t, bs)

	var collected []events.Event
	_, err := sdk.RegisterPlacements(context.Background(), nil,
		models.PlacementData{PlacementID: "p1"},
		RenderOptions{OpenExperience: true},
		func(e events.Event) { collected = append(collected, e) })
	require.NoError(t, err)

	require.Len(t, collected, 2)
	_, ok := collected[0].(events.TextClicked)
	require.True(t, ok)
	popup, ok := collected[1].(events.RenderPopup)
	require.True(t, ok)
	require.NotNil(t, popup.Popup)
	assert.Equal(t, "https://offers.example.com/embed", popup.Popup.WebViewURL)
}

func TestHandleTextInteractionShowsOverlay(t *testing.T) {
	bs := newBrandServer(t)
	bs.placementsBody = textEnvelope()
	sdk := newTestSDK(t, bs)

	var collected []events.Event
	session, err := sdk.RegisterPlacements(context.Background(), nil,
		models.PlacementData{PlacementID: "p1"}, RenderOptions{},
		func(e events.Event) { collected = append(collected, e) })
	require.NoError(t, err)

	collected = collected[:0]
	session.HandleTextInteraction(context.Background())

	require.Len(t, collected, 2)
	_, ok := collected[0].(events.TextClicked)
	require.True(t, ok)
	popup, ok := collected[1].(events.RenderPopup)
	require.True(t, ok)
	require.NotNil(t, popup.Popup)
	assert.Equal(t, "EMBEDDED_OVERLAY", popup.Popup.OverlayType)
	assert.Equal(t, "Special financing", popup.Popup.OverlayTitle.Text())
}

func TestRegisterPlacementsBrandConfigFailureStopsFlow(t *testing.T) {
	bs := newBrandServer(t)
	bs.placementsBody = textEnvelope()
	bs.brandConfigStatus = http.StatusInternalServerError
	sdk := newTestSDK(t, bs)

	var collected []events.Event
	_, err := sdk.RegisterPlacements(context.Background(), nil,
		models.PlacementData{PlacementID: "p1"}, RenderOptions{},
		func(e events.Event) { collected = append(collected, e) })
	require.NoError(t, err)

	require.Len(t, collected, 1)
	failure, ok := collected[0].(events.SDKError)
	require.True(t, ok)
	assert.True(t, sdkerrors.IsCode(failure.Err, sdkerrors.ErrCodeConfiguration))
	assert.Equal(t, 0, bs.placementCalls)
}

func TestHandleTextInteractionRedirect(t *testing.T) {
	bs := newBrandServer(t)
	fragment := strings.Replace(textEnvelope(), "SHOW_OVERLAY", "REDIRECT", 1)
	bs.placementsBody = strings.Replace(fragment, `data-action-target=\"modal\"`,
		`data-action-target=\"https://apply.example.com\"`, 1)
	sdk := newTestSDK(t, bs)

	var collected []events.Event
	session, err := sdk.RegisterPlacements(context.Background(), nil,
		models.PlacementData{PlacementID: "p1"}, RenderOptions{},
		func(e events.Event) { collected = append(collected, e) })
	require.NoError(t, err)

	collected = collected[:0]
	session.HandleTextInteraction(context.Background())

	require.Len(t, collected, 2)
	_, ok := collected[0].(events.TextClicked)
	require.True(t, ok)
	open, ok := collected[1].(events.OpenExternal)
	require.True(t, ok)
	assert.Equal(t, "https://apply.example.com", open.URL)
}

func TestHandleTextInteractionUnknownActionType(t *testing.T) {
	bs := newBrandServer(t)
	bs.placementsBody = strings.Replace(textEnvelope(), "SHOW_OVERLAY", "DO_A_FLIP", 1)
	sdk := newTestSDK(t, bs)

	var collected []events.Event
	session, err := sdk.RegisterPlacements(context.Background(), nil,
		models.PlacementData{PlacementID: "p1"}, RenderOptions{},
		func(e events.Event) { collected = append(collected, e) })
	require.NoError(t, err)

	collected = collected[:0]
	session.HandleTextInteraction(context.Background())

	require.Len(t, collected, 1)
	failure, ok := collected[0].(events.SDKError)
	require.True(t, ok)
	assert.True(t, sdkerrors.IsCode(failure.Err, sdkerrors.ErrCodeUnsupportedPlacement))
}

func TestHandleActionButtonTappedDrillsDown(t *testing.T) {
	bs := newBrandServer(t)
	bs.placementsBody = textEnvelope()
	sdk := newTestSDK(t, bs)

	var collected []events.Event
	session, err := sdk.RegisterPlacements(context.Background(), nil,
		models.PlacementData{PlacementID: "p1"}, RenderOptions{},
		func(e events.Event) { collected = append(collected, e) })
	require.NoError(t, err)

	collected = collected[:0]
	session.HandleActionButtonTapped(context.Background(), &models.PrimaryActionButtonModel{
		ContentFetchID: "popup-1",
		OverlayType:    "SINGLE_PRODUCT_OVERLAY",
	})

	require.Len(t, collected, 2)
	_, ok := collected[0].(events.ActionButtonTapped)
	require.True(t, ok)
	popup, ok := collected[1].(events.RenderPopup)
	require.True(t, ok)
	require.NotNil(t, popup.Popup)
}

func TestHandleActionButtonTappedWithoutFetchID(t *testing.T) {
	bs := newBrandServer(t)
	bs.placementsBody = textEnvelope()
	sdk := newTestSDK(t, bs)

	var collected []events.Event
	session, err := sdk.RegisterPlacements(context.Background(), nil,
		models.PlacementData{PlacementID: "p1"}, RenderOptions{},
		func(e events.Event) { collected = append(collected, e) })
	require.NoError(t, err)

	before := bs.placementCalls
	collected = collected[:0]
	session.HandleActionButtonTapped(context.Background(), &models.PrimaryActionButtonModel{})

	require.Len(t, collected, 1)
	_, ok := collected[0].(events.ActionButtonTapped)
	assert.True(t, ok)
	assert.Equal(t, before, bs.placementCalls)
}

func TestOneFlowAtATime(t *testing.T) {
	bs := newBrandServer(t)
	bs.placementsBody = textEnvelope()
	bs.releasePlacings = make(chan struct{})
	sdk := newTestSDK(t, bs)

	started := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		close(started)
		_, err := sdk.RegisterPlacements(context.Background(), nil,
			models.PlacementData{PlacementID: "p1"}, RenderOptions{}, nil)
		assert.NoError(t, err)
	}()

	<-started
	// Wait until the first flow is holding the slot.
	require.Eventually(t, func() bool {
		sdk.mu.Lock()
		defer sdk.mu.Unlock()
		return sdk.flowActive
	}, time.Second, 5*time.Millisecond)

	_, err := sdk.RegisterPlacements(context.Background(), nil,
		models.PlacementData{PlacementID: "p1"}, RenderOptions{}, nil)
	require.Error(t, err)
	assert.True(t, sdkerrors.IsCode(err, sdkerrors.ErrCodeFlowInProgress))

	close(bs.releasePlacings)
	<-done
}

func TestSilentRTPSRequestSilentOnNoHit(t *testing.T) {
	bs := newBrandServer(t)
	bs.prescreenBody = `{"returnCode": "10"}`
	sdk := newTestSDK(t, bs)

	var collected []events.Event
	session, err := sdk.SilentRTPSRequest(context.Background(), nil,
		models.RTPSData{LocationType: models.LocationCheckout},
		func(e events.Event) { collected = append(collected, e) })
	require.NoError(t, err)
	require.NotNil(t, session)

	assert.Empty(t, collected)
}

func TestSilentRTPSRequestApprovedDeliversOfferAndBridges(t *testing.T) {
	bs := newBrandServer(t)
	bs.prescreenBody = `{"returnCode": "01", "prescreenId": 555}`
	bs.placementsBody = `{
		"placements": [{"id": "p1", "renderContext": {"LOCATION": "RTPS-Approval", "embeddedUrl": "https://acquire.example.com/prescreen/offer?prescreenId=555"}}],
		"placementContent": []
	}`
	sdk := newTestSDK(t, bs)

	var collected []events.Event
	session, err := sdk.SilentRTPSRequest(context.Background(), nil,
		models.RTPSData{LocationType: models.LocationCheckout},
		func(e events.Event) { collected = append(collected, e) })
	require.NoError(t, err)

	require.Len(t, collected, 1)
	popup, ok := collected[0].(events.RenderPopup)
	require.True(t, ok)
	require.NotNil(t, popup.Popup)
	assert.Contains(t, popup.Popup.WebViewURL, "prescreenId=555")

	// The embedded surface keeps talking through the session.
	collected = collected[:0]
	require.NoError(t, session.HandleWebViewMessage(`{"action": {"type": "CANCEL_APPLICATION"}}`))
	require.Len(t, collected, 1)
	_, ok = collected[0].(events.PopupClosed)
	assert.True(t, ok)
}
