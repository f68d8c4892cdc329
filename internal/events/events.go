// Package events defines the tagged-union event stream through which the
// core reports results, errors and logs to the external renderer. It is
// the only outward channel; no toolkit-specific types cross it.
package events

import "bread-partners-sdk/internal/models"

// Event is the closed set of SDK events. Exactly one consumer receives
// the events of a flow invocation, in the order the producing steps
// complete.
type Event interface {
	isEvent()
}

// RenderTextWithLink asks the renderer to display placement text with an
// embedded tappable link.
type RenderTextWithLink struct {
	Model models.TextPlacementModel
}

// RenderSplitTextAndButton asks the renderer to display placement text
// and its action as two separate elements.
type RenderSplitTextAndButton struct {
	Model models.TextPlacementModel
}

// RenderPopup asks the renderer to present a popup surface. Exactly one
// of Popup or Challenge is set: Popup for an offer overlay, Challenge for
// a bot-challenge resolution surface.
type RenderPopup struct {
	Popup     *models.PopupPlacementModel
	Challenge *ChallengeSurface
}

// ChallengeSurface carries a bot-mitigation interstitial for the host to
// load. The consumer callback's return is the resolution signal: the flow
// retries the lookup as soon as the callback returns, so the consumer
// must block until navigation returns to a URL whose host matches
// OriginalURL's host. Returning immediately spends the retry before the
// user can solve the challenge.
type ChallengeSurface struct {
	HTML        string
	OriginalURL string
}

// TextClicked reports that the placement text was tapped.
type TextClicked struct{}

// ActionButtonTapped reports that the popup's action button was tapped.
type ActionButtonTapped struct{}

// ScreenNameChanged reports a screen transition inside the web surface,
// typically consumed for analytics.
type ScreenNameChanged struct {
	Name string
}

// WebViewSuccess carries a success payload from the web surface, such as
// an approval confirmation.
type WebViewSuccess struct {
	Result map[string]interface{}
}

// WebViewFailure carries a failure from the web surface.
type WebViewFailure struct {
	Err error
}

// PopupClosed reports that the popup was dismissed.
type PopupClosed struct{}

// OpenExternal asks the host to open a URL outside the embedded surface.
type OpenExternal struct {
	URL string
}

// OpenInternal asks the host to navigate to a URL inside its own
// experience.
type OpenInternal struct {
	URL string
}

// AppRestart asks the host to reload the embedded surface at the given
// URL.
type AppRestart struct {
	URL string
}

// SDKError reports a terminal flow failure. Each failed flow emits
// exactly one.
type SDKError struct {
	Err error
}

// LogLine mirrors an SDK log line to the host.
type LogLine struct {
	Message string
}

func (RenderTextWithLink) isEvent()       {}
func (RenderSplitTextAndButton) isEvent() {}
func (RenderPopup) isEvent()              {}
func (TextClicked) isEvent()              {}
func (ActionButtonTapped) isEvent()       {}
func (ScreenNameChanged) isEvent()        {}
func (WebViewSuccess) isEvent()           {}
func (WebViewFailure) isEvent()           {}
func (PopupClosed) isEvent()              {}
func (OpenExternal) isEvent()             {}
func (OpenInternal) isEvent()             {}
func (AppRestart) isEvent()               {}
func (SDKError) isEvent()                 {}
func (LogLine) isEvent()                  {}
