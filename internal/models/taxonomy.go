package models

// ActionType enumerates the actions a placement can request when its link
// or button is tapped.
type ActionType string

const (
	ActionShowOverlay      ActionType = "SHOW_OVERLAY"
	ActionRedirect         ActionType = "REDIRECT"
	ActionBreadApply       ActionType = "BREAD_APPLY"
	ActionRedirectInternal ActionType = "REDIRECT_INTERNAL"
	ActionVersatileEco     ActionType = "VERSATILE_ECO"
	ActionNoAction         ActionType = "NO_ACTION"
)

var actionTypeMap = map[string]ActionType{
	"SHOW_OVERLAY":      ActionShowOverlay,
	"REDIRECT":          ActionRedirect,
	"BREAD_APPLY":       ActionBreadApply,
	"REDIRECT_INTERNAL": ActionRedirectInternal,
	"VERSATILE_ECO":     ActionVersatileEco,
	"NO_ACTION":         ActionNoAction,
}

// ActionTypeFrom maps a raw server string to its ActionType. Unknown
// strings return false; callers treat that as an unsupported placement,
// never a crash.
func ActionTypeFrom(raw string) (ActionType, bool) {
	t, ok := actionTypeMap[raw]
	return t, ok
}

// OverlayType enumerates the popup surfaces.
type OverlayType string

const (
	OverlayEmbedded      OverlayType = "EMBEDDED_OVERLAY"
	OverlaySingleProduct OverlayType = "SINGLE_PRODUCT_OVERLAY"
)

var overlayTypeMap = map[string]OverlayType{
	"EMBEDDED_OVERLAY":       OverlayEmbedded,
	"SINGLE_PRODUCT_OVERLAY": OverlaySingleProduct,
}

// OverlayTypeFrom maps a raw server string to its OverlayType.
func OverlayTypeFrom(raw string) (OverlayType, bool) {
	t, ok := overlayTypeMap[raw]
	return t, ok
}
