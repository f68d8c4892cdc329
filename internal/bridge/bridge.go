// Package bridge translates messages posted by the embedded web surface
// into SDK events. Messages arrive as JSON envelopes with an action type
// and an optional payload; the translation is one-way and stateless.
package bridge

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	sdkerrors "bread-partners-sdk/internal/common/errors"
	"bread-partners-sdk/internal/common/logger"
	"bread-partners-sdk/internal/events"
)

// Action types posted by the web surface.
const (
	actionAppRestart              = "APP_RESTART"
	actionAnchorTags              = "AnchorTags"
	actionOpenExternal            = "OPEN_EXTERNAL"
	actionHeightChanged           = "HEIGHT_CHANGED"
	actionLoadAdobeTrackingID     = "LOAD_ADOBE_TRACKING_ID"
	actionViewPage                = "VIEW_PAGE"
	actionCancelApplication       = "CANCEL_APPLICATION"
	actionSubmitApplication       = "SUBMIT_APPLICATION"
	actionReceiveApplication      = "RECEIVE_APPLICATION_RESULT"
	actionReceivePrescreenResult  = "RECEIVE_PRESCREEN_APPLICATION_RESULT"
	actionApplicationCompleted    = "APPLICATION_COMPLETED"
	actionOfferResponse           = "OFFER_RESPONSE"
)

const messageSchema = `{
	"type": "object",
	"required": ["action"],
	"properties": {
		"action": {
			"type": "object",
			"required": ["type"],
			"properties": {
				"type": {"type": "string"},
				"payload": {}
			}
		}
	}
}`

type message struct {
	Action struct {
		Type    string      `json:"type"`
		Payload interface{} `json:"payload"`
	} `json:"action"`
}

// Handler validates and dispatches web surface messages.
type Handler struct {
	schema *gojsonschema.Schema
	logger logger.Logger
}

func NewHandler(log logger.Logger) (*Handler, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(messageSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile bridge message schema: %w", err)
	}
	return &Handler{schema: schema, logger: log}, nil
}

// Handle translates one raw message into zero or more events on the sink.
// A malformed message returns a DECODE_ERROR and emits nothing.
func (h *Handler) Handle(raw string, sink *events.Sink) error {
	result, err := h.schema.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return sdkerrors.NewDecodeError(err)
	}
	if !result.Valid() {
		return sdkerrors.NewDecodeError(fmt.Errorf("bridge message failed validation: %v", result.Errors()))
	}

	var msg message
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		return sdkerrors.NewDecodeError(err)
	}

	switch msg.Action.Type {
	case actionViewPage:
		if name, ok := payloadField(msg.Action.Payload, "pageName"); ok {
			sink.Emit(events.ScreenNameChanged{Name: name})
		}

	case actionCancelApplication:
		sink.Emit(events.PopupClosed{})

	case actionSubmitApplication:
		sink.Emit(events.ScreenNameChanged{Name: "submit-application"})

	case actionReceiveApplication, actionReceivePrescreenResult:
		if payload, ok := msg.Action.Payload.(map[string]interface{}); ok {
			sink.Emit(events.WebViewSuccess{Result: payload})
		}

	case actionApplicationCompleted:
		sink.Emit(events.ScreenNameChanged{Name: "application-completed"})
		sink.Emit(events.PopupClosed{})

	case actionOfferResponse:
		if payload, ok := msg.Action.Payload.(string); ok {
			if payload == "NO" || payload == "NOT_ME" {
				sink.Emit(events.PopupClosed{})
			}
		}

	case actionOpenExternal:
		if url, ok := msg.Action.Payload.(string); ok && url != "" {
			sink.Emit(events.OpenExternal{URL: url})
		}

	case actionAppRestart:
		if url, ok := msg.Action.Payload.(string); ok && url != "" {
			sink.Emit(events.AppRestart{URL: url})
		} else {
			h.logger.Warn("restart message without a target url", nil)
		}

	case actionHeightChanged:
		// Layout concern of the host surface; nothing to forward.

	case actionAnchorTags:
		h.logger.Debug("anchor tags reported by web surface", map[string]interface{}{
			"payload": msg.Action.Payload,
		})

	case actionLoadAdobeTrackingID:
		if id, ok := payloadField(msg.Action.Payload, "adobeTrackingId"); ok {
			h.logger.Info("adobe tracking id loaded", map[string]interface{}{
				"adobe_tracking_id": id,
			})
		}

	default:
		sink.Emit(events.LogLine{Message: fmt.Sprintf("unhandled bridge message: %s", msg.Action.Type)})
	}

	return nil
}

func payloadField(payload interface{}, key string) (string, bool) {
	m, ok := payload.(map[string]interface{})
	if !ok {
		return "", false
	}
	value, ok := m[key].(string)
	return value, ok
}
