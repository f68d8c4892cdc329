package bridge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdkerrors "bread-partners-sdk/internal/common/errors"
	"bread-partners-sdk/internal/common/logger"
	"bread-partners-sdk/internal/events"
)

func handle(t *testing.T, raw string) ([]events.Event, error) {
	t.Helper()
	handler, err := NewHandler(logger.NewTestLogger(t))
	require.NoError(t, err)

	var collected []events.Event
	sink := events.NewSink(context.Background(), func(e events.Event) {
		collected = append(collected, e)
	})
	err = handler.Handle(raw, sink)
	return collected, err
}

func TestHandleTranslatesMessages(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []events.Event
	}{
		{
			name: "view page",
			raw:  `{"action": {"type": "VIEW_PAGE", "payload": {"pageName": "offer-landing"}}}`,
			want: []events.Event{events.ScreenNameChanged{Name: "offer-landing"}},
		},
		{
			name: "cancel application",
			raw:  `{"action": {"type": "CANCEL_APPLICATION"}}`,
			want: []events.Event{events.PopupClosed{}},
		},
		{
			name: "submit application",
			raw:  `{"action": {"type": "SUBMIT_APPLICATION"}}`,
			want: []events.Event{events.ScreenNameChanged{Name: "submit-application"}},
		},
		{
			name: "application completed closes after screen change",
			raw:  `{"action": {"type": "APPLICATION_COMPLETED"}}`,
			want: []events.Event{
				events.ScreenNameChanged{Name: "application-completed"},
				events.PopupClosed{},
			},
		},
		{
			name: "offer declined",
			raw:  `{"action": {"type": "OFFER_RESPONSE", "payload": "NO"}}`,
			want: []events.Event{events.PopupClosed{}},
		},
		{
			name: "offer not me",
			raw:  `{"action": {"type": "OFFER_RESPONSE", "payload": "NOT_ME"}}`,
			want: []events.Event{events.PopupClosed{}},
		},
		{
			name: "offer accepted emits nothing",
			raw:  `{"action": {"type": "OFFER_RESPONSE", "payload": "YES"}}`,
			want: nil,
		},
		{
			name: "open external",
			raw:  `{"action": {"type": "OPEN_EXTERNAL", "payload": "https://example.com/terms"}}`,
			want: []events.Event{events.OpenExternal{URL: "https://example.com/terms"}},
		},
		{
			name: "app restart",
			raw:  `{"action": {"type": "APP_RESTART", "payload": "https://example.com/start"}}`,
			want: []events.Event{events.AppRestart{URL: "https://example.com/start"}},
		},
		{
			name: "height changed is dropped",
			raw:  `{"action": {"type": "HEIGHT_CHANGED", "payload": 320}}`,
			want: nil,
		},
		{
			name: "anchor tags only logged",
			raw:  `{"action": {"type": "AnchorTags", "payload": ["https://a", "https://b"]}}`,
			want: nil,
		},
		{
			name: "adobe tracking id only logged",
			raw:  `{"action": {"type": "LOAD_ADOBE_TRACKING_ID", "payload": {"adobeTrackingId": "t-1"}}}`,
			want: nil,
		},
		{
			name: "unknown type becomes log line",
			raw:  `{"action": {"type": "SOMETHING_NEW"}}`,
			want: []events.Event{events.LogLine{Message: "unhandled bridge message: SOMETHING_NEW"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collected, err := handle(t, tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, collected)
		})
	}
}

func TestHandleApplicationResults(t *testing.T) {
	for _, actionType := range []string{"RECEIVE_APPLICATION_RESULT", "RECEIVE_PRESCREEN_APPLICATION_RESULT"} {
		t.Run(actionType, func(t *testing.T) {
			collected, err := handle(t, `{"action": {"type": "`+actionType+`", "payload": {"applicationId": "app-7", "status": "APPROVED"}}}`)
			require.NoError(t, err)

			require.Len(t, collected, 1)
			success, ok := collected[0].(events.WebViewSuccess)
			require.True(t, ok)
			assert.Equal(t, "app-7", success.Result["applicationId"])
			assert.Equal(t, "APPROVED", success.Result["status"])
		})
	}
}

func TestHandleMalformedMessages(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: `not json at all`},
		{name: "missing action", raw: `{"foo": 1}`},
		{name: "action without type", raw: `{"action": {"payload": "x"}}`},
		{name: "non-string type", raw: `{"action": {"type": 42}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collected, err := handle(t, tt.raw)
			require.Error(t, err)
			assert.True(t, sdkerrors.IsCode(err, sdkerrors.ErrCodeDecode))
			assert.Empty(t, collected)
		})
	}
}
