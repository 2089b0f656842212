package echotest

import (
	"encoding/json"
	"testing"

	"github.com/jarust-go/jarust/japrotocol"
)

func mustFrame(t *testing.T, v interface{}) japrotocol.Frame {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	frame, err := japrotocol.ParseFrame(data)
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return frame
}

func TestDecodeResultEvent(t *testing.T) {
	frame := mustFrame(t, map[string]interface{}{
		"janus":   "event",
		"session_id": 1,
		"sender":  2,
		"plugindata": map[string]interface{}{
			"plugin": PluginID,
			"data":   map[string]interface{}{"echotest": "event", "result": "ok"},
		},
	})

	event := decode(frame)
	result, ok := event.(ResultEvent)
	if !ok {
		t.Fatalf("decode returned %T, want ResultEvent", event)
	}
	if result.Result != "ok" {
		t.Errorf("Result = %q, want ok", result.Result)
	}
}

func TestDecodePluginError(t *testing.T) {
	frame := mustFrame(t, map[string]interface{}{
		"janus":   "event",
		"session_id": 1,
		"sender":  2,
		"plugindata": map[string]interface{}{
			"plugin": PluginID,
			"data":   map[string]interface{}{"error_code": 456, "error": "bad request"},
		},
	})

	event := decode(frame)
	errEvent, ok := event.(ErrorEvent)
	if !ok {
		t.Fatalf("decode returned %T, want ErrorEvent", event)
	}
	if errEvent.ErrorCode != 456 {
		t.Errorf("ErrorCode = %d, want 456", errEvent.ErrorCode)
	}
}

func TestDecodeUnknownPayloadIsOther(t *testing.T) {
	frame := mustFrame(t, map[string]interface{}{
		"janus":   "event",
		"session_id": 1,
		"sender":  2,
		"plugindata": map[string]interface{}{
			"plugin": PluginID,
			"data":   map[string]interface{}{"something": "unexpected"},
		},
	})

	event := decode(frame)
	if _, ok := event.(OtherEvent); !ok {
		t.Fatalf("decode returned %T, want OtherEvent", event)
	}
}
