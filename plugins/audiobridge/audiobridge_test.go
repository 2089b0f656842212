package audiobridge

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

func TestDecodeJoinedEvent(t *testing.T) {
	frame := mustFrame(t, map[string]interface{}{
		"janus":      "event",
		"session_id": 1,
		"sender":     2,
		"plugindata": map[string]interface{}{
			"plugin": PluginID,
			"data": map[string]interface{}{
				"audiobridge":  "joined",
				"room":         42,
				"participants": []map[string]interface{}{{"id": 7, "display": "alice"}},
			},
		},
	})

	event := decode(frame)
	joined, ok := event.(JoinedEvent)
	if !ok {
		t.Fatalf("decode returned %T, want JoinedEvent", event)
	}
	if joined.Room.Uint() != 42 {
		t.Errorf("Room = %v, want 42", joined.Room)
	}
	if len(joined.Participants) != 1 || joined.Participants[0].Display != "alice" {
		t.Errorf("Participants = %+v", joined.Participants)
	}
}

func TestDecodePluginError(t *testing.T) {
	frame := mustFrame(t, map[string]interface{}{
		"janus":      "event",
		"session_id": 1,
		"sender":     2,
		"plugindata": map[string]interface{}{
			"plugin": PluginID,
			"data":   map[string]interface{}{"error_code": 485, "error": "no such room"},
		},
	})

	event := decode(frame)
	errEvent, ok := event.(ErrorEvent)
	if !ok {
		t.Fatalf("decode returned %T, want ErrorEvent", event)
	}
	if errEvent.ErrorCode != 485 {
		t.Errorf("ErrorCode = %d, want 485", errEvent.ErrorCode)
	}
}

func TestDecodeUnknownPayloadIsOther(t *testing.T) {
	frame := mustFrame(t, map[string]interface{}{
		"janus":      "event",
		"session_id": 1,
		"sender":     2,
		"plugindata": map[string]interface{}{
			"plugin": PluginID,
			"data":   map[string]interface{}{"audiobridge": "something-unrecognized"},
		},
	})

	event := decode(frame)
	if _, ok := event.(OtherEvent); !ok {
		t.Fatalf("decode returned %T, want OtherEvent", event)
	}
}
