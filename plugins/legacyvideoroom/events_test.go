package legacyvideoroom

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

func TestDecodeRoomJoinedEvent(t *testing.T) {
	frame := mustFrame(t, map[string]interface{}{
		"janus":      "event",
		"session_id": 1,
		"sender":     2,
		"plugindata": map[string]interface{}{
			"plugin": PluginID,
			"data": map[string]interface{}{
				"videoroom":  "joined",
				"id":         7,
				"room":       42,
				"private_id": 99,
				"publishers": []map[string]interface{}{{"id": 8, "display": "bob"}},
			},
		},
	})

	event := decode(frame)
	joined, ok := event.(RoomJoinedEvent)
	if !ok {
		t.Fatalf("decode returned %T, want RoomJoinedEvent", event)
	}
	if joined.Room.Uint() != 42 || joined.ID.Uint() != 7 {
		t.Errorf("Room/ID = %v/%v", joined.Room, joined.ID)
	}
	if joined.PrivateID != 99 {
		t.Errorf("PrivateID = %d, want 99", joined.PrivateID)
	}
	if len(joined.Publishers) != 1 || joined.Publishers[0].Display != "bob" {
		t.Errorf("Publishers = %+v", joined.Publishers)
	}
}

func TestDecodeKickedEvent(t *testing.T) {
	frame := mustFrame(t, map[string]interface{}{
		"janus":      "event",
		"session_id": 1,
		"sender":     2,
		"plugindata": map[string]interface{}{
			"plugin": PluginID,
			"data": map[string]interface{}{
				"videoroom": "event",
				"room":      42,
				"kicked":    7,
			},
		},
	})

	event := decode(frame)
	kicked, ok := event.(KickedEvent)
	if !ok {
		t.Fatalf("decode returned %T, want KickedEvent", event)
	}
	if kicked.Participant.Uint() != 7 {
		t.Errorf("Participant = %v, want 7", kicked.Participant)
	}
}

func TestDecodePluginError(t *testing.T) {
	frame := mustFrame(t, map[string]interface{}{
		"janus":      "event",
		"session_id": 1,
		"sender":     2,
		"plugindata": map[string]interface{}{
			"plugin": PluginID,
			"data":   map[string]interface{}{"error_code": 426, "error": "room already exists"},
		},
	})

	event := decode(frame)
	errEvent, ok := event.(ErrorEvent)
	if !ok {
		t.Fatalf("decode returned %T, want ErrorEvent", event)
	}
	if errEvent.ErrorCode != 426 {
		t.Errorf("ErrorCode = %d, want 426", errEvent.ErrorCode)
	}
}

func TestDecodeUnknownPayloadIsOther(t *testing.T) {
	frame := mustFrame(t, map[string]interface{}{
		"janus":      "event",
		"session_id": 1,
		"sender":     2,
		"plugindata": map[string]interface{}{
			"plugin": PluginID,
			"data":   map[string]interface{}{"videoroom": "something-unrecognized"},
		},
	})

	event := decode(frame)
	if _, ok := event.(OtherEvent); !ok {
		t.Fatalf("decode returned %T, want OtherEvent", event)
	}
}
