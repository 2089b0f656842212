package videoroom

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

func TestDecodeRoomDestroyedEvent(t *testing.T) {
	frame := mustFrame(t, map[string]interface{}{
		"janus":      "event",
		"session_id": 1,
		"sender":     2,
		"plugindata": map[string]interface{}{
			"plugin": PluginID,
			"data":   map[string]interface{}{"videoroom": "destroyed", "room": 42},
		},
	})

	event := decode(frame)
	destroyed, ok := event.(RoomDestroyedEvent)
	if !ok {
		t.Fatalf("decode returned %T, want RoomDestroyedEvent", event)
	}
	if destroyed.Room.Uint() != 42 {
		t.Errorf("Room = %v, want 42", destroyed.Room)
	}
}

func TestDecodeNewPublisherEvent(t *testing.T) {
	frame := mustFrame(t, map[string]interface{}{
		"janus":      "event",
		"session_id": 1,
		"sender":     2,
		"plugindata": map[string]interface{}{
			"plugin": PluginID,
			"data": map[string]interface{}{
				"videoroom":  "publishers",
				"room":       42,
				"publishers": []map[string]interface{}{{"id": 7, "display": "carol"}},
			},
		},
	})

	event := decode(frame)
	newPub, ok := event.(NewPublisherEvent)
	if !ok {
		t.Fatalf("decode returned %T, want NewPublisherEvent", event)
	}
	if len(newPub.Publishers) != 1 || newPub.Publishers[0].Display != "carol" {
		t.Errorf("Publishers = %+v", newPub.Publishers)
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
