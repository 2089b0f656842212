package streaming

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

func TestDecodeMountpointCreated(t *testing.T) {
	frame := mustFrame(t, map[string]interface{}{
		"janus":      "event",
		"session_id": 1,
		"sender":     2,
		"plugindata": map[string]interface{}{
			"plugin": PluginID,
			"data":   map[string]interface{}{"streaming": "created", "id": 63807, "type": "live"},
		},
	})

	event := decode(frame)
	created, ok := event.(MountpointCreatedEvent)
	if !ok {
		t.Fatalf("decode returned %T, want MountpointCreatedEvent", event)
	}
	if created.ID.Uint() != 63807 || created.Type != "live" {
		t.Errorf("ID/Type = %v/%s", created.ID, created.Type)
	}
}

func TestDecodeMountpointDestroyed(t *testing.T) {
	frame := mustFrame(t, map[string]interface{}{
		"janus":      "event",
		"session_id": 1,
		"sender":     2,
		"plugindata": map[string]interface{}{
			"plugin": PluginID,
			"data":   map[string]interface{}{"streaming": "destroyed", "id": 63807},
		},
	})

	event := decode(frame)
	destroyed, ok := event.(MountpointDestroyedEvent)
	if !ok {
		t.Fatalf("decode returned %T, want MountpointDestroyedEvent", event)
	}
	if destroyed.ID.Uint() != 63807 {
		t.Errorf("ID = %v, want 63807", destroyed.ID)
	}
}

func TestDecodePluginError(t *testing.T) {
	frame := mustFrame(t, map[string]interface{}{
		"janus":      "event",
		"session_id": 1,
		"sender":     2,
		"plugindata": map[string]interface{}{
			"plugin": PluginID,
			"data": map[string]interface{}{
				"error_code": 456,
				"error":      "Can't add 'rtp' stream, error creating data source stream",
			},
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
		"janus":      "event",
		"session_id": 1,
		"sender":     2,
		"plugindata": map[string]interface{}{
			"plugin": PluginID,
			"data":   map[string]interface{}{"streaming": "jarust_rocks", "jarust": "rocks"},
		},
	})

	event := decode(frame)
	if _, ok := event.(OtherEvent); !ok {
		t.Fatalf("decode returned %T, want OtherEvent", event)
	}
}
