package jatype

import (
	"encoding/json"
	"testing"
)

func TestJanusIDRoundTripsString(t *testing.T) {
	id := NewStringID("room-one")
	data, err := json.Marshal(id)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"room-one"` {
		t.Fatalf("got %s, want quoted string", data)
	}

	var decoded JanusID
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !decoded.Equal(id) {
		t.Errorf("round trip mismatch: %v != %v", decoded, id)
	}
}

func TestJanusIDRoundTripsUint(t *testing.T) {
	id, err := NewUintID(MaxUint63)
	if err != nil {
		t.Fatalf("NewUintID: %v", err)
	}
	data, err := json.Marshal(id)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded JanusID
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !decoded.Equal(id) {
		t.Errorf("round trip mismatch: %v != %v", decoded, id)
	}
}

func TestJanusIDRejectsOutOfRange(t *testing.T) {
	if _, err := NewUintID(MaxUint63 + 1); err == nil {
		t.Fatal("expected NewUintID to reject a value above MaxUint63")
	}

	overflowed := MaxUint63 + 1
	data := []byte(`18446744073709551615`)
	_ = overflowed
	var decoded JanusID
	if err := json.Unmarshal(data, &decoded); err == nil {
		t.Fatal("expected UnmarshalJSON to reject an out-of-range integer")
	}
}

func TestJanusIDRejectsMalformed(t *testing.T) {
	var decoded JanusID
	if err := json.Unmarshal([]byte(`{"not":"a scalar"}`), &decoded); err == nil {
		t.Fatal("expected UnmarshalJSON to reject a non-scalar value")
	}
}
