// Package jatype holds wire-level value types shared by the core and the
// plugin packages: the untagged JanusId union used for mountpoint, room
// and participant identifiers.
package jatype

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MaxUint63 is the largest value a Janus numeric identifier may take: Janus
// encodes these as signed 64-bit integers on the wire, so the usable range
// is 0..2^63-1.
const MaxUint63 = uint64(1<<63 - 1)

// JanusID is a discriminated union of a string identifier or an unsigned
// 63-bit integer identifier. It serializes untagged: whichever variant is
// held is written directly as a JSON string or JSON number.
type JanusID struct {
	isString bool
	str      string
	num      uint64
}

// NewStringID builds a string-flavored identifier.
func NewStringID(s string) JanusID {
	return JanusID{isString: true, str: s}
}

// NewUintID builds a numeric identifier. It returns an error if n exceeds
// MaxUint63.
func NewUintID(n uint64) (JanusID, error) {
	if n > MaxUint63 {
		return JanusID{}, fmt.Errorf("jatype: id %d exceeds max uint63 %d", n, MaxUint63)
	}
	return JanusID{num: n}, nil
}

// IsString reports whether this identifier holds the string variant.
func (id JanusID) IsString() bool { return id.isString }

// StringValue returns the string-variant value, or "" if the identifier
// holds a numeric value; callers should check IsString first, or just use
// the Stringer implementation for display.
func (id JanusID) StringValue() string { return id.str }

// Uint returns the numeric-variant value.
func (id JanusID) Uint() uint64 { return id.num }

// String implements fmt.Stringer with a display form usable regardless of
// which variant is held.
func (id JanusID) String() string {
	if id.isString {
		return id.str
	}
	return fmt.Sprintf("%d", id.num)
}

// Equal reports whether two identifiers are the same variant and value.
func (id JanusID) Equal(other JanusID) bool {
	if id.isString != other.isString {
		return false
	}
	if id.isString {
		return id.str == other.str
	}
	return id.num == other.num
}

// MarshalJSON writes the held variant untagged.
func (id JanusID) MarshalJSON() ([]byte, error) {
	if id.isString {
		return json.Marshal(id.str)
	}
	return json.Marshal(id.num)
}

// UnmarshalJSON picks the branch from the first byte: a quoted value takes
// the string branch, anything else the integer branch. An integer literal
// above MaxUint63 is a hard failure, not a silent fallback to the string
// branch.
func (id *JanusID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("jatype: invalid JanusID string: %w", err)
		}
		*id = JanusID{isString: true, str: s}
		return nil
	}

	var n uint64
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("jatype: invalid JanusID: %w", err)
	}
	if n > MaxUint63 {
		return fmt.Errorf("jatype: JanusID %d out of range (max %d)", n, MaxUint63)
	}
	*id = JanusID{num: n}
	return nil
}
