package jaerror

import (
	"errors"
	"testing"
)

func TestJanusErrorCodeNames(t *testing.T) {
	cases := map[JanusErrorCode]string{
		CodeUnauthorized:         "Unauthorized",
		CodeSessionNotFound:      "SessionNotFound",
		CodeNotAcceptingSessions: "NotAcceptingSessions",
		JanusErrorCode(9999):     "Other",
	}
	for code, want := range cases {
		if got := code.Name(); got != want {
			t.Errorf("JanusErrorCode(%d).Name() = %q, want %q", code, got, want)
		}
	}
}

func TestJanusErrorIsMatchesByCode(t *testing.T) {
	err := &JanusError{Code: CodeSessionNotFound, Reason: "no such session"}
	if !errors.Is(err, &JanusError{Code: CodeSessionNotFound}) {
		t.Error("expected errors.Is to match on code")
	}
	if errors.Is(err, &JanusError{Code: CodeHandleNotFound}) {
		t.Error("expected errors.Is to reject a different code")
	}
}

func TestPluginResponseError(t *testing.T) {
	err := &PluginResponseError{ErrorCode: 100, ErrorText: "boom"}
	if err.Error() == "" {
		t.Error("expected non-empty error text")
	}
}
