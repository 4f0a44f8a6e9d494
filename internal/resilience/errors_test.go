package resilience

import (
	"errors"
	"fmt"
	"syscall"
	"testing"
)

func TestIsTransient_Nil(t *testing.T) {
	if IsTransient(nil) {
		t.Error("nil error must not be transient")
	}
}

func TestIsTransient_TransientError(t *testing.T) {
	err := Transient(errors.New("rate limited"), 429)
	if !IsTransient(err) {
		t.Error("TransientError must be transient")
	}

	wrapped := fmt.Errorf("outer: %w", err)
	if !IsTransient(wrapped) {
		t.Error("wrapped TransientError must be transient")
	}
}

func TestIsTransient_Syscall(t *testing.T) {
	for _, errno := range []syscall.Errno{syscall.ECONNRESET, syscall.ECONNREFUSED, syscall.ECONNABORTED} {
		if !IsTransient(fmt.Errorf("dial: %w", errno)) {
			t.Errorf("%v must be transient", errno)
		}
	}
}

func TestIsTransient_StringHeuristics(t *testing.T) {
	cases := []struct {
		msg  string
		want bool
	}{
		{"read tcp: connection reset by peer", true},
		{"write: broken pipe", true},
		{"dial tcp: i/o timeout", true},
		{"net/http: TLS handshake timeout", true},
		{"invalid request payload", false},
		{"unauthorized", false},
	}

	for _, c := range cases {
		if got := IsTransient(errors.New(c.msg)); got != c.want {
			t.Errorf("IsTransient(%q) = %v, want %v", c.msg, got, c.want)
		}
	}
}

func TestTransientError_Unwrap(t *testing.T) {
	inner := errors.New("inner")
	err := Transient(inner, 503)

	if !errors.Is(err, inner) {
		t.Error("Transient must unwrap to the inner error")
	}
	if err.Error() != "inner" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestIsTransientHTTPStatus(t *testing.T) {
	for _, code := range []int{408, 429, 500, 502, 503, 504} {
		if !IsTransientHTTPStatus(code) {
			t.Errorf("status %d must be transient", code)
		}
	}
	for _, code := range []int{200, 301, 400, 401, 403, 404, 422} {
		if IsTransientHTTPStatus(code) {
			t.Errorf("status %d must not be transient", code)
		}
	}
}
