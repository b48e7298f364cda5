package transport

import (
	"errors"
	"io"
	"testing"
)

func TestLinkErrorUnwrap(t *testing.T) {
	err := &LinkError{Op: "write", Err: io.ErrShortWrite}
	if !errors.Is(err, io.ErrShortWrite) {
		t.Error("LinkError does not unwrap to its underlying error")
	}

	want := "link write failed: short write"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestErrTimeoutIdentity(t *testing.T) {
	wrapped := &LinkError{Op: "read", Err: ErrTimeout}
	if !errors.Is(wrapped, ErrTimeout) {
		t.Error("wrapped timeout not recognized by errors.Is")
	}
}
