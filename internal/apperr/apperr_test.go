package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestIsMatchesByCode(t *testing.T) {
	err := New(CodeNotFound, "platform %q", "myspace")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound match, got %v", err)
	}
	if errors.Is(err, ErrInvalidInput) {
		t.Fatalf("did not expect ErrInvalidInput match")
	}

	wrapped := fmt.Errorf("load: %w", err)
	if !errors.Is(wrapped, ErrNotFound) {
		t.Fatalf("expected wrapped match")
	}
	if CodeOf(wrapped) != CodeNotFound {
		t.Fatalf("expected not_found, got %s", CodeOf(wrapped))
	}
	if MessageOf(wrapped) != `platform "myspace"` {
		t.Fatalf("unexpected message %q", MessageOf(wrapped))
	}
}

func TestCodeOfPlainError(t *testing.T) {
	err := errors.New("boom")
	if CodeOf(err) != CodeInternal {
		t.Fatalf("expected internal, got %s", CodeOf(err))
	}
	if MessageOf(err) != "boom" {
		t.Fatalf("unexpected message %q", MessageOf(err))
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := Wrap(CodeRenderUnavailable, cause, "render %s", "google/300x300")
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause in chain")
	}
	if got := err.Error(); got != "render_unavailable: render google/300x300: dial tcp: refused" {
		t.Fatalf("unexpected error string %q", got)
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeInvalidInput:      http.StatusBadRequest,
		CodeInvalidRule:       http.StatusBadRequest,
		CodeNotFound:          http.StatusNotFound,
		CodeRenderUnavailable: http.StatusBadGateway,
		CodeCancelled:         499,
		CodeInternal:          http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := code.HTTPStatus(); got != want {
			t.Fatalf("%s: expected %d got %d", code, want, got)
		}
	}
}
