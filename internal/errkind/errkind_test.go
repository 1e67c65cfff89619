package errkind

import (
	"errors"
	"net/http"
	"testing"
)

func TestErrorError(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"no wrapped error", New(InputInvalid, "bad repo_id"), "input_invalid: bad repo_id"},
		{"wrapped error", Wrap(Internal, "boom", errors.New("disk full")), "internal: boom: disk full"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := Wrap(Internal, "outer", inner)
	if !errors.Is(err, inner) {
		t.Errorf("errors.Is(err, inner) = false, want true")
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(New(GraphAbsent, "no graph")); got != GraphAbsent {
		t.Errorf("KindOf(*Error) = %q, want %q", got, GraphAbsent)
	}
	if got := KindOf(errors.New("plain")); got != Internal {
		t.Errorf("KindOf(plain error) = %q, want %q", got, Internal)
	}
	if got := KindOf(nil); got != Internal {
		t.Errorf("KindOf(nil) = %q, want %q", got, Internal)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{InputInvalid, http.StatusBadRequest},
		{GraphAbsent, http.StatusNotFound},
		{Cancelled, http.StatusRequestTimeout},
		{CollaboratorUnavailable, http.StatusServiceUnavailable},
		{ParseSkipped, http.StatusOK},
		{CentralityDegenerate, http.StatusOK},
		{Internal, http.StatusInternalServerError},
		{Kind("unknown_kind"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := HTTPStatus(tt.kind); got != tt.want {
				t.Errorf("HTTPStatus(%q) = %d, want %d", tt.kind, got, tt.want)
			}
		})
	}
}
