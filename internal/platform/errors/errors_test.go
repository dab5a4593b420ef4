package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCode(t *testing.T) {
	cases := map[ErrorCode]int{
		ErrorCodeNotFound:        http.StatusNotFound,
		ErrorCodeInvalidArgument: http.StatusBadRequest,
		ErrorCodeValidation:      http.StatusBadRequest,
		ErrorCodeDuplicateKey:    http.StatusConflict,
		ErrorCodeUnauthorized:    http.StatusUnauthorized,
		ErrorCodeTooManyRequests: http.StatusTooManyRequests,
		ErrorCodeUnavailable:     http.StatusServiceUnavailable,
		ErrorCodeDB:              http.StatusInternalServerError,
		ErrorCode(999):           http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := HTTPStatusCode(code); got != want {
			t.Fatalf("HTTPStatusCode(%d) = %d, want %d", code, got, want)
		}
	}
}

func TestWrapKeepsCause(t *testing.T) {
	root := stderrs.New("dial tcp: refused")
	err := Wrap(root, ErrorCodeUnavailable, "embed query")
	if !stderrs.Is(err, root) {
		t.Fatalf("Wrap lost the cause")
	}
	if err.Error() != "embed query: dial tcp: refused" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if Root(fmt.Errorf("outer: %w", err)) != root {
		t.Fatalf("Root did not reach the innermost error")
	}
	if Wrap(nil, ErrorCodeDB, "x") != nil || Wrapf(nil, ErrorCodeDB, "x %d", 1) != nil {
		t.Fatalf("wrapping nil must stay nil")
	}
}

func TestCodeOfThroughStdWrapping(t *testing.T) {
	err := fmt.Errorf("ctx: %w", NotFoundf("entry %d", 7))
	if CodeOf(err) != ErrorCodeNotFound || !IsCode(err, ErrorCodeNotFound) {
		t.Fatalf("CodeOf = %d", CodeOf(err))
	}
	if HTTPStatus(err) != http.StatusNotFound {
		t.Fatalf("HTTPStatus = %d", HTTPStatus(err))
	}
	if CodeOf(stderrs.New("plain")) != ErrorCodeUnknown {
		t.Fatalf("foreign errors should be Unknown")
	}
}

func TestWireFromHidesForeignText(t *testing.T) {
	w := WireFrom(stderrs.New("pq: password authentication failed"))
	if w.Code != ErrorCodeUnknown || w.Message != "internal error" {
		t.Fatalf("foreign wire = %+v", w)
	}
	w = WireFrom(Wrap(stderrs.New("secret"), ErrorCodeValidation, "bad date"))
	if w.Message != "bad date" || w.Code != ErrorCodeValidation {
		t.Fatalf("typed wire = %+v", w)
	}
	if (WireFrom(nil) != Wire{}) {
		t.Fatalf("nil should give a zero wire")
	}
}

func TestWithField(t *testing.T) {
	base := Validationf("too short")
	withF := WithField(base, "password")
	e, ok := As(withF)
	if !ok || e.Field() != "password" || e.Message() != "too short" {
		t.Fatalf("WithField = %+v", e)
	}
	if b, _ := As(base); b.Field() != "" {
		t.Fatalf("WithField must not mutate the original")
	}
	foreign := WithField(stderrs.New("x"), "f")
	if CodeOf(foreign) != ErrorCodeUnknown {
		t.Fatalf("foreign WithField code = %d", CodeOf(foreign))
	}
	if WithField(nil, "f") != nil {
		t.Fatalf("WithField(nil) should be nil")
	}
}

func TestConstructors(t *testing.T) {
	cases := []struct {
		err  error
		code ErrorCode
	}{
		{InvalidArgf("a"), ErrorCodeInvalidArgument},
		{JSONErrf("a"), ErrorCodeJSON},
		{Unauthorizedf("a"), ErrorCodeUnauthorized},
		{Forbiddenf("a"), ErrorCodeForbidden},
		{Conflictf("a"), ErrorCodeConflict},
		{TooManyf("a"), ErrorCodeTooManyRequests},
		{Unavailablef("a"), ErrorCodeUnavailable},
		{PanicErrf("a"), ErrorCodePanic},
		{Internalf("a"), ErrorCodeUnknown},
	}
	for i, c := range cases {
		if CodeOf(c.err) != c.code {
			t.Fatalf("case %d: code = %d, want %d", i, CodeOf(c.err), c.code)
		}
	}
	var nilErr *Error
	if nilErr.Error() != "<nil>" {
		t.Fatalf("nil *Error renders %q", nilErr.Error())
	}
}
