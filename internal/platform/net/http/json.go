package http

import (
	"net/http"

	"inkwell/internal/platform/net/http/bind"
)

// JSONHandler binds and validates T from the body, then wraps fn's result as 200
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return jsonHandler(fn, OK)
}

// JSONCreatedHandler is JSONHandler answering 201
func JSONCreatedHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return jsonHandler(fn, Created)
}

func jsonHandler[T any](fn func(*http.Request, T) (any, error), ok func(any) Response) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		out, err := fn(r, in)
		if err != nil {
			return Error(err)
		}
		return ok(out)
	})
}

// JSONHandlerNoBody wraps fn's result without reading a body
func JSONHandlerNoBody(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		out, err := fn(r)
		if err != nil {
			return Error(err)
		}
		if out == nil {
			return NoContent()
		}
		return OK(out)
	})
}
