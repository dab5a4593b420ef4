package http

import (
	"encoding/json"
	stdhttp "net/http"

	lumnet "inkwell/internal/platform/net"
)

// Envelope is the body of every JSON response
type Envelope = lumnet.Wire

// JSON writes v with status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func write(w stdhttp.ResponseWriter, status int, env Envelope) {
	if status == stdhttp.StatusNoContent {
		w.WriteHeader(status)
		return
	}
	JSON(w, status, env)
}

// RespondOK writes a 200 envelope
func RespondOK(w stdhttp.ResponseWriter, r *stdhttp.Request, data any) {
	status, env := lumnet.OK(data, lumnet.RequestID(r.Context()))
	write(w, status, env)
}

// RespondCreated writes a 201 envelope
func RespondCreated(w stdhttp.ResponseWriter, r *stdhttp.Request, data any) {
	status, env := lumnet.Created(data, lumnet.RequestID(r.Context()))
	write(w, status, env)
}

// RespondError writes err as an envelope with its mapped status
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status, env := lumnet.Error(err, lumnet.RequestID(r.Context()))
	write(w, status, env)
}

// Response is what return style handlers produce
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// Handle adapts a Response returning func to a HandlerFunc
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		resp := h(r)
		for k, vv := range resp.Header {
			for _, v := range vv {
				w.Header().Add(k, v)
			}
		}
		status, env := resp.envelope(lumnet.RequestID(r.Context()))
		write(w, status, env)
	}
}

func (resp Response) envelope(reqID string) (int, Envelope) {
	if err, ok := resp.Body.(error); ok && err != nil {
		return lumnet.Error(err, reqID)
	}
	switch resp.Status {
	case 0, stdhttp.StatusOK:
		return lumnet.OK(resp.Body, reqID)
	case stdhttp.StatusCreated:
		return lumnet.Created(resp.Body, reqID)
	case stdhttp.StatusAccepted:
		return lumnet.Accepted(resp.Body, reqID)
	case stdhttp.StatusNoContent:
		return lumnet.NoContent(reqID)
	}
	return resp.Status, Envelope{StatusCode: resp.Status, Status: stdhttp.StatusText(resp.Status), RequestID: reqID, Data: resp.Body}
}

// OK is a 200 Response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Created is a 201 Response
func Created(data any) Response { return Response{Status: stdhttp.StatusCreated, Body: data} }

// Accepted is a 202 Response
func Accepted(data any) Response { return Response{Status: stdhttp.StatusAccepted, Body: data} }

// NoContent is a 204 Response
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Error is a Response whose status comes from err
func Error(err error) Response { return Response{Body: err} }
