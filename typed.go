package parcel

import (
	"context"
	"net/http"
)

// MsgPack is a request or response body whose struct fields travel as a
// map keyed by field name.
type MsgPack[T any] struct {
	Value T
}

// Of wraps v for a named-mode response.
func Of[T any](v T) MsgPack[T] {
	return MsgPack[T]{Value: v}
}

// Inner returns the wrapped value.
func (m MsgPack[T]) Inner() T {
	return m.Value
}

// Response encodes the value in named mode.
func (m MsgPack[T]) Response(status int) *Response {
	return Use[T](Named).Send(context.Background(), status, m.Value)
}

// WriteResponse encodes the value and writes it to w.
func (m MsgPack[T]) WriteResponse(w http.ResponseWriter, status int) error {
	return m.Response(status).Render(w)
}

// Extract decodes a named-mode body from parts.
func Extract[T any](ctx context.Context, parts *RequestParts, opts ...Option) (MsgPack[T], error) {
	v, err := processorFor[T](Named, opts).Receive(ctx, parts)
	if err != nil {
		return MsgPack[T]{}, err
	}
	return MsgPack[T]{Value: v}, nil
}

// ExtractRequest decodes a named-mode body from r.
func ExtractRequest[T any](r *http.Request, opts ...Option) (MsgPack[T], error) {
	return Extract[T](r.Context(), NewRequestParts(r), opts...)
}

// MsgPackRaw is a request or response body whose struct fields travel as
// a positional array with no names. Both sides must declare the fields in
// the same order; see Layout.
type MsgPackRaw[T any] struct {
	Value T
}

// RawOf wraps v for a raw-mode response.
func RawOf[T any](v T) MsgPackRaw[T] {
	return MsgPackRaw[T]{Value: v}
}

// Inner returns the wrapped value.
func (m MsgPackRaw[T]) Inner() T {
	return m.Value
}

// Response encodes the value in raw mode.
func (m MsgPackRaw[T]) Response(status int) *Response {
	return Use[T](Raw).Send(context.Background(), status, m.Value)
}

// WriteResponse encodes the value and writes it to w.
func (m MsgPackRaw[T]) WriteResponse(w http.ResponseWriter, status int) error {
	return m.Response(status).Render(w)
}

// ExtractRaw decodes a raw-mode body from parts.
func ExtractRaw[T any](ctx context.Context, parts *RequestParts, opts ...Option) (MsgPackRaw[T], error) {
	v, err := processorFor[T](Raw, opts).Receive(ctx, parts)
	if err != nil {
		return MsgPackRaw[T]{}, err
	}
	return MsgPackRaw[T]{Value: v}, nil
}

// ExtractRequestRaw decodes a raw-mode body from r.
func ExtractRequestRaw[T any](r *http.Request, opts ...Option) (MsgPackRaw[T], error) {
	return ExtractRaw[T](r.Context(), NewRequestParts(r), opts...)
}
