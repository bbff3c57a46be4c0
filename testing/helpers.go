// Package testing provides test utilities for parcel.
package testing

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	gotesting "testing"

	"github.com/zoobzio/parcel/msgpack"
)

// Input is the smallest named-mode payload: {foo: "bar"}.
type Input struct {
	Foo string `msgpack:"foo"`
}

// User mirrors a typical API resource with a binary field.
type User struct {
	Name string `msgpack:"name"`
	Data []byte `msgpack:"data"`
}

// Address is used to show raw-mode field order coupling.
type Address struct {
	Street string `msgpack:"street"`
	City   string `msgpack:"city"`
}

// AddressSwapped declares the same fields as Address in the opposite order.
type AddressSwapped struct {
	City   string `msgpack:"city"`
	Street string `msgpack:"street"`
}

// MarshalNamed encodes v in named mode or fails the test.
func MarshalNamed(tb gotesting.TB, v any) []byte {
	tb.Helper()
	data, err := msgpack.New().Marshal(v)
	if err != nil {
		tb.Fatalf("named marshal: %v", err)
	}
	return data
}

// MarshalRaw encodes v in raw mode or fails the test.
func MarshalRaw(tb gotesting.TB, v any) []byte {
	tb.Helper()
	data, err := msgpack.NewRaw().Marshal(v)
	if err != nil {
		tb.Fatalf("raw marshal: %v", err)
	}
	return data
}

// NewRequest builds a POST request with the given Content-Type and body.
// An empty contentType leaves the header unset.
func NewRequest(contentType string, body []byte) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	return r
}
