package parcel

import (
	"fmt"
	"io"
	"math"
	"net/http"
)

// takenBody replaces a request body once an extractor has claimed it.
// Reads behave like an empty body, but TakeBody recognizes it and fails.
type takenBody struct{}

func (takenBody) Read([]byte) (int, error) { return 0, io.EOF }
func (takenBody) Close() error             { return nil }

// RequestParts holds one request's extraction state. Create one per
// request; it must not outlive the request.
//
// The body may be taken once. Taking it swaps the request's Body for a
// sentinel, so a second take fails even through a different RequestParts
// wrapping the same *http.Request.
type RequestParts struct {
	req          *http.Request
	headersTaken bool
}

// NewRequestParts wraps r for extraction.
func NewRequestParts(r *http.Request) *RequestParts {
	return &RequestParts{req: r}
}

// Request returns the wrapped request.
func (p *RequestParts) Request() *http.Request {
	return p.req
}

// Headers returns the request headers without taking them.
func (p *RequestParts) Headers() (http.Header, error) {
	if p.headersTaken {
		return nil, newRejection(HeadersAlreadyExtracted, nil)
	}
	if p.req.Header == nil {
		return http.Header{}, nil
	}
	return p.req.Header, nil
}

// TakeHeaders claims the headers. Later header reads through these parts fail.
func (p *RequestParts) TakeHeaders() (http.Header, error) {
	h, err := p.Headers()
	if err != nil {
		return nil, err
	}
	p.headersTaken = true
	return h, nil
}

// TakeBody claims the request body. The caller owns the returned reader
// and must close it. A second call fails with BodyAlreadyExtracted.
func (p *RequestParts) TakeBody() (io.ReadCloser, error) {
	body := p.req.Body
	if _, taken := body.(takenBody); taken {
		return nil, newRejection(BodyAlreadyExtracted, nil)
	}
	p.req.Body = takenBody{}

	if body == nil {
		return http.NoBody, nil
	}
	return body, nil
}

// BodyTaken reports whether the request body has been claimed.
func (p *RequestParts) BodyTaken() bool {
	_, taken := p.req.Body.(takenBody)
	return taken
}

// readBody drains and closes body. A positive limit caps the number of
// bytes accepted; larger bodies fail with ErrBodyTooLarge.
func readBody(body io.ReadCloser, limit int64) ([]byte, error) {
	defer func() { _ = body.Close() }()

	if limit <= 0 {
		return io.ReadAll(body)
	}

	// One byte past the limit tells an oversized body from an exact fit.
	n := limit
	if n < math.MaxInt64 {
		n++
	}
	data, err := io.ReadAll(io.LimitReader(body, n))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, limit)
	}
	return data, nil
}
