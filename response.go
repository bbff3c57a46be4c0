package parcel

import "net/http"

const (
	// contentTypeText marks rejection bodies.
	contentTypeText = "text/plain; charset=utf-8"

	// contentTypeEncodeFailure marks the body of a failed encode.
	contentTypeEncodeFailure = "text/plain"
)

// Response is a complete outbound HTTP response: status, headers, body.
// The collaborator that owns the connection writes it with Render.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Responder is implemented by values that can render themselves as a
// response with the given status.
type Responder interface {
	Response(status int) *Response
}

// ContentType returns the response Content-Type header.
func (r *Response) ContentType() string {
	return r.Header.Get("Content-Type")
}

// Render writes headers, status and body to w. A zero status writes 200.
func (r *Response) Render(w http.ResponseWriter) error {
	h := w.Header()
	for k, vs := range r.Header {
		h[k] = append([]string(nil), vs...)
	}

	status := r.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)

	_, err := w.Write(r.Body)
	return err
}

// textResponse builds a response with a plain-text body.
func textResponse(status int, contentType, body string) *Response {
	h := make(http.Header, 1)
	h.Set("Content-Type", contentType)
	return &Response{Status: status, Header: h, Body: []byte(body)}
}
