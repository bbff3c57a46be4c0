package parcel

import (
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/zoobzio/parcel/msgpack"
)

// FormatName is the registered short name of the body format.
const FormatName = "msgpack"

// ContentTypeMsgPack is the content type written on every successful response.
const ContentTypeMsgPack = msgpack.ContentType

// msgpackSubtypes are the accepted subtypes under application/.
var msgpackSubtypes = map[string]bool{
	FormatName:        true,
	"x-" + FormatName: true,
}

// ContentType is a parsed media type. All parts are lower-case.
type ContentType struct {
	Type    string // e.g. "application"
	Subtype string // e.g. "vnd.example+msgpack"
	Suffix  string // structured syntax suffix, e.g. "msgpack"; empty if none
}

// ParseContentType parses a Content-Type header value, dropping parameters.
func ParseContentType(value string) (ContentType, error) {
	// Parameters are ignored, so only the media type is validated.
	base, _, _ := strings.Cut(value, ";")
	mediaType, _, err := mime.ParseMediaType(base)
	if err != nil {
		return ContentType{}, fmt.Errorf("%w: %w", ErrInvalidContentType, err)
	}

	typ, sub, ok := strings.Cut(mediaType, "/")
	if !ok || typ == "" || sub == "" {
		return ContentType{}, fmt.Errorf("%w: %q", ErrInvalidContentType, value)
	}

	ct := ContentType{Type: typ, Subtype: sub}
	if i := strings.LastIndexByte(sub, '+'); i >= 0 {
		ct.Suffix = sub[i+1:]
	}
	return ct, nil
}

// IsMsgPack reports whether the media type marks a MessagePack body: type
// application with subtype msgpack or x-msgpack, or any subtype carrying
// the +msgpack suffix.
func (ct ContentType) IsMsgPack() bool {
	if ct.Type != "application" {
		return false
	}
	return msgpackSubtypes[ct.Subtype] || ct.Suffix == FormatName
}

// String renders the media type without parameters.
func (ct ContentType) String() string {
	if ct.Type == "" {
		return ""
	}
	return ct.Type + "/" + ct.Subtype
}

// HasMsgPackContentType reports whether h declares a MessagePack body.
// A missing or unparseable Content-Type is not MessagePack.
func HasMsgPackContentType(h http.Header) bool {
	value := h.Get("Content-Type")
	if value == "" {
		return false
	}

	ct, err := ParseContentType(value)
	if err != nil {
		return false
	}
	return ct.IsMsgPack()
}

// IsMsgPack classifies the request held by parts. It fails with a
// HeadersAlreadyExtracted rejection if another extractor took the headers.
func IsMsgPack(parts *RequestParts) (bool, error) {
	h, err := parts.Headers()
	if err != nil {
		return false, err
	}

	ok := HasMsgPackContentType(h)
	GetMetrics().RecordClassification(ok)
	return ok, nil
}
