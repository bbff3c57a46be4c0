// Package parcelgin binds parcel MessagePack bodies inside gin handlers.
//
// Request parts are stored on the gin context, so every binder in one
// request shares the same extraction state.
package parcelgin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zoobzio/parcel"
)

// PartsKey is the gin context key holding the request's *parcel.RequestParts.
const PartsKey = "parcel.parts"

// Parts returns the request parts for c, creating them on first use.
func Parts(c *gin.Context) *parcel.RequestParts {
	if v, ok := c.Get(PartsKey); ok {
		if parts, ok := v.(*parcel.RequestParts); ok {
			return parts
		}
	}
	parts := parcel.NewRequestParts(c.Request)
	c.Set(PartsKey, parts)
	return parts
}

// Bind decodes a named-mode body into T. On failure the rejection has
// already been written, the context is aborted, and ok is false.
func Bind[T any](c *gin.Context, opts ...parcel.Option) (T, bool) {
	body, err := parcel.Extract[T](c.Request.Context(), Parts(c), opts...)
	if err != nil {
		abort(c, err)
		var zero T
		return zero, false
	}
	return body.Inner(), true
}

// BindRaw decodes a raw-mode body into T. It behaves like Bind.
func BindRaw[T any](c *gin.Context, opts ...parcel.Option) (T, bool) {
	body, err := parcel.ExtractRaw[T](c.Request.Context(), Parts(c), opts...)
	if err != nil {
		abort(c, err)
		var zero T
		return zero, false
	}
	return body.Inner(), true
}

// BindWith decodes a body with p, in p's mode. Use it with a processor
// built once at startup when the default configuration does not fit.
func BindWith[T any](c *gin.Context, p *parcel.Processor[T]) (T, bool) {
	v, err := p.Receive(c.Request.Context(), Parts(c))
	if err != nil {
		abort(c, err)
		var zero T
		return zero, false
	}
	return v, true
}

// Render writes r with the given status.
func Render(c *gin.Context, status int, r parcel.Responder) {
	resp := r.Response(status)
	for k, vs := range resp.Header {
		if k == "Content-Type" {
			continue
		}
		for _, v := range vs {
			c.Writer.Header().Add(k, v)
		}
	}
	c.Data(resp.Status, resp.ContentType(), resp.Body)
}

// RequireMsgPack returns a middleware that rejects requests without a
// MessagePack content type before the handler runs.
func RequireMsgPack() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := parcel.IsMsgPack(Parts(c))
		if err == nil && !ok {
			err = &parcel.Rejection{Kind: parcel.MissingContentType}
		}
		if err != nil {
			abort(c, err)
			return
		}
		c.Next()
	}
}

func abort(c *gin.Context, err error) {
	_ = c.Error(err)

	var rejection *parcel.Rejection
	if errors.As(err, &rejection) {
		resp := rejection.Response()
		c.Data(resp.Status, resp.ContentType(), resp.Body)
		c.Abort()
		return
	}
	c.Data(http.StatusInternalServerError, "text/plain; charset=utf-8", []byte(err.Error()))
	c.Abort()
}
