package parcel

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"time"

	"github.com/zoobzio/parcel/msgpack"
)

// Processor decodes request bodies into T and encodes T into responses
// using one fixed Mode.
//
// Processors hold no per-request state and are safe for concurrent use.
type Processor[T any] struct {
	codec    Codec
	mode     Mode
	cfg      Config
	typeName string
	layout   Layout
}

// NewProcessor creates a Processor for type T in the given mode. Unless
// WithCodec is given, Named uses msgpack.New and Raw uses msgpack.NewRaw.
//
// Build processors once and reuse them; each construction emits
// SignalProcessorCreated.
func NewProcessor[T any](mode Mode, opts ...Option) *Processor[T] {
	p := newProcessor[T](mode, opts)
	p.announce()
	return p
}

func newProcessor[T any](mode Mode, opts []Option) *Processor[T] {
	o := options{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.codec == nil {
		o.codec = codecFor(mode)
	}

	return &Processor[T]{
		codec:    o.codec,
		mode:     mode,
		cfg:      o.cfg,
		typeName: reflect.TypeFor[T]().String(),
		layout:   LayoutOf[T](),
	}
}

func (p *Processor[T]) announce() {
	emitProcessorCreated(context.Background(), p.codec.ContentType(), p.typeName, p.mode, p.layout.Fingerprint())
}

func codecFor(mode Mode) Codec {
	switch mode {
	case Named:
		return msgpack.New()
	case Raw:
		return msgpack.NewRaw()
	}
	panic(fmt.Sprintf("parcel: unknown mode %d", int(mode)))
}

// Mode returns the processor's wire mode.
func (p *Processor[T]) Mode() Mode {
	return p.mode
}

// Config returns the processor configuration.
func (p *Processor[T]) Config() Config {
	return p.cfg
}

// Layout returns the wire layout of T.
func (p *Processor[T]) Layout() Layout {
	return p.layout
}

// Receive extracts and decodes the request body held by parts.
//
// The request must declare a MessagePack content type; otherwise the body
// is left untouched and a MissingContentType rejection is returned. Every
// failure is a *Rejection.
func (p *Processor[T]) Receive(ctx context.Context, parts *RequestParts) (T, error) {
	start := time.Now()
	emitReceiveStart(ctx, p.typeName, p.mode)

	value, size, err := p.receive(parts)

	emitReceiveComplete(ctx, p.typeName, p.mode, size, time.Since(start), err)
	if err != nil {
		var rejection *Rejection
		if errors.As(err, &rejection) {
			GetMetrics().RecordRejection(rejection.Kind)
			emitRejected(ctx, p.typeName, rejection)
		}
		var zero T
		return zero, err
	}
	return value, nil
}

func (p *Processor[T]) receive(parts *RequestParts) (T, int, error) {
	var value T

	ok, err := IsMsgPack(parts)
	if err != nil {
		return value, 0, err
	}
	if !ok {
		return value, 0, newRejection(MissingContentType, nil)
	}

	body, err := parts.TakeBody()
	if err != nil {
		return value, 0, err
	}

	data, err := readBody(body, p.cfg.MaxBodyBytes)
	if err != nil {
		GetMetrics().RecordDecode(p.mode, err)
		return value, 0, newRejection(InvalidBody, err)
	}

	err = p.codec.Unmarshal(data, &value)
	GetMetrics().RecordDecode(p.mode, err)
	if err != nil {
		return value, len(data), newRejection(InvalidBody, err)
	}
	return value, len(data), nil
}

// Send encodes v into a response with the given status (zero means 200)
// and the MessagePack content type.
//
// If v cannot be encoded the response is a 500 with a text/plain body
// holding the codec's error text. That is the service's own bug, so it is
// never reported as a Rejection.
func (p *Processor[T]) Send(ctx context.Context, status int, v T) *Response {
	if status == 0 {
		status = http.StatusOK
	}

	start := time.Now()
	emitSendStart(ctx, p.typeName, p.mode)

	data, err := p.codec.Marshal(v)
	GetMetrics().RecordEncode(p.mode, err)
	if err != nil {
		emitSendComplete(ctx, p.typeName, p.mode, http.StatusInternalServerError, 0,
			time.Since(start), newEncodeError(err))
		return textResponse(http.StatusInternalServerError, contentTypeEncodeFailure, err.Error())
	}

	h := make(http.Header, 1)
	h.Set("Content-Type", p.codec.ContentType())

	emitSendComplete(ctx, p.typeName, p.mode, status, len(data), time.Since(start), nil)
	return &Response{Status: status, Header: h, Body: data}
}

// processorFor returns the cached processor, or a one-off processor when
// options are given. One-off processors are not announced; callers that
// reuse options should hold a processor built with NewProcessor instead.
func processorFor[T any](mode Mode, opts []Option) *Processor[T] {
	if len(opts) == 0 {
		return Use[T](mode)
	}
	return newProcessor[T](mode, opts)
}
