package parcel

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for body codec events.
var (
	SignalProcessorCreated = capitan.NewSignal("parcel.processor.created", "Processor instantiated")
	SignalReceiveStart     = capitan.NewSignal("parcel.receive.start", "Request body extraction beginning")
	SignalReceiveComplete  = capitan.NewSignal("parcel.receive.complete", "Request body extraction finished")
	SignalSendStart        = capitan.NewSignal("parcel.send.start", "Response encoding beginning")
	SignalSendComplete     = capitan.NewSignal("parcel.send.complete", "Response encoding finished")
	SignalRejected         = capitan.NewSignal("parcel.rejected", "Request body rejected")
)

// Keys for typed event data.
var (
	KeyContentType = capitan.NewStringKey("content_type")
	KeyTypeName    = capitan.NewStringKey("type_name")
	KeyMode        = capitan.NewStringKey("mode")
	KeyFingerprint = capitan.NewStringKey("fingerprint")
	KeyKind        = capitan.NewStringKey("kind")
	KeySize        = capitan.NewIntKey("size")
	KeyStatus      = capitan.NewIntKey("status")
	KeyDuration    = capitan.NewDurationKey("duration")
	KeyError       = capitan.NewErrorKey("error")
)

// emitProcessorCreated emits an event when a processor is created.
func emitProcessorCreated(ctx context.Context, contentType, typeName string, mode Mode, fingerprint string) {
	capitan.Emit(ctx, SignalProcessorCreated,
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
		KeyMode.Field(mode.String()),
		KeyFingerprint.Field(fingerprint),
	)
}

// emitReceiveStart emits an event when extraction begins.
func emitReceiveStart(ctx context.Context, typeName string, mode Mode) {
	capitan.Emit(ctx, SignalReceiveStart,
		KeyTypeName.Field(typeName),
		KeyMode.Field(mode.String()),
	)
}

// emitReceiveComplete emits an event when extraction finishes.
func emitReceiveComplete(ctx context.Context, typeName string, mode Mode, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyTypeName.Field(typeName),
		KeyMode.Field(mode.String()),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalReceiveComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalReceiveComplete, fields...)
	}
}

// emitRejected emits an event for every rejection produced by a processor.
func emitRejected(ctx context.Context, typeName string, rejection *Rejection) {
	capitan.Error(ctx, SignalRejected,
		KeyTypeName.Field(typeName),
		KeyKind.Field(rejection.Kind.String()),
		KeyStatus.Field(rejection.Status()),
		KeyError.Field(rejection),
	)
}

// emitSendStart emits an event when encoding begins.
func emitSendStart(ctx context.Context, typeName string, mode Mode) {
	capitan.Emit(ctx, SignalSendStart,
		KeyTypeName.Field(typeName),
		KeyMode.Field(mode.String()),
	)
}

// emitSendComplete emits an event when encoding finishes.
func emitSendComplete(ctx context.Context, typeName string, mode Mode, status, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyTypeName.Field(typeName),
		KeyMode.Field(mode.String()),
		KeyStatus.Field(status),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalSendComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalSendComplete, fields...)
	}
}
