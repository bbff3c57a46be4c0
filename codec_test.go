package parcel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zoobzio/parcel/msgpack"
)

func TestMode_String(t *testing.T) {
	assert.Equal(t, "named", Named.String())
	assert.Equal(t, "raw", Raw.String())
	assert.Equal(t, "unknown", Mode(42).String())
}

func TestCodecFor(t *testing.T) {
	var _ Codec = msgpack.New()

	named, ok := codecFor(Named).(*msgpack.Codec)
	assert.True(t, ok)
	assert.False(t, named.Raw())

	raw, ok := codecFor(Raw).(*msgpack.Codec)
	assert.True(t, ok)
	assert.True(t, raw.Raw())

	assert.Equal(t, ContentTypeMsgPack, raw.ContentType())
}
