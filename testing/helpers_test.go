package testing

import (
	"io"
	gotesting "testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalNamed(t *gotesting.T) {
	data := MarshalNamed(t, Input{Foo: "bar"})
	assert.NotEmpty(t, data)
}

func TestMarshalRaw(t *gotesting.T) {
	named := MarshalNamed(t, User{Name: "n", Data: []byte{1}})
	raw := MarshalRaw(t, User{Name: "n", Data: []byte{1}})
	assert.Less(t, len(raw), len(named))
}

func TestNewRequest(t *gotesting.T) {
	r := NewRequest("application/msgpack", []byte{0x80})
	assert.Equal(t, "application/msgpack", r.Header.Get("Content-Type"))

	body, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x80}, body)
}

func TestNewRequest_NoContentType(t *gotesting.T) {
	r := NewRequest("", nil)
	assert.Empty(t, r.Header.Get("Content-Type"))
}
