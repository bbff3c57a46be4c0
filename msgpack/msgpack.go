// Package msgpack provides the MessagePack codecs used by parcel.
//
// Two codecs are available. New encodes structs as maps keyed by field name.
// NewRaw encodes structs as arrays in field declaration order with no names;
// a raw consumer must declare the same field order as the producer.
package msgpack

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// ContentType is the canonical MIME type for MessagePack bodies.
const ContentType = "application/msgpack"

// Codec implements parcel.Codec for MessagePack.
type Codec struct {
	raw bool
}

// New returns a MessagePack codec that writes structs as name-keyed maps.
func New() *Codec {
	return &Codec{}
}

// NewRaw returns a MessagePack codec that writes structs as positional arrays.
func NewRaw() *Codec {
	return &Codec{raw: true}
}

// ContentType returns the MIME type for MessagePack.
// Both codecs report the same value.
func (c *Codec) ContentType() string {
	return ContentType
}

// Raw reports whether the codec writes positional arrays.
func (c *Codec) Raw() bool {
	return c.raw
}

// Marshal encodes v as MessagePack.
func (c *Codec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.UseArrayEncodedStructs(c.raw)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes exactly one MessagePack value from data into v.
// Bytes left over after the value are an error.
func (c *Codec) Unmarshal(data []byte, v any) error {
	rd := bytes.NewReader(data)
	dec := msgpack.NewDecoder(rd)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if n := rd.Len(); n > 0 {
		return fmt.Errorf("msgpack: %d trailing bytes after value", n)
	}
	return nil
}
