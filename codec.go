package parcel

// Codec provides content-type aware marshaling.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/msgpack").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}

// Mode selects how struct fields appear on the wire.
type Mode int

const (
	// Named encodes structs as maps keyed by field name.
	Named Mode = iota

	// Raw encodes structs as arrays in field declaration order, without names.
	// Producer and consumer must agree on the field order out of band.
	Raw
)

// String returns the lower-case mode name.
func (m Mode) String() string {
	switch m {
	case Named:
		return "named"
	case Raw:
		return "raw"
	default:
		return "unknown"
	}
}
