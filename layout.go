package parcel

import (
	"encoding"
	"encoding/hex"
	"reflect"
	"strings"

	vmsgpack "github.com/vmihailenco/msgpack/v5"
	"github.com/zoobzio/sentinel"
	"golang.org/x/crypto/blake2b"
)

func init() {
	sentinel.Tag("msgpack")
}

// LayoutField is one struct field as it appears on the wire.
type LayoutField struct {
	Name string // Go field path; inlined fields are prefixed with their embed
	Key  string // map key in named mode
	Type string // Go type
}

// Layout is the positional wire layout of a type: in raw mode, field i of
// the layout is element i of the array. Embedded structs are flattened into
// their parent the same way the codec flattens them.
//
// Raw decoding does not check layouts. Two structs whose fields have
// compatible types but a different order decode into each other without
// error and with values transposed. Compare fingerprints out of band to
// detect that drift.
type Layout struct {
	TypeName string
	Fields   []LayoutField
}

// LayoutOf returns the cached wire layout of T. Non-struct types have no fields.
func LayoutOf[T any]() Layout {
	typ := reflect.TypeFor[T]()
	if cached, ok := lookupLayout(typ); ok {
		return cached
	}
	return storeLayout(typ, buildLayout[T]())
}

// Keys returns the wire keys in positional order.
func (l Layout) Keys() []string {
	keys := make([]string, len(l.Fields))
	for i, f := range l.Fields {
		keys[i] = f.Key
	}
	return keys
}

// Fingerprint returns a BLAKE2b-256 hex digest over the ordered keys and
// types. Reordering fields changes the fingerprint.
func (l Layout) Fingerprint() string {
	var b strings.Builder
	for _, f := range l.Fields {
		b.WriteString(f.Key)
		b.WriteByte(0)
		b.WriteString(f.Type)
		b.WriteByte('\n')
	}
	sum := blake2b.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// buildLayout scans T's fields in wire order.
func buildLayout[T any]() Layout {
	typ := reflect.TypeFor[T]()
	if typ.Kind() != reflect.Struct {
		return Layout{TypeName: typ.String()}
	}

	spec := sentinel.Scan[T]()
	return Layout{
		TypeName: spec.TypeName,
		Fields:   wireFields(typ, ""),
	}
}

// wireFields lists the fields of a struct type as the codec lays them out.
// Embedded structs are flattened into the parent unless tagged noinline,
// or, without an explicit inline tag, unless one of their keys is already
// taken. Inlined keys that an earlier field already uses are dropped.
func wireFields(typ reflect.Type, prefix string) []LayoutField {
	var fields []LayoutField
	seen := make(map[string]bool)

	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)

		name, opts, _ := strings.Cut(sf.Tag.Get("msgpack"), ",")
		if name == "-" {
			continue
		}
		if !sf.IsExported() && !sf.Anonymous {
			continue
		}
		if name == "" {
			name = sf.Name
		}

		if sf.Anonymous && !hasTagOption(opts, "noinline") {
			if inner, ok := embeddedStruct(sf.Type); ok {
				nested := wireFields(inner, prefix+sf.Name+".")
				if hasTagOption(opts, "inline") || !shadowed(nested, seen) {
					for _, f := range nested {
						if seen[f.Key] {
							continue
						}
						seen[f.Key] = true
						fields = append(fields, f)
					}
					seen[name] = true
					continue
				}
			}
		}

		seen[name] = true
		fields = append(fields, LayoutField{
			Name: prefix + sf.Name,
			Key:  name,
			Type: sf.Type.String(),
		})
	}

	return fields
}

var customCodecTypes = []reflect.Type{
	reflect.TypeFor[vmsgpack.CustomEncoder](),
	reflect.TypeFor[vmsgpack.CustomDecoder](),
	reflect.TypeFor[vmsgpack.Marshaler](),
	reflect.TypeFor[vmsgpack.Unmarshaler](),
	reflect.TypeFor[encoding.BinaryMarshaler](),
	reflect.TypeFor[encoding.BinaryUnmarshaler](),
	reflect.TypeFor[encoding.TextMarshaler](),
	reflect.TypeFor[encoding.TextUnmarshaler](),
}

// embeddedStruct returns the struct behind an embedded field if the codec
// encodes it field by field.
func embeddedStruct(typ reflect.Type) (reflect.Type, bool) {
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil, false
	}
	for _, iface := range customCodecTypes {
		if typ.Implements(iface) || reflect.PointerTo(typ).Implements(iface) {
			return nil, false
		}
	}
	return typ, true
}

func shadowed(fields []LayoutField, seen map[string]bool) bool {
	for _, f := range fields {
		if seen[f.Key] {
			return true
		}
	}
	return false
}

func hasTagOption(opts, option string) bool {
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		if opt == option {
			return true
		}
	}
	return false
}
