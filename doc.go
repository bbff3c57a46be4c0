// Package parcel converts HTTP request and response bodies to and from
// typed Go values using MessagePack.
//
// # Body Types
//
// Two wrappers select the wire layout of struct fields:
//
//   - MsgPack[T]: fields are a map keyed by field name
//   - MsgPackRaw[T]: fields are a positional array with no names
//
// Both write Content-Type: application/msgpack, so a receiver cannot tell
// the layouts apart from headers. The mode is shared knowledge between
// producer and consumer.
//
// # Basic Usage
//
//	type User struct {
//	    Name string `msgpack:"name"`
//	    Data []byte `msgpack:"data"`
//	}
//
//	func create(w http.ResponseWriter, r *http.Request) {
//	    in, err := parcel.ExtractRequest[User](r)
//	    if err != nil {
//	        parcel.WriteError(w, err)
//	        return
//	    }
//	    _ = parcel.Of(in.Value).WriteResponse(w, http.StatusCreated)
//	}
//
// # Content Type
//
// A request body is MessagePack when its Content-Type is application/msgpack,
// application/x-msgpack, or any application/*+msgpack type such as
// application/cloudevents+msgpack. Matching ignores case and parameters.
//
// # Rejections
//
// Every extraction failure is a *Rejection of one of four kinds:
//
//   - MissingContentType (400)
//   - InvalidBody (400, carries the decode error)
//   - BodyAlreadyExtracted (500)
//   - HeadersAlreadyExtracted (500)
//
// A request body can be taken once. A second extractor on the same request
// gets BodyAlreadyExtracted instead of an empty body.
//
// # Raw Field Order
//
// Raw bodies carry no field names. If producer and consumer declare fields
// in different orders and the types are compatible, decoding succeeds with
// values transposed. LayoutOf and Layout.Fingerprint describe the positional
// layout of a type so both sides can compare it.
//
// # Codec Providers
//
//   - msgpack.New() - named layout
//   - msgpack.NewRaw() - positional layout
//
// Any Codec can be supplied with WithCodec.
package parcel
