package parcel

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ptesting "github.com/zoobzio/parcel/testing"
)

func TestMsgPack_Wrappers(t *testing.T) {
	m := Of(ptesting.Input{Foo: "bar"})
	assert.Equal(t, ptesting.Input{Foo: "bar"}, m.Inner())
	assert.Equal(t, m.Value, m.Inner())

	r := RawOf(ptesting.Input{Foo: "baz"})
	assert.Equal(t, ptesting.Input{Foo: "baz"}, r.Inner())

	var _ Responder = m
	var _ Responder = r
}

func TestExtract(t *testing.T) {
	body := ptesting.MarshalNamed(t, ptesting.Input{Foo: "bar"})
	parts := NewRequestParts(ptesting.NewRequest(testMsgPack, body))

	got, err := Extract[ptesting.Input](context.Background(), parts)
	require.NoError(t, err)
	assert.Equal(t, "bar", got.Inner().Foo)
}

func TestExtract_WithOptions(t *testing.T) {
	body := ptesting.MarshalNamed(t, ptesting.Input{Foo: "bar"})
	parts := NewRequestParts(ptesting.NewRequest(testMsgPack, body))

	got, err := Extract[ptesting.Input](context.Background(), parts, WithMaxBodyBytes(1))
	assert.ErrorIs(t, err, ErrBodyTooLarge)
	assert.Equal(t, MsgPack[ptesting.Input]{}, got)
}

func TestExtractRequest_Rejections(t *testing.T) {
	_, err := ExtractRequest[ptesting.Input](ptesting.NewRequest("application/json", []byte(`{"foo":"bar"}`)))
	assert.ErrorIs(t, err, ErrMissingContentType)

	_, err = ExtractRequestRaw[ptesting.Input](ptesting.NewRequest("", nil))
	assert.ErrorIs(t, err, ErrMissingContentType)
}

func TestExtractRaw(t *testing.T) {
	want := ptesting.User{Name: "alice", Data: []byte{9}}
	r := ptesting.NewRequest("application/x-msgpack", ptesting.MarshalRaw(t, want))

	got, err := ExtractRequestRaw[ptesting.User](r)
	require.NoError(t, err)
	assert.Equal(t, want, got.Inner())
}

func TestExtract_SecondExtractorFails(t *testing.T) {
	r := ptesting.NewRequest(testMsgPack, ptesting.MarshalNamed(t, ptesting.Input{Foo: "bar"}))
	parts := NewRequestParts(r)

	_, err := Extract[ptesting.Input](context.Background(), parts)
	require.NoError(t, err)

	_, err = ExtractRaw[ptesting.Input](context.Background(), parts)
	assert.ErrorIs(t, err, ErrBodyAlreadyExtracted)
}

func TestMsgPack_Response(t *testing.T) {
	resp := Of(ptesting.User{Name: "alice"}).Response(http.StatusAccepted)
	assert.Equal(t, http.StatusAccepted, resp.Status)
	assert.Equal(t, "application/msgpack", resp.ContentType())

	var named ptesting.User
	require.NoError(t, Use[ptesting.User](Named).codec.Unmarshal(resp.Body, &named))
	assert.Equal(t, "alice", named.Name)

	raw := RawOf(ptesting.User{Name: "alice"}).Response(0)
	assert.Equal(t, http.StatusOK, raw.Status)
	assert.Less(t, len(raw.Body), len(resp.Body))
}

func TestMsgPack_EncodeFailure(t *testing.T) {
	resp := Of(unencodable{}).Response(http.StatusOK)
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
	assert.Equal(t, "text/plain", resp.ContentType())

	resp = RawOf(unencodable{}).Response(http.StatusOK)
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
}

func TestHandler(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		in, err := ExtractRequest[ptesting.User](r)
		if err != nil {
			WriteError(w, err)
			return
		}
		out := ptesting.User{Name: fmt.Sprintf("hello %s", in.Inner().Name), Data: in.Inner().Data}
		_ = Of(out).WriteResponse(w, http.StatusOK)
	})

	t.Run("ok", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, ptesting.NewRequest(testMsgPack, ptesting.MarshalNamed(t, ptesting.User{Name: "bob"})))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/msgpack", rec.Header().Get("Content-Type"))

		var got ptesting.User
		require.NoError(t, Use[ptesting.User](Named).codec.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "hello bob", got.Name)
	})

	t.Run("wrong content type", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, ptesting.NewRequest("text/plain", []byte("bob")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, "Expected request with `Content-Type: application/msgpack`", rec.Body.String())
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, ptesting.NewRequest(testMsgPack, []byte{0x92, 0xa3}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Failed to parse the request body as MsgPack: ")
	})
}
