package parcel

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	ptesting "github.com/zoobzio/parcel/testing"
)

func TestGetMetrics_Singleton(t *testing.T) {
	assert.Same(t, GetMetrics(), GetMetrics())
}

func TestMetrics_Record(t *testing.T) {
	m := GetMetrics()

	msgpack := testutil.ToFloat64(m.classificationsTotal.WithLabelValues("msgpack"))
	other := testutil.ToFloat64(m.classificationsTotal.WithLabelValues("other"))
	m.RecordClassification(true)
	m.RecordClassification(false)
	m.RecordClassification(false)
	assert.Equal(t, msgpack+1, testutil.ToFloat64(m.classificationsTotal.WithLabelValues("msgpack")))
	assert.Equal(t, other+2, testutil.ToFloat64(m.classificationsTotal.WithLabelValues("other")))

	decodeErr := testutil.ToFloat64(m.decodeTotal.WithLabelValues("raw", "error"))
	m.RecordDecode(Raw, errors.New("bad"))
	assert.Equal(t, decodeErr+1, testutil.ToFloat64(m.decodeTotal.WithLabelValues("raw", "error")))

	encodeOK := testutil.ToFloat64(m.encodeTotal.WithLabelValues("named", "success"))
	m.RecordEncode(Named, nil)
	assert.Equal(t, encodeOK+1, testutil.ToFloat64(m.encodeTotal.WithLabelValues("named", "success")))

	rejected := testutil.ToFloat64(m.rejectionsTotal.WithLabelValues("missing_content_type"))
	m.RecordRejection(MissingContentType)
	assert.Equal(t, rejected+1, testutil.ToFloat64(m.rejectionsTotal.WithLabelValues("missing_content_type")))
}

func TestMetrics_ReceiveRecordsRejection(t *testing.T) {
	m := GetMetrics()
	before := testutil.ToFloat64(m.rejectionsTotal.WithLabelValues("invalid_body"))

	_, err := receive(t, NewProcessor[ptesting.Input](Named), testMsgPack, []byte{0xc1})
	assert.ErrorIs(t, err, ErrInvalidBody)
	assert.Equal(t, before+1, testutil.ToFloat64(m.rejectionsTotal.WithLabelValues("invalid_body")))
}

func TestMetrics_ReadFailureCountsAsDecodeError(t *testing.T) {
	m := GetMetrics()
	before := testutil.ToFloat64(m.decodeTotal.WithLabelValues("named", "error"))

	p := NewProcessor[ptesting.Input](Named, WithMaxBodyBytes(1))
	_, err := receive(t, p, testMsgPack, ptesting.MarshalNamed(t, ptesting.Input{Foo: "bar"}))
	assert.ErrorIs(t, err, ErrBodyTooLarge)
	assert.Equal(t, before+1, testutil.ToFloat64(m.decodeTotal.WithLabelValues("named", "error")))
}
