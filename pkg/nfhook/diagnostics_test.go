package nfhook

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDropRing_DumpIsCBORDecodableAndChronological(t *testing.T) {
	r := newDropRing(2)
	r.record(FamilyIPv4, HookPreRouting, 1)
	r.record(FamilyIPv4, HookForward, 2)
	r.record(FamilyIPv6, HookLocalIn, 3) // wraps, evicting the first record

	enc, err := r.Dump()
	require.NoError(t, err)

	var decoded []dropRecord
	require.NoError(t, cbor.Unmarshal(enc, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, 2, decoded[0].Errno)
	assert.Equal(t, 3, decoded[1].Errno)
}

func TestDropRing_NilRingDumpsEmpty(t *testing.T) {
	var r *dropRing
	enc, err := r.Dump()
	assert.NoError(t, err)
	assert.Nil(t, enc)
}

func TestDropRing_NilRingRecordIsNoop(t *testing.T) {
	var r *dropRing
	assert.NotPanics(t, func() {
		r.record(FamilyIPv4, HookPreRouting, 1)
	})
}
