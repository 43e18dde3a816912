package nfhook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerdict_DropErrnoRoundTrip(t *testing.T) {
	v := VerdictDrop(13)
	assert.Equal(t, KindDrop, v.Kind())
	assert.Equal(t, 13, v.DropErrno())
}

func TestVerdict_DropZeroErrnoMeansUseDefault(t *testing.T) {
	v := VerdictDrop(0)
	assert.Equal(t, 0, v.DropErrno())
}

func TestVerdict_QueueRoundTrip(t *testing.T) {
	v := VerdictQueue(42, true)
	assert.Equal(t, KindQueue, v.Kind())
	assert.Equal(t, uint32(42), v.QueueID())
	assert.True(t, v.Bypass())

	v2 := VerdictQueue(7, false)
	assert.False(t, v2.Bypass())
}

func TestVerdict_AcceptStolenRepeatStopKinds(t *testing.T) {
	assert.Equal(t, KindAccept, Accept.Kind())
	assert.Equal(t, KindStolen, Stolen.Kind())
	assert.Equal(t, KindRepeat, Repeat.Kind())
	assert.Equal(t, KindStop, Stop.Kind())
}

func TestVerdict_String(t *testing.T) {
	assert.Contains(t, VerdictDrop(5).String(), "DROP")
	assert.Contains(t, VerdictQueue(1, true).String(), "QUEUE")
	assert.Equal(t, "ACCEPT", Accept.String())
}
