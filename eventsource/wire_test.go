package eventsource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowweb/flowweb"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := flowweb.FutexEvent{
		Tid:         42,
		Uaddr:       0xdeadbeef,
		FutexOp:     9,
		Val:         1,
		Uaddr2:      0xfeedface,
		Val3:        7,
		TimestampNs: 1234567890123,
		Ret:         -1,
	}

	buf := make([]byte, RecordSize)
	Encode(in, buf)
	out := Decode(buf)

	assert.Equal(t, in, out)
}

func TestEncodeDecodeZeroValue(t *testing.T) {
	buf := make([]byte, RecordSize)
	Encode(flowweb.FutexEvent{}, buf)
	out := Decode(buf)
	assert.Equal(t, flowweb.FutexEvent{}, out)
}

func TestEncodePanicsOnShortBuffer(t *testing.T) {
	require.Panics(t, func() {
		Encode(flowweb.FutexEvent{}, make([]byte, RecordSize-1))
	})
}
