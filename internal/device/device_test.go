package device

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEndpoint struct {
	writes [][]byte
	closed bool
}

func (f *fakeEndpoint) Write(p []byte) error {
	cp := make([]byte, len(p))
	copy(cp, p)
	f.writes = append(f.writes, cp)
	return nil
}

func (f *fakeEndpoint) Close() error {
	f.closed = true
	return nil
}

func TestUSBDirect_FlushSendsEncodedRingPackets(t *testing.T) {
	ep := &fakeEndpoint{}
	d := newUSBDirectWithEndpoint(ep)
	defer d.Close()

	require.NoError(t, d.RingCycled(0x00, 0x42, 10))
	require.NoError(t, d.Flush())

	assert.Eventually(t, func() bool { return len(ep.writes) == 1 }, time.Second, time.Millisecond)
}

func TestCreate_UnknownEngineErrors(t *testing.T) {
	_, err := Create("not-a-real-engine", Config{})
	assert.Error(t, err)
}

func TestCreate_NativeRequiresAddress(t *testing.T) {
	_, err := Create(NameNative, Config{})
	assert.Error(t, err)
}

func TestExternalFilter_SettlesTowardDCInput(t *testing.T) {
	f := newExternalFilter(44100)
	var out float64
	for i := 0; i < 10000; i++ {
		out = f.process(1.0)
	}
	assert.InDelta(t, 0, out, 0.5) // high-pass component bleeds the DC level away
}

func TestVoiceFilter_LowPassRespondsToStepInput(t *testing.T) {
	var lp voiceFilter
	lowOut := lp.process(1.0, 200, 0.1, 44100, true, false, false)
	assert.NotZero(t, lowOut)
}
