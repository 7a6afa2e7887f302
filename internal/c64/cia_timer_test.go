package c64

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestTimer_CountsDownAndUnderflows(t *testing.T) {
	tm := NewTimer()
	tm.SetLatchLo(0x02)
	tm.SetLatchHi(0x00)
	tm.Running = true

	assert.False(t, tm.Tick())
	assert.Equal(t, uint16(1), tm.Counter)
	assert.False(t, tm.Tick())
	assert.Equal(t, uint16(0), tm.Counter)
	assert.True(t, tm.Tick())
	assert.Equal(t, tm.Latch, tm.Counter)
}

func TestTimer_OneShotStopsAfterUnderflow(t *testing.T) {
	tm := NewTimer()
	tm.SetLatchLo(0x00)
	tm.SetLatchHi(0x00)
	tm.Running = true
	tm.OneShot = true

	assert.True(t, tm.Tick())
	assert.False(t, tm.Running)
	assert.False(t, tm.Tick())
}

func TestTimer_ContinuousReloadsAndKeepsRunning(t *testing.T) {
	tm := NewTimer()
	tm.SetLatchLo(0x01)
	tm.SetLatchHi(0x00)
	tm.Running = true

	assert.False(t, tm.Tick())
	assert.True(t, tm.Tick())
	assert.True(t, tm.Running)
}

// CIA underflow-counting law (spec 8): a continuous timer loaded with
// latch N underflows exactly once every N+1 ticks, forever.
func TestTimer_UnderflowCountingLaw(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		latch := uint16(rapid.IntRange(0, 500).Draw(t, "latch"))
		rounds := rapid.IntRange(1, 5).Draw(t, "rounds")

		tm := NewTimer()
		tm.SetLatchLo(uint8(latch))
		tm.SetLatchHi(uint8(latch >> 8))
		tm.Running = true

		for r := 0; r < rounds; r++ {
			underflows := 0
			for i := 0; i <= int(latch); i++ {
				if tm.Tick() {
					underflows++
				}
			}
			assert.Equal(t, 1, underflows)
		}
	})
}
