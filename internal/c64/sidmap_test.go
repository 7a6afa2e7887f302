package c64

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestSIDMap_BasicWindows(t *testing.T) {
	m := NewSIDMap(0xD400, 0xD420)

	off, ok := m.Map(0xD400)
	assert.True(t, ok)
	assert.Equal(t, uint8(0x00), off)

	off, ok = m.Map(0xD41B)
	assert.True(t, ok)
	assert.Equal(t, uint8(0x1B), off)

	off, ok = m.Map(0xD420)
	assert.True(t, ok)
	assert.Equal(t, uint8(0x20), off)

	_, ok = m.Map(0xD440)
	assert.False(t, ok)
}

func TestSIDMap_ZeroBaseIgnored(t *testing.T) {
	m := NewSIDMap(0xD400, 0, 0)
	assert.Equal(t, 1, m.Len())
}

// SID-mapper round trip law (spec 8): for any base list and any addr
// that lies in exactly one base window, map(addr) = slot*0x20 + (addr-base).
func TestSIDMap_RoundTripLaw(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 3).Draw(t, "n")
		bases := make([]uint16, n)
		used := map[uint16]bool{}
		for i := 0; i < n; i++ {
			for {
				b := uint16(rapid.IntRange(1, 2000).Draw(t, "base")) * 0x20
				if !used[b] {
					used[b] = true
					bases[i] = b
					break
				}
			}
		}
		m := NewSIDMap(bases...)

		slot := rapid.IntRange(0, n-1).Draw(t, "slot")
		within := uint16(rapid.IntRange(0, 0x1F).Draw(t, "within"))
		addr := bases[slot] + within

		off, ok := m.Map(addr)
		assert.True(t, ok)
		assert.Equal(t, uint8(slot*0x20)+uint8(within), off)
	})
}
