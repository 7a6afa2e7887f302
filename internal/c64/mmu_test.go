package c64

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestMmu_DefaultMapIsNormalKernalBasicIO(t *testing.T) {
	m := NewMmu()
	assert.Equal(t, PageKernalROM, m.ReadSource(0xE000))
	assert.Equal(t, PageBasicROM, m.ReadSource(0xA000))
	assert.Equal(t, PageIO, m.ReadSource(0xD000))
	assert.Equal(t, PageRAM, m.WriteSource(0xE000))
	assert.Equal(t, PageRAM, m.WriteSource(0xD000-0x1000)) // $C000, plain RAM
}

func TestMmu_CharenLowExposesCharROM(t *testing.T) {
	m := NewMmu()
	m.SetCPUPort(0x03) // loram|hiram set, charen clear
	assert.Equal(t, PageCharROM, m.ReadSource(0xD000))
	assert.Equal(t, PageRAM, m.WriteSource(0xD000))
}

func TestMmu_AllRAMWhenPortFloorsBothLow(t *testing.T) {
	m := NewMmu()
	m.SetCPUPort(0x00)
	assert.Equal(t, PageRAM, m.ReadSource(0xE000))
	assert.Equal(t, PageRAM, m.ReadSource(0xA000))
	assert.Equal(t, PageRAM, m.ReadSource(0xD000))
}

func TestMmu_UltimaxForcesIOAndKernal(t *testing.T) {
	m := NewMmu()
	m.SetExromGame(false, true)
	m.SetCPUPort(0x00) // even with port all-low, ultimax wins
	assert.Equal(t, PageIO, m.ReadSource(0xD000))
	assert.Equal(t, PageKernalROM, m.ReadSource(0xE000))
	assert.Equal(t, PageKernalROM, m.ReadSource(0xF000))
	assert.Equal(t, PageRAM, m.WriteSource(0xE000))
}

// MMU read-map determinism law (spec 8): the resulting read/write map
// is a pure function of (loram, hiram, charen, exrom, game) -- calling
// the same transitions in the same order always yields the same map.
func TestMmu_DeterminismLaw(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		port := uint8(rapid.IntRange(0, 7).Draw(t, "port"))
		exrom := rapid.Bool().Draw(t, "exrom")
		game := rapid.Bool().Draw(t, "game")

		m1 := NewMmu()
		m1.SetExromGame(exrom, game)
		m1.SetCPUPort(port)

		m2 := NewMmu()
		m2.SetExromGame(exrom, game)
		m2.SetCPUPort(port)

		for page := 0; page < 16; page++ {
			addr := uint16(page) << 12
			assert.Equal(t, m1.ReadSource(addr), m2.ReadSource(addr))
			assert.Equal(t, m1.WriteSource(addr), m2.WriteSource(addr))
		}
	})
}
