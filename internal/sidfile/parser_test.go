package sidfile

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func buildHeader(version uint16, flags uint16, loadAddr, initAddr, playAddr uint16, dataOffset uint16) []byte {
	buf := make([]byte, 0x7C)
	copy(buf[0:4], "PSID")
	binary.BigEndian.PutUint16(buf[4:6], version)
	binary.BigEndian.PutUint16(buf[6:8], dataOffset)
	binary.BigEndian.PutUint16(buf[8:10], loadAddr)
	binary.BigEndian.PutUint16(buf[10:12], initAddr)
	binary.BigEndian.PutUint16(buf[12:14], playAddr)
	binary.BigEndian.PutUint16(buf[14:16], 1)
	binary.BigEndian.PutUint16(buf[16:18], 1)
	copy(buf[0x16:0x36], "Test Tune")
	copy(buf[0x36:0x56], "Test Author")
	copy(buf[0x56:0x76], "2026 Test")
	if version >= 2 {
		binary.BigEndian.PutUint16(buf[0x76:0x78], flags)
	}
	return buf
}

func TestParse_PALMono(t *testing.T) {
	header := buildHeader(2, 0x01<<2, 0x1000, 0x1000, 0x1003, 0x7C)
	data := append(header, []byte{0xEA, 0xEA, 0xEA}...)

	f, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1000), f.Header.LoadAddress)
	assert.Equal(t, uint16(0x1003), f.Header.PlayAddress)
	assert.False(t, f.Header.IsNTSC())
	assert.False(t, f.Header.IsRSID)
	assert.Equal(t, []byte{0xEA, 0xEA, 0xEA}, f.Data)
}

func TestParse_NTSCFlag(t *testing.T) {
	header := buildHeader(2, 0x02<<2, 0x1000, 0x1000, 0x1003, 0x7C)
	data := append(header, 0xEA)

	f, err := Parse(data)
	require.NoError(t, err)
	assert.True(t, f.Header.IsNTSC())
}

func TestParse_PSIDWithoutPlayAddressIsRSIDSemantics(t *testing.T) {
	header := buildHeader(2, 0, 0x1000, 0x1000, 0, 0x7C)
	data := append(header, 0xEA)

	f, err := Parse(data)
	require.NoError(t, err)
	assert.True(t, f.Header.IsRSID)
}

func TestParse_EmbeddedLoadAddress(t *testing.T) {
	header := buildHeader(2, 0, 0, 0x1000, 0x1003, 0x7C)
	payload := []byte{0x00, 0x10, 0xEA, 0xEA} // little-endian load addr + 2 code bytes
	data := append(header, payload...)

	f, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1000), f.Header.LoadAddress)
	assert.Equal(t, []byte{0xEA, 0xEA}, f.Data)
}

func TestParse_V3SecondarySIDBase(t *testing.T) {
	header := buildHeader(3, 0, 0x1000, 0x1000, 0x1003, 0x7C)
	header[0x7A] = 0x42 // byte 0x7A: in-range, even
	data := append(header, 0xEA)

	f, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xD000|(0x42<<4)), f.Header.Sid2Addr)
}

func TestParse_InvalidMagic(t *testing.T) {
	data := buildHeader(2, 0, 0x1000, 0x1000, 0x1003, 0x7C)
	copy(data[0:4], "XXXX")
	_, err := Parse(data)
	require.Error(t, err)
}

func TestParse_TooShort(t *testing.T) {
	_, err := Parse([]byte{'P', 'S', 'I', 'D'})
	require.Error(t, err)
}

// MD5 idempotence law (spec 8): identical bytes hash identically, and a
// single-byte difference overwhelmingly changes the digest.
func TestMD5Idempotence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(minHeaderLen, minHeaderLen+64).Draw(t, "n")
		raw := rapid.SliceOfN(rapid.Byte(), n, n).Draw(t, "raw")
		copy(raw[0:4], "PSID")
		binary.BigEndian.PutUint16(raw[6:8], uint16(minHeaderLen))
		binary.BigEndian.PutUint16(raw[8:10], 0x1000)

		f1, err1 := Parse(append([]byte(nil), raw...))
		f2, err2 := Parse(append([]byte(nil), raw...))
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Equal(t, f1.MD5(), f2.MD5())

		mutated := append([]byte(nil), raw...)
		mutated[len(mutated)-1] ^= 0xFF
		fm, err := Parse(mutated)
		require.NoError(t, err)
		assert.NotEqual(t, f1.MD5(), fm.MD5())
	})
}
