// Package sidfile parses PSID/RSID tune files (versions 1-4) and
// computes the MD5 digest used for Songlength-database lookups by an
// external collaborator.
//
// Grounded on IntuitionAmiga-IntuitionEngine's sid_parser.go (magic +
// big-endian header decode, padded-string fields, embedded-load-address
// handling), generalised to the full v1-v4 field set documented by the
// HVSC SID file format.
package sidfile

import (
	"crypto/md5"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
)

const minHeaderLen = 0x76

// Header holds the decoded fields of a PSID/RSID header.
type Header struct {
	Magic       string
	Version     uint16
	DataOffset  uint16
	LoadAddress uint16
	InitAddress uint16
	PlayAddress uint16
	Songs       uint16
	StartSong   uint16
	Speed       uint32
	Name        string
	Author      string
	Released    string
	Flags       uint16
	StartPage   uint8
	PageLength  uint8
	Sid2Addr    uint16
	Sid3Addr    uint16
	IsRSID      bool
}

// IsNTSC reports whether the header's video-clock bits select NTSC.
// Bits 2-3 of Flags: 2 = NTSC, anything else (including v1, no flags) = PAL.
func (h Header) IsNTSC() bool {
	return (h.Flags>>2)&0x03 == 0x02
}

// File is a parsed SID tune: its header plus the raw C64 payload bytes
// (the program image to be loaded at Header.LoadAddress) and the
// complete original file bytes (retained for MD5 computation).
type File struct {
	Header Header
	Data   []byte
	Raw    []byte
}

// Parse decodes a PSID/RSID file from its raw bytes.
func Parse(data []byte) (*File, error) {
	if len(data) < minHeaderLen {
		return nil, errors.New("sidfile: data too short for header")
	}

	magic := string(data[:4])
	var isRSID bool
	switch magic {
	case "PSID":
		isRSID = false
	case "RSID":
		isRSID = true
	default:
		return nil, fmt.Errorf("sidfile: invalid magic %q", magic)
	}

	h := Header{Magic: magic, IsRSID: isRSID}
	h.Version = binary.BigEndian.Uint16(data[0x04:0x06])
	h.DataOffset = binary.BigEndian.Uint16(data[0x06:0x08])
	h.LoadAddress = binary.BigEndian.Uint16(data[0x08:0x0A])
	h.InitAddress = binary.BigEndian.Uint16(data[0x0A:0x0C])
	h.PlayAddress = binary.BigEndian.Uint16(data[0x0C:0x0E])
	h.Songs = binary.BigEndian.Uint16(data[0x0E:0x10])
	h.StartSong = binary.BigEndian.Uint16(data[0x10:0x12])
	h.Speed = binary.BigEndian.Uint32(data[0x12:0x16])
	h.Name = parsePaddedString(data[0x16:0x36])
	h.Author = parsePaddedString(data[0x36:0x56])
	h.Released = parsePaddedString(data[0x56:0x76])

	if h.Version >= 2 && len(data) >= 0x78 {
		h.Flags = binary.BigEndian.Uint16(data[0x76:0x78])
	}
	if h.Version >= 2 && len(data) >= 0x7A {
		h.StartPage = data[0x78]
		h.PageLength = data[0x79]
	}
	// v1 is not RSID-capable per the format: PSID v1 with play==0 still
	// counts as RSID semantics for scheduler purposes (spec 4.16).
	if !isRSID && h.PlayAddress == 0 {
		h.IsRSID = true
	}

	if h.Version >= 3 && len(data) > 0x7A {
		h.Sid2Addr = decodeSecondarySIDBase(data[0x7A])
	}
	if h.Version >= 4 && len(data) > 0x7B {
		h.Sid3Addr = decodeSecondarySIDBase(data[0x7B])
	}

	if h.DataOffset == 0 || int(h.DataOffset) > len(data) {
		return nil, fmt.Errorf("sidfile: invalid data offset 0x%04X", h.DataOffset)
	}

	dataStart := int(h.DataOffset)
	if h.LoadAddress == 0 {
		if dataStart+2 > len(data) {
			return nil, errors.New("sidfile: missing embedded load address")
		}
		h.LoadAddress = binary.LittleEndian.Uint16(data[dataStart : dataStart+2])
		dataStart += 2
	}
	if dataStart > len(data) {
		return nil, errors.New("sidfile: data offset beyond file length")
	}

	payload := make([]byte, len(data)-dataStart)
	copy(payload, data[dataStart:])

	raw := make([]byte, len(data))
	copy(raw, data)

	return &File{Header: h, Data: payload, Raw: raw}, nil
}

// decodeSecondarySIDBase maps a header byte to a C64 base address per
// the documented restricted byte range: b in [0x42,0x7F] u [0xE0,0xFF]
// and b even -> 0xD000 | (b << 4); otherwise the slot is unused.
func decodeSecondarySIDBase(b byte) uint16 {
	inRange := (b >= 0x42 && b <= 0x7F) || (b >= 0xE0 && b <= 0xFF)
	if inRange && b&1 == 0 {
		return 0xD000 | (uint16(b) << 4)
	}
	return 0
}

func parsePaddedString(b []byte) string {
	n := 0
	for n < len(b) && b[n] != 0 {
		n++
	}
	return string(b[:n])
}

// MD5 returns the lower-case hex MD5 digest of the file's raw bytes,
// used as the key into an external Songlength database (out of scope
// here; only the hash is computed).
func (f *File) MD5() string {
	sum := md5.Sum(f.Raw)
	return hex.EncodeToString(sum[:])
}
