// Package player drives a loaded SID tune through its INIT/PLAY
// lifecycle and schedules frame-paced output to a device sink, via a
// small command/status-channel state machine a caller runs on its own
// goroutine.
//
// Grounded on IntuitionAmiga-IntuitionEngine's sid_player.go (the
// async start/command idiom for a long-running playback goroutine)
// and original_source/src/player/mod.rs (the PlayerCmd/PlayerStatus
// shape and its state machine, reimplemented in Go's channel idiom
// rather than translated from Rust's crossbeam_channel/select!).
package player

import "time"

// PlayState is the playback state machine's current state.
type PlayState int

const (
	StateStopped PlayState = iota
	StatePlaying
	StatePaused
)

func (s PlayState) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// TrackInfo is the metadata a Play command resolves into, reported
// back to the caller in every status update.
type TrackInfo struct {
	Path        string
	Name        string
	Author      string
	Released    string
	Songs       uint16
	CurrentSong uint16
	IsPAL       bool
	IsRSID      bool
	NumSIDs     int
	MD5         string
}

// Cmd is a request sent to the player goroutine.
type Cmd struct {
	Kind Kind

	// Play fields.
	Path        string
	Song        uint16
	ForceStereo bool
	Sid4Addr    uint16
	// OverridePAL forces PAL (true) or NTSC (false) timing regardless of
	// the tune header's own clock flag. Nil defers to the header.
	OverridePAL *bool

	// SetSubtune field.
	Subtune uint16

	// SetEngine fields.
	EngineName  string
	U64Address  string
	U64Password string
}

// Kind tags which request Cmd carries.
type Kind int

const (
	CmdPlay Kind = iota
	CmdStop
	CmdTogglePause
	CmdSetSubtune
	CmdSetEngine
	CmdQuit
)

// Status is a snapshot the player goroutine reports after every
// frame (while playing) or on state transitions.
type Status struct {
	State          PlayState
	Track          TrackInfo
	Elapsed        time.Duration
	VoiceLevels    [3]uint8
	WritesPerFrame int
	Err            error
}

// CapturedWrite is one SID register write observed during a frame's
// CPU execution, tagged with the cycle (relative to frame start) it
// occurred on.
type CapturedWrite struct {
	FrameCycle uint32
	Reg        uint8
	Value      uint8
}
