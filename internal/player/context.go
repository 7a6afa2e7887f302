package player

import "time"

// PAL and NTSC system clock rates and derived per-frame cycle budgets.
// Grounded on IntuitionAmiga-IntuitionEngine's sid_constants.go
// (SID_CLOCK_PAL/SID_CLOCK_NTSC) and original_source's sid_emulated.rs
// (PAL_CYCLES_PER_FRAME/NTSC_CYCLES_PER_FRAME), which agree.
const (
	ClockPAL  = 985248
	ClockNTSC = 1022727

	CyclesPerFramePAL  = 19705
	CyclesPerFrameNTSC = 17045

	FrameMicrosPAL  = 20000
	FrameMicrosNTSC = 16667
)

// Engine tags which SID addressing/playback convention a loaded tune
// uses: PSID tunes call INIT/PLAY directly from the scheduler, RSID
// tunes install their own interrupt handler and are driven purely by
// IRQ/NMI delivery, and native mode bypasses emulation entirely and
// streams raw register writes captured from a PSID/RSID run to an
// Ultimate-64 (spec 4.16/4.17).
type Engine int

const (
	EnginePSID Engine = iota
	EngineRSID
	EngineNative
)

// Context holds the per-tune parameters the scheduler needs once a
// tune has been loaded and its INIT routine has returned: which engine
// drives it, how long a frame is, how many cycles to run per frame,
// and bookkeeping for pacing and reporting.
type Context struct {
	Engine Engine

	FrameMicros    time.Duration
	CyclesPerFrame uint32

	Elapsed time.Duration

	// MirrorMono duplicates every SID1 write to registers $00-$18 onto SID2 at the same
	// frame-cycle when stereo output was requested for a mono tune,
	// per original_source/src/player/mod.rs's send_sid_writes.
	MirrorMono bool

	TrackInfo TrackInfo

	// NextDeadline is the absolute wall-clock time the next frame's
	// writes must be delivered by; the scheduler advances it by
	// FrameMicros every frame rather than measuring elapsed time
	// relative to "now", so playback cannot drift as individual
	// frames take slightly more or less wall time to render.
	NextDeadline time.Time
}

// NewContext returns a Context configured for the given video
// standard and engine mode.
func NewContext(engine Engine, isPAL bool, track TrackInfo) *Context {
	c := &Context{Engine: engine, TrackInfo: track}
	if isPAL {
		c.FrameMicros = FrameMicrosPAL * time.Microsecond
		c.CyclesPerFrame = CyclesPerFramePAL
	} else {
		c.FrameMicros = FrameMicrosNTSC * time.Microsecond
		c.CyclesPerFrame = CyclesPerFrameNTSC
	}
	return c
}

// ClockHz returns the Phi2 clock rate implied by the track's video
// standard.
func (c *Context) ClockHz() uint32 {
	if c.TrackInfo.IsPAL {
		return ClockPAL
	}
	return ClockNTSC
}
