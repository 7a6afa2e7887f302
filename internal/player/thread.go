package player

import (
	"os"
	"time"

	"github.com/sandlbn/phosphor/internal/c64"
	"github.com/sandlbn/phosphor/internal/logx"
	"github.com/sandlbn/phosphor/internal/mos6502"
	"github.com/sandlbn/phosphor/internal/sidfile"
)

const (
	cmdQueueDepth    = 64
	statusQueueDepth = 16

	idlePollInterval = 100 * time.Millisecond
)

// Thread is a running player: a goroutine consuming Cmds from In and
// publishing Status updates to Out. The caller owns both channels'
// lifetimes; Run returns once a CmdQuit is processed or In is closed.
//
// Grounded on IntuitionAmiga-IntuitionEngine's SIDPlayer.startAsync
// (a dedicated goroutine draining a command channel) and
// original_source/src/player/mod.rs's spawn_player/player_loop state
// machine (bounded(64) command / bounded(16) status channels,
// select-driven idle tick while Stopped/Paused, drain-and-continue
// while Playing), reimplemented with Go's select over buffered
// channels and a time.Timer instead of crossbeam's select!+tick.
type Thread struct {
	In  chan Cmd
	Out chan Status

	sinkFactory func(name, u64Addr, u64Pass string) (Sink, error)

	state PlayState
	sink  Sink
}

// NewThread returns an idle Thread. sinkFactory is called on
// CmdSetEngine (and implicitly with the default engine name on the
// first CmdPlay) to build the device.Sink for subsequent playback;
// it is injected rather than imported directly so this package has no
// dependency on internal/device, whose Emulated sink in turn wants to
// know nothing about player scheduling.
func NewThread(sinkFactory func(name, u64Addr, u64Pass string) (Sink, error)) *Thread {
	return &Thread{
		In:          make(chan Cmd, cmdQueueDepth),
		Out:         make(chan Status, statusQueueDepth),
		sinkFactory: sinkFactory,
		state:       StateStopped,
	}
}

// Run executes the player state machine until a CmdQuit is received or
// In is closed. Intended to be run via `go thread.Run()`.
func (t *Thread) Run() {
	defer close(t.Out)

	var (
		sched     *Scheduler
		ctx       *Context
		playAddr  uint16
		viaIRQ    bool
		startedAt time.Time
	)

	publish := func(err error) {
		st := Status{State: t.state, Err: err}
		if ctx != nil {
			st.Track = ctx.TrackInfo
			st.Elapsed = time.Since(startedAt)
		}
		select {
		case t.Out <- st:
		default:
			// Drop rather than block; a slow consumer should not
			// stall playback pacing.
		}
	}

	for {
		switch t.state {
		case StatePlaying:
			select {
			case cmd, ok := <-t.In:
				if !ok {
					return
				}
				if t.handleCmd(cmd, &sched, &ctx, &playAddr, &viaIRQ, &startedAt, publish) {
					return
				}
				continue
			default:
			}

			writes := sched.RunFrame(playAddr, viaIRQ)
			for _, w := range writes {
				if err := t.sink.RingCycled(w.Reg, w.Value, w.FrameCycle); err != nil {
					logx.Errorf("player", "write to sink: %v", err)
				}
			}
			if err := t.sink.Flush(); err != nil {
				logx.Errorf("player", "flush sink: %v", err)
			}
			ctx.Elapsed = time.Since(startedAt)
			publish(nil)
			waitUntil(ctx.NextDeadline)
			ctx.NextDeadline = ctx.NextDeadline.Add(ctx.FrameMicros)

		default: // Stopped, Paused
			select {
			case cmd, ok := <-t.In:
				if !ok {
					return
				}
				if t.handleCmd(cmd, &sched, &ctx, &playAddr, &viaIRQ, &startedAt, publish) {
					return
				}
			case <-time.After(idlePollInterval):
				publish(nil)
			}
		}
	}
}

func (t *Thread) handleCmd(
	cmd Cmd,
	sched **Scheduler,
	ctx **Context,
	playAddr *uint16,
	viaIRQ *bool,
	startedAt *time.Time,
	publish func(error),
) (quit bool) {
	switch cmd.Kind {
	case CmdQuit:
		t.state = StateStopped
		return true

	case CmdStop:
		t.state = StateStopped
		*sched = nil
		*ctx = nil
		publish(nil)

	case CmdTogglePause:
		if t.state == StatePlaying {
			t.state = StatePaused
		} else if t.state == StatePaused {
			t.state = StatePlaying
		}
		publish(nil)

	case CmdSetEngine:
		sink, err := t.sinkFactory(cmd.EngineName, cmd.U64Address, cmd.U64Password)
		if err != nil {
			publish(err)
			return false
		}
		t.sink = sink

	case CmdSetSubtune:
		if *ctx != nil {
			(*ctx).TrackInfo.CurrentSong = cmd.Subtune
		}

	case CmdPlay:
		newSched, newCtx, newPlayAddr, newViaIRQ, err := t.startTune(cmd)
		if err != nil {
			publish(err)
			return false
		}
		if t.sink == nil {
			sink, serr := t.sinkFactory("emulated", "", "")
			if serr != nil {
				publish(serr)
				return false
			}
			t.sink = sink
		}
		*sched, *ctx, *playAddr, *viaIRQ = newSched, newCtx, newPlayAddr, newViaIRQ
		*startedAt = time.Now()
		(*ctx).NextDeadline = time.Now().Add((*ctx).FrameMicros)
		t.state = StatePlaying
		publish(nil)
	}
	return false
}

// startTune loads and INITs the tune named by cmd.Path, returning a
// ready-to-run Scheduler plus everything RunFrame needs each frame.
func (t *Thread) startTune(cmd Cmd) (*Scheduler, *Context, uint16, bool, error) {
	raw, err := os.ReadFile(cmd.Path)
	if err != nil {
		return nil, nil, 0, false, err
	}
	f, err := sidfile.Parse(raw)
	if err != nil {
		return nil, nil, 0, false, err
	}

	song := cmd.Song
	if song == 0 {
		song = f.Header.StartSong
	}

	track := TrackInfo{
		Path:        cmd.Path,
		Name:        f.Header.Name,
		Author:      f.Header.Author,
		Released:    f.Header.Released,
		Songs:       f.Header.Songs,
		CurrentSong: song,
		IsPAL:       overridePAL(cmd.OverridePAL, !f.Header.IsNTSC()),
		IsRSID:      f.Header.IsRSID,
		MD5:         f.MD5(),
	}

	bases := []uint16{0xD400}
	if cmd.ForceStereo || f.Header.Sid2Addr != 0 {
		if f.Header.Sid2Addr != 0 {
			bases = append(bases, f.Header.Sid2Addr)
		} else {
			bases = append(bases, 0xD420)
		}
	}
	if f.Header.Sid3Addr != 0 {
		bases = append(bases, f.Header.Sid3Addr)
	} else if cmd.Sid4Addr != 0 {
		bases = append(bases, cmd.Sid4Addr)
	}
	track.NumSIDs = len(bases)
	sids := c64.NewSIDMap(bases...)

	engine := EnginePSID
	if f.Header.IsRSID {
		engine = EngineRSID
	}

	ctx := NewContext(engine, track.IsPAL, track)
	ctx.MirrorMono = cmd.ForceStereo && f.Header.Sid2Addr == 0 && track.NumSIDs > 1

	scheduler := &Scheduler{ctx: ctx}

	var bus Bus
	var viaIRQ bool
	var cpu *mos6502.CPU

	if f.Header.IsRSID {
		b := c64.NewBusRSID(sids, scheduler)
		bus = b
		viaIRQ = true
		cpu = mos6502.New(b)
		b.LoadBinary(f.Header.LoadAddress, f.Data)
	} else {
		b := c64.NewBusPSID(sids, scheduler)
		bus = b
		cpu = mos6502.New(b)
		b.LoadBinary(f.Header.LoadAddress, f.Data)
	}
	scheduler.bus = bus
	scheduler.cpu = cpu
	cpu.Reset()

	scheduler.RunInit(f.Header.InitAddress, uint8(song), viaIRQ)

	return scheduler, ctx, f.Header.PlayAddress, viaIRQ, nil
}

func overridePAL(override *bool, headerPAL bool) bool {
	if override != nil {
		return *override
	}
	return headerPAL
}
