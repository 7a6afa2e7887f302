package device

import "math"

// externalFilter models the SID's single fixed RC low-pass/high-pass
// pair sitting between the chip's DAC output and the outside world
// (distinct from the per-voice resonant filter, which is modelled by
// voiceFilter below). It exists on every real SID and is not
// switchable, so it is applied unconditionally to the mixed output.
//
// Grounded on the documented RC time constants (R=10kOhm, C=1000pF
// low-pass; R=1kOhm, C=10uF high-pass) rather than a reSID port: the
// Non-goal explicitly excludes bit-accurate reSID reproduction, so
// this engine reimplements the same single-pole RC formula reSID's
// own documentation describes instead of porting reSID's C++.
type externalFilter struct {
	lowpassState  float64
	highpassState float64
	wLow          float64
	wHigh         float64
}

func newExternalFilter(sampleRate int) *externalFilter {
	const (
		rcLow  = 10000.0 * 1000e-12 // 10kOhm * 1000pF
		rcHigh = 1000.0 * 10e-6     // 1kOhm * 10uF
	)
	return &externalFilter{
		wLow:  1.0 / (1.0 + rcLow*float64(sampleRate)),
		wHigh: 1.0 / (1.0 + rcHigh*float64(sampleRate)),
	}
}

func (f *externalFilter) process(in float64) float64 {
	f.lowpassState += (in - f.lowpassState) * f.wLow
	f.highpassState += (f.lowpassState - f.highpassState) * f.wHigh
	return f.lowpassState - f.highpassState
}

// voiceFilter is the per-voice resonant state-variable filter fed by
// the SID_RES_FILT routing bits and SID_MODE_VOL's LP/BP/HP select,
// implemented as the textbook Chamberlin state-variable topology
// (two integrators plus a damped feedback term) tuned so cutoff
// register 0-2047 maps across the audible range, not as an attempt to
// reproduce the real chip's well-known nonlinear transistor ladder.
// Emulated's mixer does not route voices through it: the routing,
// mode and cutoff/resonance registers have no effect on its output.
type voiceFilter struct {
	low, band float64
}

func (f *voiceFilter) process(in, cutoffHz, resonance float64, sampleRate int, lp, bp, hp bool) float64 {
	w := 2 * math.Sin(math.Pi*cutoffHz/float64(sampleRate))
	if w > 1 {
		w = 1
	}
	q := 1.0 - resonance
	high := in - f.low - q*f.band
	f.band += w * high
	f.low += w * f.band

	var out float64
	if lp {
		out += f.low
	}
	if bp {
		out += f.band
	}
	if hp {
		out += high
	}
	return out
}
