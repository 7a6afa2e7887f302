package player

import "time"

// sleepSlack is how much of the remaining time before a deadline is
// left to a spin-wait tail rather than handed to the OS scheduler,
// since time.Sleep routinely overshoots by more than this on a
// preemptible goroutine.
const sleepSlack = time.Millisecond

// waitUntil blocks until deadline, sleeping for the bulk of the
// remaining time and spin-waiting the last sleepSlack so the actual
// wakeup lands within a few dozen microseconds of the target instead
// of however long the OS scheduler's next tick takes.
//
// Grounded on original_source/src/player/mod.rs's wait_until, which
// uses the identical sleep-then-spin split against the same absolute-
// deadline pacing model (spec 4.14: frame pacing is anchored to an
// advancing deadline, never to a fixed per-frame relative sleep, so
// a single slow frame cannot compound into permanent drift).
func waitUntil(deadline time.Time) {
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return
		}
		if remaining > sleepSlack {
			time.Sleep(remaining - sleepSlack)
			continue
		}
		break
	}
	for time.Now().Before(deadline) {
		// spin
	}
}
