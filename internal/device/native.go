package device

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// Native streams captured SID writes to a networked Ultimate-64/64c,
// which runs the tune's register writes through its own real SID
// chips; this sink never touches emulation or USB at all, it only
// serialises writes and posts them to the device's REST endpoint.
//
// Grounded on original_source's sid_u64.rs shape (a small HTTP client
// posting accumulated register writes, gated by an optional password)
// -- reimplemented with Go's net/http rather than translated, since
// the Rust client's request-building idiom does not carry over.
type Native struct {
	client   *http.Client
	endpoint string
	password string

	mu      sync.Mutex
	pending bytes.Buffer
}

// NewNative returns a sink posting to the given Ultimate-64 address
// (host or host:port; the /v1/runners/sidplay endpoint is appended).
func NewNative(address, password string) (*Native, error) {
	u := &url.URL{Scheme: "http", Host: address, Path: "/v1/runners/sidplay"}
	return &Native{
		client:   &http.Client{Timeout: 2 * time.Second},
		endpoint: u.String(),
		password: password,
	}, nil
}

// RingCycled appends a delta-cycled write to the pending buffer, wire
// format: reg, value, cycles (big-endian uint16), matching the ring
// packet shape other sinks use so a capture can be replayed through
// any of them unmodified.
func (n *Native) RingCycled(reg uint8, value uint8, deltaCycles uint32) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending.WriteByte(reg)
	n.pending.WriteByte(value)
	var cyc [2]byte
	binary.BigEndian.PutUint16(cyc[:], clampCycles(deltaCycles))
	n.pending.Write(cyc[:])
	return nil
}

// Flush POSTs the accumulated frame's writes as one request body.
func (n *Native) Flush() error {
	n.mu.Lock()
	body := make([]byte, n.pending.Len())
	copy(body, n.pending.Bytes())
	n.pending.Reset()
	n.mu.Unlock()

	if len(body) == 0 {
		return nil
	}

	req, err := http.NewRequest(http.MethodPost, n.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	if n.password != "" {
		req.Header.Set("X-Password", n.password)
	}
	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("device: native post: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("device: native post: status %d", resp.StatusCode)
	}
	return nil
}

// SetStereo is a no-op: the Ultimate-64 decides its own SID routing
// from the tune's own $D4/$D5 writes, there is no separate toggle.
func (n *Native) SetStereo(enabled bool) error { return nil }

// Mute queues a single zero-volume write to register 0x18 of bank 0,
// posted with the next Flush; secondary/tertiary SIDs are not muted.
func (n *Native) Mute() error {
	return n.RingCycled(0x18, 0x00, 0)
}

// Close flushes any pending writes; there is no persistent connection
// to tear down.
func (n *Native) Close() error {
	return n.Flush()
}
