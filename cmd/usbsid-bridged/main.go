// Command usbsid-bridged is the privileged daemon that owns a real
// USBSID-Pico USB handle and exposes it to unprivileged phosphor
// processes over internal/usbproto's UNIX socket protocol.
//
// No libusb/cgo binding is wired into this build (see
// internal/device.NewUSBDirect's doc comment for why); this daemon
// runs against a logging stand-in endpoint until a real one is linked
// in, which is enough to exercise the full socket protocol end to end.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sandlbn/phosphor/internal/daemon"
	"github.com/sandlbn/phosphor/internal/logx"
)

// loggingEndpoint stands in for a real USB handle: it accepts every
// packet and logs it, so the daemon and its socket protocol can be
// exercised without hardware attached.
type loggingEndpoint struct{}

func (loggingEndpoint) Write(packet []byte) error {
	logx.Infof("usbsid-bridged", "-> %d bytes to device", len(packet))
	return nil
}

func (loggingEndpoint) Close() error { return nil }

func main() {
	d := daemon.New(loggingEndpoint{})

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigc
		d.Close()
	}()

	if err := d.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "usbsid-bridged: %v\n", err)
		os.Exit(1)
	}
}
