// Command phosphor is a headless driver for loading and playing a
// single SID tune: load a file, pick an output sink, run the player
// thread, print status ticks. It stands in for the GUI shell, which is
// out of scope for this core.
//
// Grounded on doismellburning-samoyed/cmd/direwolf/main.go's pflag
// idiom (StringP/IntP/BoolP flags, a custom Usage func, pflag.Parse)
// and IntuitionAmiga-IntuitionEngine's own "load file, print periodic
// status" command-line shape.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/sandlbn/phosphor/internal/config"
	"github.com/sandlbn/phosphor/internal/device"
	"github.com/sandlbn/phosphor/internal/player"
)

func main() {
	var (
		file        = pflag.StringP("file", "f", "", "Path to a PSID/RSID tune file (required).")
		song        = pflag.Uint16P("song", "s", 0, "Subtune to play, 1-based. 0 selects the tune's default.")
		engine      = pflag.StringP("engine", "e", "", "Output engine: usb-bridge, usb-direct, emulated, native. Empty auto-selects.")
		stereo      = pflag.BoolP("stereo", "S", false, "Force a second SID at $D420 for mono tunes.")
		pal         = pflag.Bool("pal", true, "Use PAL timing (50Hz).")
		ntsc        = pflag.Bool("ntsc", false, "Use NTSC timing (60Hz), overrides --pal.")
		u64Address  = pflag.String("u64-address", "", "Ultimate-64 host[:port] for the native engine.")
		u64Password = pflag.String("u64-password", "", "Ultimate-64 REST API password, if set.")
		configPath  = pflag.StringP("config", "c", "", "Optional YAML preferences file (output_engine_name, u64_address, u64_password).")
	)

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "phosphor - headless PSID/RSID player.\n\n")
		fmt.Fprintf(os.Stderr, "Usage: phosphor --file tune.sid [options]\n\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *file == "" {
		pflag.Usage()
		os.Exit(1)
	}

	prefs := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "phosphor: %v\n", err)
			os.Exit(1)
		}
		prefs = loaded
	}

	if *engine == "" {
		*engine = prefs.OutputEngineName
	}
	if *u64Address == "" {
		*u64Address = prefs.U64Address
	}
	if *u64Password == "" {
		*u64Password = prefs.U64Password
	}
	var overridePAL *bool
	switch {
	case *ntsc:
		v := false
		overridePAL = &v
	case pflag.CommandLine.Changed("pal"):
		v := *pal
		overridePAL = &v
	}

	thread := player.NewThread(func(name, u64Addr, u64Pass string) (player.Sink, error) {
		cfg := device.Config{U64Address: u64Addr, U64Password: u64Pass}
		if name == "" {
			return device.CreateAuto(cfg)
		}
		return device.Create(name, cfg)
	})
	go thread.Run()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)

	thread.In <- player.Cmd{
		Kind:        player.CmdSetEngine,
		EngineName:  *engine,
		U64Address:  *u64Address,
		U64Password: *u64Password,
	}
	thread.In <- player.Cmd{
		Kind:        player.CmdPlay,
		Path:        *file,
		Song:        *song,
		ForceStereo: *stereo,
		OverridePAL: overridePAL,
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case st, ok := <-thread.Out:
			if !ok {
				return
			}
			if st.Err != nil {
				fmt.Fprintf(os.Stderr, "phosphor: %v\n", st.Err)
				continue
			}
			if st.State == player.StatePlaying {
				fmt.Printf("\r%s - %s  [%s]  %s/%d  ", st.Track.Name, st.Track.Author,
					st.State, elapsedString(st.Elapsed), st.Track.Songs)
			}
		case <-sigc:
			thread.In <- player.Cmd{Kind: player.CmdQuit}
		case <-ticker.C:
		}
	}
}

func elapsedString(d time.Duration) string {
	d = d.Round(time.Second)
	m := d / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%02d:%02d", m, s)
}
