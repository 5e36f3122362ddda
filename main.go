package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"drumdrill/audio"
	"drumdrill/catalog"
	"drumdrill/config"
	"drumdrill/debug"
	"drumdrill/ledger"
	"drumdrill/notation"
	"drumdrill/pattern"
	"drumdrill/sequencer"
	"drumdrill/theme"
	"drumdrill/tui"
)

var version string

func main() {
	app := cli.NewApp()
	app.Version = version
	app.Compiled = time.Now()
	app.Name = "drumdrill"
	app.Usage = "practice every bass, snare and hi-hat combination"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "bpm",
			Value: sequencer.DefaultTempo,
			Usage: "tempo in beats per minute (20-300)",
		},
		cli.StringFlag{
			Name:  "port",
			Usage: "MIDI output port (substring match, empty for first port)",
		},
		cli.StringFlag{
			Name:  "backend",
			Value: string(config.BackendMIDI),
			Usage: "sound backend: midi, samples, both or none",
		},
		cli.StringFlag{
			Name:  "samples",
			Usage: "directory holding bombo.wav, redoblante.wav and platillo.wav",
		},
		cli.StringFlag{
			Name:  "kit",
			Value: audio.DefaultKit,
			Usage: "MIDI drum kit note map",
		},
		cli.StringFlag{
			Name:  "store, s",
			Usage: "file the practiced set is saved to",
		},
		cli.StringFlag{
			Name:  "pattern, p",
			Usage: "preload the custom pattern, e.g. \"b r p\"",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "write a debug log to " + debug.DefaultPath(),
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "ports",
			Usage: "list MIDI output ports",
			Action: func(c *cli.Context) error {
				defer audio.CloseDriver()
				names, err := audio.OutPorts()
				if err != nil {
					return err
				}
				if len(names) == 0 {
					fmt.Println("no MIDI output ports")
				}
				for i, name := range names {
					fmt.Printf("  %d: %s\n", i, name)
				}
				return nil
			},
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("config: %v, using defaults\n", err)
		cfg = config.DefaultConfig()
	}
	applyFlags(c, cfg)

	if c.Bool("debug") {
		if err := debug.Enable(debug.DefaultPath()); err != nil {
			return err
		}
		defer debug.Disable()
	}

	// a broken practiced file starts an empty set rather than failing
	l, err := ledger.Load(ledger.NewFileStore(cfg.Store()))
	if err != nil {
		log.WithFields(log.Fields{
			"function": "run",
			"store":    cfg.Store(),
		}).Warn(err.Error())
	}

	// deferred first so it runs after cancel has stopped the port poller
	if cfg.Output.UsesMIDI() {
		defer audio.CloseDriver()
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := audio.Open(ctx, cfg)
	if out.Err != nil {
		fmt.Printf("sound: %v\n", out.Err)
	}

	board := notation.NewBoard()
	sched := sequencer.NewScheduler(sequencer.SystemClock, out.Voice, board)
	if err := sched.SetTempo(cfg.Tempo); err != nil {
		fmt.Printf("tempo: %v, using %d\n", err, sched.Tempo())
	}

	custom := catalog.NewCustom(pattern.DefaultAlphabet, sched, board)
	if raw := c.String("pattern"); raw != "" {
		if err := custom.AppendText(raw); err != nil {
			return err
		}
	}

	m := tui.NewModel(tui.Deps{
		Scheduler: sched,
		Catalog:   catalog.New(pattern.DefaultAlphabet, cfg.Lengths, l, sched, board),
		Custom:    custom,
		Board:     board,
		Theme:     theme.Default(),
		Config:    cfg,
		Ports:     out.Ports,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())

	_, runErr := p.Run()
	sched.Stop()

	// remember tempo and filter for next time
	if err := cfg.Save(); err != nil {
		fmt.Printf("saving config: %v\n", err)
	}
	return runErr
}

func applyFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet("bpm") {
		cfg.Tempo = c.Int("bpm")
	}
	if c.IsSet("port") {
		cfg.Output.PortName = c.String("port")
	}
	if c.IsSet("backend") {
		cfg.Output.Backend = config.Backend(c.String("backend"))
	}
	if c.IsSet("samples") {
		cfg.Output.SamplesDir = c.String("samples")
		if !c.IsSet("backend") {
			cfg.Output.Backend = config.BackendSamples
		}
	}
	if c.IsSet("kit") {
		cfg.Output.Kit = c.String("kit")
	}
	if c.IsSet("store") {
		cfg.StorePath = c.String("store")
	}
}
