package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"drumdrill/audio"
	"drumdrill/config"
	"drumdrill/pattern"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "play":
		play()
	case "kits":
		listKits()
	default:
		usage()
	}
}

func usage() {
	fmt.Println("Sound check")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list    - List MIDI output ports")
	fmt.Println("  play    - Play each instrument through the configured output")
	fmt.Println("  kits    - Show kit note maps")
}

func listPorts() {
	fmt.Println("=== MIDI Output Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")
	defer audio.CloseDriver()

	names, err := audio.OutPorts()
	if err != nil {
		fmt.Printf("\n%v\n", err)
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
		return
	}
	for i, name := range names {
		fmt.Printf("  %d: %s\n", i, name)
	}
}

func listKits() {
	for _, name := range audio.KitNames() {
		kit := audio.GetKit(name)
		fmt.Printf("%-6s", name)
		for _, sym := range pattern.DefaultAlphabet {
			fmt.Printf("  %s=%d", sym.Name(), kit.Notes[sym])
		}
		fmt.Println()
	}
}

func play() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("config: %v\n", err)
		cfg = config.DefaultConfig()
	}

	if cfg.Output.UsesMIDI() {
		defer audio.CloseDriver()
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := audio.Open(ctx, cfg)
	if out.Err != nil {
		fmt.Printf("%v\n", out.Err)
		return
	}

	fmt.Printf("backend=%s\n", cfg.Output.Backend)
	for _, sym := range pattern.DefaultAlphabet {
		for i := 0; i < 4; i++ {
			fmt.Printf("  %s\n", sym.Name())
			if err := out.Voice.Trigger(sym); err != nil {
				fmt.Printf("  error: %v\n", err)
			}
			time.Sleep(400 * time.Millisecond)
		}
	}
	// let the last note off and sample tail finish
	time.Sleep(time.Second)
	fmt.Println("done")
}
