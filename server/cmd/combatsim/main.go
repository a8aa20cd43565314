package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/server/core"
	"github.com/automoto/doomerang-combat/shared/protocol"
)

func main() {
	port := flag.Uint("port", 7373, "Spectator port (with -net)")
	tickRate := flag.Int("tickrate", 60, "Simulation tick rate (updates per second)")
	networked := flag.Bool("net", false, "Stream the simulation to spectators over WebSocket")
	realtime := flag.Bool("realtime", false, "Run on a wall-clock ticker instead of fast-forwarding")
	repeat := flag.Bool("repeat", false, "Rewind the script when it runs out (realtime only)")
	scriptPath := flag.String("script", "", "Input script YAML (default: built-in combo demo)")
	attacksPath := flag.String("attacks", "", "Attack table YAML to load and watch (default: built-in)")
	logCombat := flag.Bool("log-combat", false, "Log combat diagnostics")
	flag.Parse()

	config.Debug.LogCombat = *logCombat
	config.C.TickRate = *tickRate

	script := core.DefaultScript()
	if *scriptPath != "" {
		s, err := core.LoadScript(*scriptPath)
		if err != nil {
			log.Fatalf("Failed to load script: %v", err)
		}
		script = s
	}

	if *networked {
		if err := protocol.RegisterComponents(); err != nil {
			log.Fatalf("Failed to register components: %v", err)
		}
		// Spectators need wall-clock pacing.
		*realtime = true
	}

	server, err := core.NewServer(core.Options{
		TickRate:    *tickRate,
		Script:      script,
		AttacksPath: *attacksPath,
		Networked:   *networked,
		Repeat:      *repeat,
	})
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	if !*realtime {
		stats := server.RunFast()
		log.Printf("[sim] done: %s", stats)
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	log.Printf("Starting combat simulator (tick rate: %d/s, net: %t, port: %d)", *tickRate, *networked, *port)
	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(*port)
	}()

	select {
	case <-sigChan:
		log.Println("Shutting down simulator...")
	case <-server.Finished():
	case err := <-errChan:
		if err != nil {
			server.Stop()
			log.Fatalf("Server error: %v", err)
		}
		// Without networking Start returns at once; wait for the script.
		select {
		case <-sigChan:
			log.Println("Shutting down simulator...")
		case <-server.Finished():
		}
	}
	server.Stop()
}
