package core

import (
	"fmt"
	"log"
	"sync"

	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/shared/netcomponents"
	"github.com/automoto/doomerang-combat/systems"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/yohamta/donburi"
)

// Options configures a simulation server.
type Options struct {
	TickRate    int
	Script      Script
	AttacksPath string // optional YAML attack table, watched for edits
	Networked   bool   // replicate the world to spectators over WebSocket
	Repeat      bool   // rewind the script when it runs out
}

// Server runs the combat simulation on a fixed tick and optionally streams
// it to connected spectators.
type Server struct {
	opts      Options
	world     donburi.World
	sim       *Sim
	loop      *GameLoop
	watcher   *cfg.Watcher
	transport *transports.WsServerTransport
	finished  chan struct{}
	finish    sync.Once

	clients map[*router.NetworkClient]struct{}
	mu      sync.RWMutex
}

// NewServer creates a server and its simulation. The attack table is applied
// before the first tick.
func NewServer(opts Options) (*Server, error) {
	world := donburi.NewWorld()

	s := &Server{
		opts:     opts,
		world:    world,
		finished: make(chan struct{}),
		clients:  make(map[*router.NetworkClient]struct{}),
	}

	if opts.Networked {
		// Set up the world for esync before any synced entity exists.
		srvsync.UseEsync(world)
	}
	s.sim = NewSim(world, opts.Script)

	if opts.AttacksPath != "" {
		table, err := cfg.LoadAttackTable(opts.AttacksPath)
		if err != nil {
			return nil, err
		}
		systems.ApplyAttackTable(world, table)

		w, err := cfg.WatchAttackTable(opts.AttacksPath)
		if err != nil {
			return nil, fmt.Errorf("watch attack table: %w", err)
		}
		s.watcher = w
	}

	if opts.Networked {
		if err := s.syncEntities(); err != nil {
			s.closeWatcher()
			return nil, err
		}
		s.setupRouterCallbacks()
	}

	s.loop = NewGameLoop(s, opts.TickRate)
	return s, nil
}

// Start begins the game loop and, when networked, serves spectators on port.
// It blocks while the transport runs; without networking it returns at once.
func (s *Server) Start(port uint) error {
	go s.loop.Run()

	if !s.opts.Networked {
		return nil
	}
	s.transport = transports.NewWsServerTransport(port, "", nil)
	return s.transport.Start()
}

// Stop gracefully shuts down the server
func (s *Server) Stop() {
	s.loop.Stop()
	s.closeWatcher()
}

// Finished is closed when a non-repeating script runs out.
func (s *Server) Finished() <-chan struct{} {
	return s.finished
}

// Tick advances the simulation one step. The game loop calls it; tests and
// the fast-forward mode call it directly.
func (s *Server) Tick() {
	systems.PollAttackReload(s.world, s.watcher)

	if s.sim.Done() {
		if !s.opts.Repeat {
			s.markFinished()
			return
		}
		s.sim.Rewind()
	}
	s.sim.Step()

	if s.opts.Networked {
		if err := srvsync.DoSync(); err != nil {
			log.Printf("[sync] error: %v", err)
		}
	}
}

// RunFast steps the whole script as fast as possible and returns the stats.
func (s *Server) RunFast() Stats {
	for !s.sim.Done() {
		s.Tick()
	}
	s.markFinished()
	s.closeWatcher()
	return s.sim.Stats()
}

func (s *Server) Sim() *Sim { return s.sim }

// ClientCount returns the number of connected spectators
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) syncEntities() error {
	fighter := s.sim.Fighter().Entity()
	if err := srvsync.NetworkSync(s.world, &fighter,
		srvsync.WithInterp(netcomponents.NetPosition),
		netcomponents.NetFighterState,
		netcomponents.NetAttackState,
	); err != nil {
		return fmt.Errorf("network sync fighter: %w", err)
	}

	dummy := s.sim.Dummy().Entity()
	if err := srvsync.NetworkSync(s.world, &dummy,
		srvsync.WithInterp(netcomponents.NetPosition),
		netcomponents.NetFighterState,
	); err != nil {
		return fmt.Errorf("network sync dummy: %w", err)
	}
	return nil
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		s.mu.Lock()
		s.clients[client] = struct{}{}
		s.mu.Unlock()
		log.Printf("[net] spectator connected: %s", client.Id())
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		s.mu.Lock()
		delete(s.clients, client)
		s.mu.Unlock()
		if err != nil {
			log.Printf("[net] spectator %s disconnected with error: %v", client.Id(), err)
			return
		}
		log.Printf("[net] spectator %s disconnected", client.Id())
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		log.Printf("[net] client error: %v", err)
	})
}

func (s *Server) markFinished() {
	s.finish.Do(func() {
		log.Printf("[sim] script finished after %d ticks: %s", s.sim.Tick(), s.sim.Stats())
		close(s.finished)
	})
}

func (s *Server) closeWatcher() {
	if s.watcher != nil {
		s.watcher.Close()
	}
}
