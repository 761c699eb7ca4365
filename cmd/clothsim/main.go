// Command clothsim steps a hanging cloth and reports its self-collisions.
//
// Without -listen it runs headless for -frames frames. With -listen it serves the
// frames to websocket viewers on /ws at -hz frames per second until interrupted,
// -frames is then ignored.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/akmonengine/cloth"
	"github.com/akmonengine/cloth/internal/stream"
	"github.com/akmonengine/cloth/mesh"
	"golang.org/x/sync/errgroup"
)

func main() {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sim, err := newSimulation(opts)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("cloth %dx%d: %d points, %d stretches, %d triangles",
		opts.Grid, opts.Grid, len(sim.body.MassPoints()), len(sim.body.Stretches()), len(sim.body.Triangles()))

	if opts.Listen == "" {
		sim.runHeadless(ctx)
		return
	}
	if err := sim.serve(ctx); err != nil {
		log.Fatal(err)
	}
}

type simulation struct {
	opts options

	// mu guards the mesh and tick read by the viewers' welcome
	mu   sync.Mutex
	body *cloth.RigidBody
	mesh *mesh.Mesh
	tick uint64

	// entered counts the points that started colliding since the last log line
	entered int
}

func newSimulation(opts options) (*simulation, error) {
	config := cloth.DefaultConfig()
	config.Iterations = opts.Iterations
	config.Workers = opts.Workers
	config.BroadPhase = opts.BroadPhase
	config.Seed = opts.Seed

	body, m, err := cloth.NewCloth(cloth.DefaultGridConfig(opts.Grid), config)
	if err != nil {
		return nil, err
	}

	s := &simulation{opts: opts, body: body, mesh: m}
	body.Events.Subscribe(cloth.COLLISION_ENTER, func(event cloth.Event) {
		s.entered++
	})

	return s, nil
}

// step advances the cloth by one frame and refreshes the render buffers
func (s *simulation) step() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.body.Update(s.opts.Dt)
	s.mesh.Sync(s.body.MassPoints())
	s.mesh.SetHighlighted(s.body.Highlighted())
	s.tick++

	if s.opts.LogEvery > 0 && s.tick%uint64(s.opts.LogEvery) == 0 {
		log.Printf("frame %d: %d collisions, %d new colliding points", s.tick, len(s.body.Highlighted()), s.entered)
		s.entered = 0
	}
}

func (s *simulation) frame() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return stream.Encode(stream.MsgFrame, stream.NewFrame(s.tick, s.mesh))
}

func (s *simulation) runHeadless(ctx context.Context) {
	start := time.Now()
	total := 0
	for s.opts.Frames == 0 || s.tick < uint64(s.opts.Frames) {
		if ctx.Err() != nil {
			break
		}
		s.step()
		total += len(s.body.Highlighted())
	}

	log.Printf("%d frames in %v, %d collisions", s.tick, time.Since(start), total)
}

func (s *simulation) serve(ctx context.Context) error {
	hub := stream.NewHub(func() ([]byte, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		return stream.Encode(stream.MsgWelcome, stream.NewWelcome(s.tick, s.mesh))
	})
	defer hub.Close()

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	srv := &http.Server{Addr: s.opts.Listen, Handler: mux}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("streaming on ws://%s/ws", s.opts.Listen)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		ticker := time.NewTicker(s.opts.tick())
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				s.step()
				msg, err := s.frame()
				if err != nil {
					log.Println("encode:", err)
					continue
				}
				hub.Broadcast(msg)
			}
		}
	})

	return g.Wait()
}
