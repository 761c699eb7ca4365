package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/akmonengine/cloth"
	"github.com/joho/godotenv"
)

type options struct {
	Grid       int
	Frames     int
	Dt         float64
	Iterations int
	Workers    int
	BroadPhase bool
	Seed       uint64
	Listen     string
	Hz         int
	LogEvery   int
}

func defaultOptions() options {
	return options{
		Grid:       10,
		Frames:     600,
		Dt:         1.0 / 60.0,
		Iterations: cloth.DEFAULT_ITERATIONS,
		Workers:    cloth.DEFAULT_WORKERS,
		Hz:         60,
		LogEvery:   60,
	}
}

func (o *options) register(fs *flag.FlagSet) {
	fs.IntVar(&o.Grid, "grid", o.Grid, "cells per side of the cloth")
	fs.IntVar(&o.Frames, "frames", o.Frames, "frames to simulate, 0 runs until interrupted")
	fs.Float64Var(&o.Dt, "dt", o.Dt, "time step in seconds")
	fs.IntVar(&o.Iterations, "iterations", o.Iterations, "relaxation sweeps per frame")
	fs.IntVar(&o.Workers, "workers", o.Workers, "collision detection workers")
	fs.BoolVar(&o.BroadPhase, "broadphase", o.BroadPhase, "cull triangles with a spatial grid")
	fs.Uint64Var(&o.Seed, "seed", o.Seed, "seed of the random force, 0 picks a random seed")
	fs.StringVar(&o.Listen, "listen", o.Listen, "address to stream frames on, headless when empty")
	fs.IntVar(&o.Hz, "hz", o.Hz, "frames per second when streaming")
	fs.IntVar(&o.LogEvery, "log-every", o.LogEvery, "frames between two log lines, 0 disables them")
}

func (o options) validate() error {
	switch {
	case o.Grid < 1:
		return fmt.Errorf("grid must be at least 1, got %d", o.Grid)
	case o.Frames < 0:
		return fmt.Errorf("frames must not be negative, got %d", o.Frames)
	case o.Dt <= 0:
		return fmt.Errorf("dt must be positive, got %v", o.Dt)
	case o.Iterations < 0:
		return fmt.Errorf("iterations must not be negative, got %d", o.Iterations)
	case o.Workers < 1:
		return fmt.Errorf("workers must be at least 1, got %d", o.Workers)
	case o.Listen != "" && o.Hz < 1:
		return fmt.Errorf("hz must be at least 1, got %d", o.Hz)
	}

	return nil
}

func (o options) tick() time.Duration {
	return time.Second / time.Duration(o.Hz)
}

// envName maps a flag to its environment variable, log-every becomes CLOTH_LOG_EVERY
func envName(flagName string) string {
	return "CLOTH_" + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}

func getEnvVariable(v string) (string, error) {
	if v == "" {
		return "", fmt.Errorf("input param empty")
	}
	b := os.Getenv(v)
	if b == "" {
		return "", fmt.Errorf("failed to get variable for %s", v)
	}

	return b, nil
}

// loadEnv reads an optional dotenv file, variables already set in the process win
func loadEnv(path string) {
	if path == "" {
		return
	}
	if err := godotenv.Load(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("env %s: %v", path, err)
		}
		return
	}

	log.Printf("loaded environment from %s", path)
}

// parseOptions resolves every option from, by priority, the command line,
// the environment (after loading the dotenv file), then the defaults.
func parseOptions(args []string) (options, error) {
	o := defaultOptions()

	fs := flag.NewFlagSet("clothsim", flag.ContinueOnError)
	env := fs.String("env", ".env", "dotenv file providing CLOTH_* variables")
	o.register(fs)
	if err := fs.Parse(args); err != nil {
		return o, err
	}

	loadEnv(*env)

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	var errs []error
	fs.VisitAll(func(f *flag.Flag) {
		if set[f.Name] || f.Name == "env" {
			return
		}
		v, err := getEnvVariable(envName(f.Name))
		if err != nil {
			return
		}
		if err := fs.Set(f.Name, v); err != nil {
			errs = append(errs, fmt.Errorf("%s=%q: %w", envName(f.Name), v, err))
		}
	})
	if err := errors.Join(errs...); err != nil {
		return o, err
	}

	return o, o.validate()
}
