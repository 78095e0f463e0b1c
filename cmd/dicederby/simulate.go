package main

import (
	"context"
	"fmt"
	"time"

	"github.com/oddsline/dicederby/cmd/dicederby/shared"
	"github.com/oddsline/dicederby/internal/race"
	"github.com/oddsline/dicederby/internal/roster"
	"github.com/oddsline/dicederby/internal/simulator"
)

// SimulateCmd runs a batch of race trials.
type SimulateCmd struct {
	Config   string `kong:"default='race.hcl',help='Roster configuration file (HCL); missing file uses the reference roster'"`
	Trials   int    `kong:"default='0',help='Number of trials (0 uses the config value)'"`
	Seed     int64  `kong:"default='0',help='RNG seed (0 for a time-based seed)'"`
	Workers  int    `kong:"default='1',help='Parallel trial workers'"`
	MaxTurns int    `kong:"default='10000',help='Per-trial turn safety bound'"`
	Output   string `kong:"short='o',help='Write a JSON results summary to this file'"`
	Verbose  bool   `kong:"short='v',help='Enable debug logging'"`
}

func (c *SimulateCmd) Run() error {
	logger := shared.SetupLogger(c.Verbose)

	config, err := roster.Load(c.Config)
	if err != nil {
		return err
	}

	trials := config.Race.Trials
	if c.Trials > 0 {
		trials = c.Trials
	}
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	registry := race.NewRegistry()

	// Construct the roster once up front so configuration errors surface
	// before the simulator starts.
	if _, err := roster.Build(registry, config); err != nil {
		return err
	}

	logger.Info("starting simulation",
		"trials", trials,
		"board_length", config.Race.BoardLength,
		"competitors", len(config.Competitors),
		"seed", seed,
		"workers", c.Workers)

	sim := simulator.New(simulator.Config{
		Trials:      trials,
		Seed:        seed,
		BoardLength: config.Race.BoardLength,
		Workers:     c.Workers,
		MaxTurns:    c.MaxTurns,
		Logger:      logger,
	}, func() ([]*race.Competitor, error) {
		return roster.Build(registry, config)
	})

	result, err := sim.Run(context.Background())
	if err != nil {
		return err
	}

	fmt.Println(renderReport(config, result, seed))

	if c.Output != "" {
		if err := writeResults(c.Output, config, result, seed); err != nil {
			return err
		}
		logger.Info("wrote results summary", "file", c.Output)
	}
	return nil
}
