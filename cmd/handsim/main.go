// Package main runs the hand interaction core against a procedural hand rig, either as an
// interactive terminal simulator or as a scripted headless loop.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Carmen-Shannon/oxy-hands/common"
	"github.com/Carmen-Shannon/oxy-hands/config"
)

func main() {
	var headless bool
	var duration time.Duration
	var logPath string

	flag.BoolVar(&headless, "headless", false, "run a scripted grab without the terminal UI")
	flag.DurationVar(&duration, "duration", 3*time.Second, "headless run length")
	flag.StringVar(&logPath, "log", "", "log output path (default: config log.output, or handsim.log for the UI)")
	flag.Parse()

	if err := run(headless, duration, logPath); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}

func run(headless bool, duration time.Duration, logPath string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	switch {
	case logPath != "":
		cfg.Log.Output = logPath
	case !headless && (cfg.Log.Output == "stderr" || cfg.Log.Output == "stdout"):
		// the UI owns the terminal
		cfg.Log.Output = "handsim.log"
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	s, err := newSim(cfg, logger)
	if err != nil {
		return fmt.Errorf("build scene: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if headless {
		ctx, cancel := context.WithTimeout(ctx, duration)
		defer cancel()
		return runHeadless(ctx, s, logger)
	}

	frame := time.Duration(float64(time.Second) / cfg.Engine.TickRate)
	p := tea.NewProgram(newModel(s, frame), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

// runHeadless drives the engine's own loop through a fixed script: the right hand reaches the
// mug, grips it, curls its fingers, then lets go.
func runHeadless(ctx context.Context, s *sim, logger *zap.Logger) error {
	mug := s.items[0].x
	script := map[uint64]func(){
		1:  func() { s.toggleNear(common.HandRight, mug) },
		10: func() { s.toggleButton(common.HandRight, common.ButtonGrip) },
		30: func() { s.setCurls(common.HandRight, 1) },
		90: func() { s.toggleButton(common.HandRight, common.ButtonGrip) },
	}

	err := s.eng.Run(ctx, func(float32) {
		if act, ok := script[s.eng.Frames()]; ok {
			act()
		}
		for _, e := range s.eng.Events() {
			logger.Info("interaction", zap.String("event", s.describe(e)))
		}
	})
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
