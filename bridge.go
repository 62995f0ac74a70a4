package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"

	"github.com/nickysemenza/gola"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/robmorgan/liftoff/fixture"
	"github.com/robmorgan/liftoff/journey"
	"github.com/robmorgan/liftoff/oscbridge"
	"github.com/robmorgan/liftoff/sequencer"
	"github.com/robmorgan/liftoff/track"
)

func newBridgeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "bridge",
		Short: "Drive DMX, OSC and sound outputs from scroll positions received over OSC",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			log := ctx.log()

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			log.Info("Initializing fixture manager...")
			fm, err := fixture.NewManager(cfg)
			if err != nil {
				return err
			}

			out := oscbridge.NewClientOutput(cfg.OSC.TargetHost, cfg.OSC.TargetPort, cfg.OSC.Prefix)
			sounds := track.Sounds{out}
			if synth := newSynth(cfg, log); synth != nil {
				sounds = append(sounds, synth)
			}

			var seq *sequencer.Sequencer
			input := oscbridge.NewScrollInput(cfg.OSC.Prefix, func() {
				log.Info("Journey reset requested")
				seq.Reset()
			})
			seq = newSequencer(cfg, input)
			if err := journey.Install(seq, journeyDeps(cfg, track.Renderers{fm, out}, sounds)); err != nil {
				return err
			}

			wg := sync.WaitGroup{}
			if cfg.OLA.Enabled {
				log.Info("Connecting to OLA...")
				client, err := gola.New(cfg.OLA.Address)
				if err != nil {
					log.WithError(err).Error("Could not connect to OLA")
				} else {
					wg.Add(1)
					go fixture.SendDMXWorker(runCtx, client, cfg.OLA.Tick, fm.GetDMXState(), &wg)
				}
			}

			seq.Start(runCtx)
			err = oscbridge.Serve(runCtx, cfg.OSC.Listen, input)
			seq.Stop()
			wg.Wait()

			accepted, rejected := input.Counts()
			stats := seq.Stats()
			log.WithFields(logrus.Fields{
				"ticks":     stats.Ticks,
				"stale":     stats.Stale,
				"accepted":  accepted,
				"rejected":  rejected,
				"unpatched": len(fm.Unpatched()),
			}).Info("Shutting down liftoff")

			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
