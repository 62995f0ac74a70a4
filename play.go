package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/robmorgan/liftoff/journey"
	"github.com/robmorgan/liftoff/scrubber"
	"github.com/robmorgan/liftoff/track"
)

func newPlayCommand(ctx *commandContext) *cobra.Command {
	var headless bool
	var step float64

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Scrub through the journey in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			log := ctx.log()

			rec := track.NewRecorder()
			sounds := track.Sounds{rec}
			synth := newSynth(cfg, log)
			var muter scrubber.Muter
			if synth != nil {
				sounds = append(sounds, synth)
				muter = synth
			}

			page := scrubber.NewPage(cfg.PageHeight, journey.DefaultViewport.Height)
			seq := newSequencer(cfg, page)
			if err := journey.Install(seq, journeyDeps(cfg, rec, sounds)); err != nil {
				return err
			}

			if headless || !isTerminal(os.Stdout) {
				return sweep(seq, page, rec, step, log)
			}

			_, err = tea.NewProgram(scrubber.New(seq, page, rec, muter, cfg.FPS)).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&headless, "headless", false, "Sweep the page once and log events instead of opening the scrubber")
	cmd.Flags().Float64Var(&step, "step", 0.01, "Progress step of a headless sweep")
	return cmd
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type ticker interface {
	Tick() track.Frame
}

// sweep scrolls from the top of the page to the bottom and logs every sound and label change.
func sweep(seq ticker, page *scrubber.Page, rec *track.Recorder, step float64, log logrus.FieldLogger) error {
	if step <= 0 || step > 1 {
		step = 0.01
	}
	_, extent := page.ScrollPosition()

	steps := int(1/step + 0.5)
	for i := 0; i <= steps; i++ {
		page.ScrollTo(extent * float64(i) / float64(steps))
		f := seq.Tick()

		writes, triggers := rec.Drain()
		for _, w := range writes {
			if w.Key == track.KeyPhase || w.Key == track.KeyLabel {
				log.WithFields(logrus.Fields{"progress": f.Progress, "track": w.TrackID}).Info(w.Value)
			}
		}
		for _, s := range triggers {
			log.WithFields(logrus.Fields{"progress": f.Progress, "sound": s}).Info("Sound triggered")
		}
	}
	return nil
}
