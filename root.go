package main

import (
	"fmt"
	"sync"

	"github.com/faiface/beep"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/robmorgan/liftoff/config"
	"github.com/robmorgan/liftoff/journey"
	"github.com/robmorgan/liftoff/logger"
	"github.com/robmorgan/liftoff/progress"
	"github.com/robmorgan/liftoff/sequencer"
	"github.com/robmorgan/liftoff/sound"
	"github.com/robmorgan/liftoff/track"
)

type commandContext struct {
	configPath string
	envFiles   []string
	logLevel   string

	configOnce sync.Once
	config     config.Config
	configErr  error
}

func (c *commandContext) ensureConfig() (config.Config, error) {
	c.configOnce.Do(func() {
		cfg, err := config.Load(c.configPath)
		if err != nil {
			c.configErr = err
			return
		}
		lookup, err := config.EnvLookup(c.envFiles...)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.ApplyEnv(lookup); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) log() *logrus.Logger {
	return logger.GetProjectLogger()
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "liftoff",
		Short:         "Scroll-driven space journey sequencer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if ctx.logLevel != "" {
				lvl, err := logrus.ParseLevel(ctx.logLevel)
				if err != nil {
					return fmt.Errorf("invalid log level %q: %w", ctx.logLevel, err)
				}
				ctx.log().SetLevel(lvl)
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&ctx.configPath, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringSliceVar(&ctx.envFiles, "env-file", []string{".env"}, "Dotenv files to read")
	rootCmd.PersistentFlags().StringVar(&ctx.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newPlayCommand(ctx))
	rootCmd.AddCommand(newBridgeCommand(ctx))
	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newDumpCommand(ctx))

	return rootCmd
}

// newSequencer creates a sequencer reading scroll positions from r.
func newSequencer(cfg config.Config, r progress.Reader, opts ...sequencer.Option) *sequencer.Sequencer {
	src := progress.NewSource(r, progress.WithDecay(cfg.VelocityDecay))
	return sequencer.New(src, append([]sequencer.Option{sequencer.WithFPS(cfg.FPS)}, opts...)...)
}

func journeyDeps(cfg config.Config, r track.Renderer, s track.Sound) journey.Deps {
	return journey.Deps{
		Renderer:   r,
		Sound:      s,
		Viewport:   journey.DefaultViewport,
		Warp:       track.Warp{FullSpeed: cfg.FullWarpSpeed, FPS: cfg.FPS},
		Hysteresis: cfg.Hysteresis,
	}
}

// newSynth opens the audio device. It returns nil when sound is disabled or unavailable.
func newSynth(cfg config.Config, log *logrus.Logger) *sound.Synth {
	if !cfg.Sound.Enabled {
		return nil
	}

	sr := beep.SampleRate(cfg.Sound.SampleRate)
	sp, err := sound.InitSpeaker(sr)
	if err != nil {
		log.WithError(err).Warn("Could not open audio device, continuing without sound")
		return nil
	}

	opts := []sound.Option{sound.WithLogger(log)}
	for id, d := range journey.WhooshDelays() {
		opts = append(opts, sound.WithDelay(id, d))
	}
	return sound.NewSynth(sr, sp, opts...)
}
