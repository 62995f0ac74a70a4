package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	testingclock "k8s.io/utils/clock/testing"

	"github.com/robmorgan/liftoff/config"
	"github.com/robmorgan/liftoff/journey"
	"github.com/robmorgan/liftoff/progress"
	"github.com/robmorgan/liftoff/sequencer"
	"github.com/robmorgan/liftoff/track"
)

func newDumpCommand(ctx *commandContext) *cobra.Command {
	var step float64

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the journey's outputs at fixed progress steps",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out, err := renderTimeline(cfg, step)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().Float64Var(&step, "step", 0.05, "Progress step between rows")
	return cmd
}

// dumpPosition is a progress.Reader for an offline sweep.
type dumpPosition struct {
	offset float64
}

func (p *dumpPosition) ScrollPosition() (float64, float64) {
	return p.offset, 1
}

func renderTimeline(cfg config.Config, step float64) (string, error) {
	if step <= 0 || step > 1 {
		return "", fmt.Errorf("step must be in (0,1], got %v", step)
	}

	// A frozen clock keeps the table free of velocity and mission clock noise.
	fc := testingclock.NewFakePassiveClock(time.Unix(0, 0))
	pos := &dumpPosition{}
	rec := track.NewRecorder()
	seq := sequencer.New(progress.NewSource(pos, progress.WithClock(fc)), sequencer.WithFPS(cfg.FPS))
	if err := journey.Install(seq, journeyDeps(cfg, rec, rec)); err != nil {
		return "", err
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Progress", "Phase", "Rocket Y", "Earth", "Moon", "Mars", "Alert", "Panel", "Sounds"})

	owner := func(r track.Resource) string {
		if id, ok := seq.Owner(r); ok {
			return id
		}
		return "-"
	}
	num := func(trackID, key string) string {
		v, ok := rec.Value(trackID, key)
		if !ok {
			return "-"
		}
		return fmt.Sprintf("%.2f", v)
	}

	steps := int(1/step + 0.5)
	for i := 0; i <= steps; i++ {
		pos.offset = float64(i) / float64(steps)
		f := seq.Tick()
		_, triggers := rec.Drain()

		phase, _ := rec.Value("phase", track.KeyPhase)
		tw.AppendRow(table.Row{
			fmt.Sprintf("%.2f", f.Progress),
			phase,
			num("rocket", "y"),
			num("earth", "opacity"),
			num("moon", "opacity"),
			num("mars", "opacity"),
			owner(journey.AlertSlot),
			owner(journey.PanelSlot),
			strings.Join(triggers, " "),
		})
	}

	cols := make([]table.ColumnConfig, 0, 6)
	for _, n := range []int{1, 3, 4, 5, 6} {
		cols = append(cols, table.ColumnConfig{Number: n, Align: text.AlignRight, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(cols)

	return tw.Render(), nil
}
