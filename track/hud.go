package track

import (
	"fmt"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Output keys written by HUD tracks.
const (
	KeyPhase = "phase"
	KeyClock = "clock"
)

// Phase is a label shown while progress is below Below.
type Phase struct {
	Below float64
	Label string
}

// PhaseLabelTrack writes the label of the current phase whenever it changes. Labels are
// upper-cased for the HUD.
type PhaseLabelTrack struct {
	*Base

	renderer Renderer
	phases   []Phase
	final    string
	caser    cases.Caser
	last     outputs
}

// NewPhaseLabelTrack creates a label track. phases must be in increasing order of Below; final
// is shown once progress passes the last phase.
func NewPhaseLabelTrack(id string, r Renderer, phases []Phase, final string) (*PhaseLabelTrack, error) {
	for i := 1; i < len(phases); i++ {
		if phases[i].Below <= phases[i-1].Below {
			return nil, fmt.Errorf("track %s: phase %q must end after %q", id, phases[i].Label, phases[i-1].Label)
		}
	}

	t := &PhaseLabelTrack{
		renderer: r,
		phases:   phases,
		final:    final,
		caser:    cases.Upper(language.English),
		last:     outputs{},
	}

	base, err := NewBase(id, nil, Handlers{OnTick: t.tick})
	if err != nil {
		return nil, err
	}
	t.Base = base
	t.onReset = t.last.clear
	t.onDiscard = t.last.clear

	return t, nil
}

// LabelAt returns the HUD label at progress p.
func (t *PhaseLabelTrack) LabelAt(p float64) string {
	label := t.final
	for _, ph := range t.phases {
		if p < ph.Below {
			label = ph.Label
			break
		}
	}
	return t.caser.String(label)
}

func (t *PhaseLabelTrack) tick(ctx Context) error {
	label := t.LabelAt(ctx.Frame.Progress)
	if t.last.changed(KeyPhase, label) {
		ctx.SetOutput(t.renderer, t.ID(), KeyPhase, label)
	}
	return nil
}

// MissionClockTrack writes the elapsed mission time as "T+ hh:mm:ss".
type MissionClockTrack struct {
	*Base

	renderer Renderer
	last     outputs
}

// NewMissionClockTrack creates a clock track.
func NewMissionClockTrack(id string, r Renderer) (*MissionClockTrack, error) {
	t := &MissionClockTrack{renderer: r, last: outputs{}}

	base, err := NewBase(id, nil, Handlers{OnTick: t.tick})
	if err != nil {
		return nil, err
	}
	t.Base = base
	t.onReset = t.last.clear
	t.onDiscard = t.last.clear

	return t, nil
}

// FormatMissionTime renders d as "T+ hh:mm:ss".
func FormatMissionTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	s := int(d / time.Second)
	return fmt.Sprintf("T+ %02d:%02d:%02d", s/3600, s/60%60, s%60)
}

func (t *MissionClockTrack) tick(ctx Context) error {
	v := FormatMissionTime(ctx.Frame.Elapsed)
	if t.last.changed(KeyClock, v) {
		ctx.SetOutput(t.renderer, t.ID(), KeyClock, v)
	}
	return nil
}
