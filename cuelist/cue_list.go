package cuelist

import (
	"github.com/robmorgan/liftoff/logger"
	"github.com/sirupsen/logrus"
)

// CueList evaluates an ordered set of cues against the same progress sample.
type CueList struct {
	Name string

	// tracking
	State State

	gates []*Gate
}

// State is the basic properties of the cuelist
type State struct {
	Progress    float64
	Evaluations int
	Fired       int
}

// Result batches the edges of every cue in the list for one sample. Indexes refer to the
// position of the cue in the list.
type Result struct {
	Fired   []int
	Entered []int
	Exited  []int
	// Values holds one entry per cue.
	Values []float64
}

// NewCueList validates cues and creates a gate for each. The first invalid cue is returned as
// an InvalidCueRange.
func NewCueList(cueListName string, cues ...Cue) (*CueList, error) {
	for _, c := range cues {
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}

	gates := make([]*Gate, 0, len(cues))
	for _, c := range cues {
		gates = append(gates, NewGate(c))
	}

	logger := logger.GetProjectLogger()
	logger.WithFields(logrus.Fields{"cue_list": cueListName, "cues": len(cues)}).Debug("Cue list created")

	return &CueList{
		Name:  cueListName,
		gates: gates,
	}, nil
}

// Len is the number of cues.
func (cl *CueList) Len() int {
	return len(cl.gates)
}

// Cues returns the cues in list order.
func (cl *CueList) Cues() []Cue {
	out := make([]Cue, 0, len(cl.gates))
	for _, g := range cl.gates {
		out = append(out, g.Cue())
	}
	return out
}

// Validate re-checks every cue.
func (cl *CueList) Validate() error {
	for _, g := range cl.gates {
		if err := g.Cue().Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Evaluate advances every gate to progress p.
func (cl *CueList) Evaluate(p float64) Result {
	r := Result{Values: make([]float64, len(cl.gates))}

	for i, g := range cl.gates {
		ev := g.Evaluate(p)
		if ev.Fired {
			r.Fired = append(r.Fired, i)
		}
		if ev.Entered {
			r.Entered = append(r.Entered, i)
		}
		if ev.Exited {
			r.Exited = append(r.Exited, i)
		}
		r.Values[i] = ev.Value
	}

	cl.State.Progress = p
	cl.State.Evaluations++
	cl.State.Fired += len(r.Fired)

	return r
}

// Reset returns every gate to its initial state without producing events.
func (cl *CueList) Reset() {
	for _, g := range cl.gates {
		g.Reset()
	}
	cl.State = State{}
}
