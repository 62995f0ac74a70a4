package sequencer

import "github.com/robmorgan/liftoff/track"

// owners is the per-tick resource table. Only the sequencer writes it; tracks see it through
// the read-only track.Owners interface.
type owners struct {
	table map[track.Resource]string
}

func newOwners() *owners {
	return &owners{table: map[track.Resource]string{}}
}

// claim gives r to id unless an earlier track already holds it this tick.
func (o *owners) claim(r track.Resource, id string) bool {
	if r == "" {
		return false
	}
	if _, taken := o.table[r]; taken {
		return false
	}
	o.table[r] = id
	return true
}

func (o *owners) reset() {
	for k := range o.table {
		delete(o.table, k)
	}
}

// Owner implements track.Owners.
func (o *owners) Owner(r track.Resource) (string, bool) {
	id, ok := o.table[r]
	return id, ok
}
