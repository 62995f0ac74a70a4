package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFanout(t *testing.T) {
	t.Parallel()

	a, b := NewRecorder(), NewRecorder()

	Renderers{a, b}.SetOutput("earth", KeyOpacity, 0.5)
	Sounds{a, b}.Trigger("transmission")
	Sounds{a, b}.SetContinuous("ambient", 0.25)

	for _, r := range []*Recorder{a, b} {
		v, ok := r.Value("earth", KeyOpacity)
		assert.True(t, ok)
		assert.Equal(t, 0.5, v)
		assert.Equal(t, 0.25, r.Level("ambient"))

		_, triggers := r.Drain()
		assert.Equal(t, []string{"transmission"}, triggers)
	}
}
