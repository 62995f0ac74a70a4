package effect

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fogleman/ease"
)

// Curve maps normalized time in [0,1] onto an eased value. Curves are expected to return 0 at
// 0 and 1 at 1; overshooting curves like back may leave [0,1] in between.
type Curve = ease.Function

// Linear is the default curve.
var Linear Curve = ease.Linear

// ErrUnknownCurve is returned by Lookup for a name that is not registered.
var ErrUnknownCurve = fmt.Errorf("unknown easing curve")

// curves is keyed by timeline-style names, e.g. "power2.out".
var curves = map[string]Curve{
	"none":   ease.Linear,
	"linear": ease.Linear,

	"power1.in":    ease.InQuad,
	"power1.out":   ease.OutQuad,
	"power1.inOut": ease.InOutQuad,

	"power2.in":    ease.InCubic,
	"power2.out":   ease.OutCubic,
	"power2.inOut": ease.InOutCubic,

	"power3.in":    ease.InQuart,
	"power3.out":   ease.OutQuart,
	"power3.inOut": ease.InOutQuart,

	"power4.in":    ease.InQuint,
	"power4.out":   ease.OutQuint,
	"power4.inOut": ease.InOutQuint,

	"sine.in":    ease.InSine,
	"sine.out":   ease.OutSine,
	"sine.inOut": ease.InOutSine,

	"expo.in":    ease.InExpo,
	"expo.out":   ease.OutExpo,
	"expo.inOut": ease.InOutExpo,

	"back.in":    ease.InBack,
	"back.out":   ease.OutBack,
	"back.inOut": ease.InOutBack,
}

// Lookup returns the curve registered under name. Names are case-insensitive and an empty
// name is linear.
func Lookup(name string) (Curve, error) {
	if name == "" {
		return Linear, nil
	}
	for k, c := range curves {
		if strings.EqualFold(k, name) {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCurve, name)
}

// MustLookup is Lookup for names known at compile time.
func MustLookup(name string) Curve {
	c, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return c
}

// Names lists the registered curve names in order.
func Names() []string {
	out := make([]string, 0, len(curves))
	for k := range curves {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Invert flips c vertically, returning 1-c(t). A rising curve becomes a falling one.
func Invert(c Curve) Curve {
	if c == nil {
		c = Linear
	}
	return func(t float64) float64 {
		return 1 - c(t)
	}
}
