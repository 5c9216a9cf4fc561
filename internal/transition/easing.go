package transition

import (
	"math"
	"sync"

	"github.com/charmbracelet/harmonica"
)

// Easing names an easing curve. The zero value is linear.
type Easing string

const (
	Linear         Easing = "linear"
	EaseIn         Easing = "easeIn"
	EaseOut        Easing = "easeOut"
	EaseInOut      Easing = "easeInOut"
	EaseInCubic    Easing = "easeInCubic"
	EaseOutCubic   Easing = "easeOutCubic"
	EaseInOutCubic Easing = "easeInOutCubic"
	EaseInBack     Easing = "easeInBack"
	EaseOutBack    Easing = "easeOutBack"
	EaseInOutBack  Easing = "easeInOutBack"
	EaseOutElastic Easing = "easeOutElastic"
	EaseOutBounce  Easing = "easeOutBounce"
	Spring         Easing = "spring"
)

// Easings lists every known curve in display order.
var Easings = []Easing{
	Linear, EaseIn, EaseOut, EaseInOut,
	EaseInCubic, EaseOutCubic, EaseInOutCubic,
	EaseInBack, EaseOutBack, EaseInOutBack,
	EaseOutElastic, EaseOutBounce, Spring,
}

// ParseEasing maps a JSON name to an Easing. Unknown names fall back to
// Linear; the second result reports whether name was recognized.
func ParseEasing(name string) (Easing, bool) {
	for _, e := range Easings {
		if string(e) == name {
			return e, true
		}
	}
	return Linear, false
}

// Apply maps raw progress t in [0,1] through the curve. Apply(0) is 0 and
// Apply(1) is 1 for every curve; Back, Elastic and Spring overshoot between.
func (e Easing) Apply(t float64) float64 {
	switch e {
	case EaseIn:
		return t * t

	case EaseOut:
		return t * (2 - t)

	case EaseInOut:
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t

	case EaseInCubic:
		return t * t * t

	case EaseOutCubic:
		t2 := 1 - t
		return 1 - t2*t2*t2

	case EaseInOutCubic:
		if t < 0.5 {
			return 4 * t * t * t
		}
		t2 := -2*t + 2
		return 1 - t2*t2*t2/2

	case EaseInBack:
		c1 := 1.70158
		c3 := c1 + 1
		return c3*t*t*t - c1*t*t

	case EaseOutBack:
		c1 := 1.70158
		c3 := c1 + 1
		t2 := t - 1
		return 1 + c3*t2*t2*t2 + c1*t2*t2

	case EaseInOutBack:
		c1 := 1.70158
		c2 := c1 * 1.525
		if t < 0.5 {
			return (math.Pow(2*t, 2) * ((c2+1)*2*t - c2)) / 2
		}
		return (math.Pow(2*t-2, 2)*((c2+1)*(t*2-2)+c2) + 2) / 2

	case EaseOutElastic:
		if t == 0 || t == 1 {
			return t
		}
		c4 := (2 * math.Pi) / 3
		return math.Pow(2, -10*t)*math.Sin((t*10-0.75)*c4) + 1

	case EaseOutBounce:
		return bounceOut(t)

	case Spring:
		return springCurve(t)

	default: // linear
		return t
	}
}

// bounceOut is the standard 4-segment parabolic bounce curve.
func bounceOut(t float64) float64 {
	n1 := 7.5625
	d1 := 2.75
	if t < 1/d1 {
		return n1 * t * t
	} else if t < 2/d1 {
		t -= 1.5 / d1
		return n1*t*t + 0.75
	} else if t < 2.5/d1 {
		t -= 2.25 / d1
		return n1*t*t + 0.9375
	} else {
		t -= 2.625 / d1
		return n1*t*t + 0.984375
	}
}

// Spring curve parameters. The spring is simulated once from 0 toward 1 and
// the samples are rescaled so the last one is exactly 1.
const (
	springSteps     = 120
	springFrequency = 6.0
	springDamping   = 0.6
)

var (
	springOnce  sync.Once
	springTable []float64
)

func buildSpringTable() {
	spring := harmonica.NewSpring(harmonica.FPS(springSteps), springFrequency, springDamping)
	table := make([]float64, springSteps+1)
	var pos, vel float64
	for i := 1; i <= springSteps; i++ {
		pos, vel = spring.Update(pos, vel, 1)
		table[i] = pos
	}
	if end := table[springSteps]; end != 0 {
		for i := range table {
			table[i] /= end
		}
	}
	springTable = table
}

func springCurve(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	springOnce.Do(buildSpringTable)
	f := t * springSteps
	i := int(f)
	frac := f - float64(i)
	return springTable[i] + (springTable[i+1]-springTable[i])*frac
}
