// Package easing provides the interpolation curves used to shape the sweep
// angle while the arc stretches and shrinks.
package easing

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Curve maps an input fraction in [0, 1] to an output fraction.
// Curves are expected to be monotonic with Curve(0) == 0 and Curve(1) == 1.
type Curve func(t float64) float64

// Linear returns t unchanged.
func Linear(t float64) float64 {
	return t
}

// Decelerate starts fast and slows down towards the end.
func Decelerate(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// Accelerate starts slow and speeds up towards the end.
func Accelerate(t float64) float64 {
	return t * t
}

// AccelerateDecelerate starts and ends slowly with a faster middle section.
func AccelerateDecelerate(t float64) float64 {
	return math.Cos((t+1)*math.Pi)/2 + 0.5
}

// DecelerateBy returns a decelerating curve with the given factor.
// A factor of 1 is equivalent to Decelerate.
func DecelerateBy(factor float64) Curve {
	if factor == 1 {
		return Decelerate
	}
	return func(t float64) float64 {
		return 1 - math.Pow(1-t, 2*factor)
	}
}

// named maps curve names, as used in configuration files, to curves.
var named = map[string]Curve{
	"linear":                Linear,
	"decelerate":            Decelerate,
	"accelerate":            Accelerate,
	"accelerate_decelerate": AccelerateDecelerate,
}

// Lookup returns the curve registered under name. Names are case-insensitive
// and accept '-' in place of '_'.
func Lookup(name string) (Curve, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	if c, ok := named[key]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("unknown curve %q: must be one of %v", name, Names())
}

// Names returns the registered curve names in sorted order.
func Names() []string {
	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
