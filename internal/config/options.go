package config

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/spf13/cast"

	"circprog/internal/colorutil"
	"circprog/internal/easing"
)

// optionSetter applies one raw option value to a configuration.
type optionSetter func(c *Config, v any) error

// options lists the recognized option keys, lowercased.
var options = map[string]optionSetter{
	"padding": func(c *Config, v any) (err error) {
		c.Padding, err = cast.ToIntE(v)
		return err
	},
	"initialangle": func(c *Config, v any) (err error) {
		c.InitialAngle, err = cast.ToFloat64E(v)
		return err
	},
	"maxsweepangle": func(c *Config, v any) (err error) {
		c.MaxSweepAngle, err = cast.ToFloat64E(v)
		return err
	},
	"minsweepangle": func(c *Config, v any) (err error) {
		c.MinSweepAngle, err = cast.ToFloat64E(v)
		return err
	},
	"strokesize": func(c *Config, v any) (err error) {
		c.StrokeSize, err = cast.ToIntE(v)
		return err
	},
	"strokecolors": func(c *Config, v any) (err error) {
		c.StrokeColors, err = toColors(v)
		return err
	},
	"reverse": func(c *Config, v any) (err error) {
		c.Reverse, err = cast.ToBoolE(v)
		return err
	},
	"rotateduration": func(c *Config, v any) (err error) {
		c.RotateDuration, err = toMillis(v)
		return err
	},
	"transformduration": func(c *Config, v any) (err error) {
		c.TransformDuration, err = toMillis(v)
		return err
	},
	"keepduration": func(c *Config, v any) (err error) {
		c.KeepDuration, err = toMillis(v)
		return err
	},
	"transformcurve": func(c *Config, v any) (err error) {
		c.TransformCurve, err = toCurve(v)
		return err
	},
	"mode": func(c *Config, v any) (err error) {
		c.Mode, err = toMode(v)
		return err
	},
	"inanimduration": func(c *Config, v any) (err error) {
		c.InDuration, err = toMillis(v)
		return err
	},
	"insteppercent": func(c *Config, v any) (err error) {
		c.InStepPercent, err = cast.ToFloat64E(v)
		return err
	},
	"instepcolors": func(c *Config, v any) (err error) {
		c.InStepColors, err = toColors(v)
		return err
	},
	"outanimduration": func(c *Config, v any) (err error) {
		c.OutDuration, err = toMillis(v)
		return err
	},
	"keepdeterminateprogress": func(c *Config, v any) (err error) {
		c.KeepDeterminateProgress, err = cast.ToBoolE(v)
		return err
	},
	"automaticallyrestart": func(c *Config, v any) (err error) {
		c.AutomaticallyRestart, err = cast.ToBoolE(v)
		return err
	},
	"inverted": func(c *Config, v any) (err error) {
		c.Inverted, err = cast.ToBoolE(v)
		return err
	},
	"circlebackgroundcolor": func(c *Config, v any) (err error) {
		c.CircleBackgroundColor, err = toColor(v)
		return err
	},
	"circleinsidecolor": func(c *Config, v any) (err error) {
		c.CircleInsideColor, err = toColor(v)
		return err
	},
}

// FromOptions builds a validated configuration from an option map.
// Keys are matched case-insensitively and ignore '_' and '-', so both
// "maxSweepAngle" and "max_sweep_angle" are accepted. Options that are
// absent keep their default value; unknown keys are rejected.
func FromOptions(opts map[string]any) (*Config, error) {
	cfg := Default()
	if err := cfg.Apply(opts); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply overlays opts onto c without validating the result.
func (c *Config) Apply(opts map[string]any) error {
	for key, value := range opts {
		set, ok := options[normalizeKey(key)]
		if !ok {
			return invalid(key, "is not a recognized option")
		}
		if err := set(c, value); err != nil {
			return invalid(key, "has an unusable value: %v", err)
		}
	}
	return nil
}

func normalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	return strings.NewReplacer("_", "", "-", "").Replace(key)
}

// toMillis reads a duration. Plain numbers are milliseconds; strings may
// carry a unit ("1.5s", "400ms").
func toMillis(v any) (time.Duration, error) {
	switch val := v.(type) {
	case time.Duration:
		return val, nil
	case string:
		if strings.IndexFunc(val, isUnitRune) >= 0 {
			return time.ParseDuration(strings.TrimSpace(val))
		}
	}

	ms, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, err
	}
	return time.Duration(ms * float64(time.Millisecond)), nil
}

func isUnitRune(r rune) bool {
	return r >= 'a' && r <= 'z' || r == 'µ'
}

func toColor(v any) (color.NRGBA, error) {
	switch val := v.(type) {
	case color.NRGBA:
		return val, nil
	case string:
		return colorutil.Parse(val)
	}

	packed, err := cast.ToUint32E(v)
	if err != nil {
		return color.NRGBA{}, err
	}
	return colorutil.FromARGB(packed), nil
}

func toColors(v any) ([]color.NRGBA, error) {
	switch val := v.(type) {
	case []color.NRGBA:
		return append([]color.NRGBA(nil), val...), nil
	case []string:
		return toColors(strings.Join(val, ","))
	case string:
		parts := strings.Split(val, ",")
		colors := make([]color.NRGBA, 0, len(parts))
		for _, p := range parts {
			if strings.TrimSpace(p) == "" {
				continue
			}
			c, err := colorutil.Parse(p)
			if err != nil {
				return nil, err
			}
			colors = append(colors, c)
		}
		return colors, nil
	}

	items, err := cast.ToSliceE(v)
	if err != nil {
		// A single packed color.
		c, cerr := toColor(v)
		if cerr != nil {
			return nil, err
		}
		return []color.NRGBA{c}, nil
	}

	colors := make([]color.NRGBA, 0, len(items))
	for i, item := range items {
		c, err := toColor(item)
		if err != nil {
			return nil, fmt.Errorf("color %d: %w", i, err)
		}
		colors = append(colors, c)
	}
	return colors, nil
}

func toCurve(v any) (easing.Curve, error) {
	switch val := v.(type) {
	case easing.Curve:
		return val, nil
	case func(float64) float64:
		return val, nil
	case string:
		return easing.Lookup(val)
	default:
		return nil, fmt.Errorf("unsupported curve type %T", v)
	}
}

func toMode(v any) (Mode, error) {
	switch val := v.(type) {
	case Mode:
		return val, nil
	case string:
		return ParseMode(val)
	default:
		return 0, fmt.Errorf("unsupported mode type %T", v)
	}
}
