package umbra

import (
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/umbralabs/umbra/shadow"
)

// Scene is the on-disk description of a widget hierarchy plus the
// constraints to lay it out under. It is what the CLI (and tests)
// load from TOML.
type Scene struct {
	// Width and Height bound the root. Zero means unconstrained in
	// that axis.
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`

	// MinWidth and MinHeight are the minimum constraints pushed onto
	// the root before solving.
	MinWidth  float64 `toml:"min_width"`
	MinHeight float64 `toml:"min_height"`

	// Direction is "ltr" or "rtl"; empty means inherit.
	Direction string `toml:"direction"`

	Root Widget `toml:"root"`
}

// LoadScene reads and decodes a scene TOML file.
func LoadScene(path string) (Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, errors.Wrap(err, "read scene")
	}
	var s Scene
	if err := toml.Unmarshal(data, &s); err != nil {
		return Scene{}, errors.Wrapf(err, "parse scene %s", path)
	}
	if s.Root.Kind == "" {
		return Scene{}, errors.Errorf("scene %s has no root widget", path)
	}
	return s, nil
}

// LayoutDirection maps the scene's direction string onto the shadow
// enum, defaulting to inherit.
func (s Scene) LayoutDirection() shadow.LayoutDirection {
	switch s.Direction {
	case "ltr":
		return shadow.DirectionLTR
	case "rtl":
		return shadow.DirectionRTL
	default:
		return shadow.DirectionInherit
	}
}

// MaxSize returns the scene's maximum constraints, with zero mapped to
// an unconstrained axis.
func (s Scene) MaxSize() shadow.Size {
	max := shadow.Size{Width: shadow.Undefined, Height: shadow.Undefined}
	if s.Width > 0 {
		max.Width = float32(s.Width)
	}
	if s.Height > 0 {
		max.Height = float32(s.Height)
	}
	return max
}

// MinSize returns the scene's minimum constraints.
func (s Scene) MinSize() shadow.Size {
	return shadow.Size{Width: float32(s.MinWidth), Height: float32(s.MinHeight)}
}
