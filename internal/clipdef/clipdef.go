// Package clipdef loads YAML clip definitions: the keyed curves to bake and
// the root/joint curves used for loop analysis.
package clipdef

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/midgard-anim/pkg/curve"
	"github.com/Faultbox/midgard-anim/pkg/denseclip"
	"github.com/Faultbox/midgard-anim/pkg/loopquality"
	"github.com/Faultbox/midgard-anim/pkg/math"
)

// Definition errors.
var (
	ErrUnknownChannelType = errors.New("unknown channel type")
	ErrValueWidth         = errors.New("key value has wrong component count")
	ErrNoKeys             = errors.New("curve has no keys")
)

// Channel types.
const (
	TypeScalar     = "scalar"
	TypeVector3    = "vector3"
	TypeQuaternion = "quaternion"
)

// Definition is a parsed clip file.
type Definition struct {
	Name       string       `yaml:"name"`
	SampleRate float32      `yaml:"sample_rate"` // 0 = use configured rate
	Channels   []ChannelDef `yaml:"channels"`
	Root       RootDef      `yaml:"root"`
	Joints     []JointDef   `yaml:"joints"`
}

// ChannelDef is one curve to bake.
type ChannelDef struct {
	Name string   `yaml:"name"`
	Type string   `yaml:"type"`
	Keys []KeyDef `yaml:"keys"`
}

// RootDef holds the root motion curves.
type RootDef struct {
	Position []KeyDef `yaml:"position"`
	Rotation []KeyDef `yaml:"rotation"`
}

// JointDef is a joint rotation curve with its similarity weight.
type JointDef struct {
	Name     string   `yaml:"name"`
	Weight   *float64 `yaml:"weight"` // nil = 1
	Rotation []KeyDef `yaml:"rotation"`
}

// KeyDef is a keyframe. Value holds 1, 3 or 4 components depending on the curve.
type KeyDef struct {
	Time  float32   `yaml:"time"`
	Value []float32 `yaml:"value"`
}

// Load reads and validates a clip definition file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return def, nil
}

// Parse decodes and validates a clip definition.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, err
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Validate checks channel types and key widths.
func (d *Definition) Validate() error {
	for i, ch := range d.Channels {
		width, ok := typeWidth(ch.Type)
		if !ok {
			return fmt.Errorf("channel %d (%s): %w: %q", i, ch.Name, ErrUnknownChannelType, ch.Type)
		}
		if err := checkKeys(ch.Keys, width); err != nil {
			return fmt.Errorf("channel %d (%s): %w", i, ch.Name, err)
		}
	}

	if len(d.Root.Position) > 0 || len(d.Root.Rotation) > 0 {
		if err := checkKeys(d.Root.Position, 3); err != nil {
			return fmt.Errorf("root position: %w", err)
		}
		if err := checkKeys(d.Root.Rotation, 4); err != nil {
			return fmt.Errorf("root rotation: %w", err)
		}
	}

	for i, j := range d.Joints {
		if err := checkKeys(j.Rotation, 4); err != nil {
			return fmt.Errorf("joint %d (%s): %w", i, j.Name, err)
		}
	}
	return nil
}

func typeWidth(t string) (int, bool) {
	switch t {
	case TypeScalar:
		return 1, true
	case TypeVector3:
		return 3, true
	case TypeQuaternion:
		return 4, true
	}
	return 0, false
}

func checkKeys(keys []KeyDef, width int) error {
	if len(keys) == 0 {
		return ErrNoKeys
	}
	for i, k := range keys {
		if len(k.Value) != width {
			return fmt.Errorf("key %d: %w: got %d, want %d", i, ErrValueWidth, len(k.Value), width)
		}
	}
	return nil
}

// HasRoot reports whether the definition carries root motion for analysis.
func (d *Definition) HasRoot() bool {
	return len(d.Root.Position) > 0 && len(d.Root.Rotation) > 0
}

// BakeChannels converts the channel definitions to bakeable channels, in order.
func (d *Definition) BakeChannels() []denseclip.Channel {
	out := make([]denseclip.Channel, 0, len(d.Channels))
	for _, ch := range d.Channels {
		switch ch.Type {
		case TypeScalar:
			out = append(out, denseclip.ScalarChannel{Curve: scalarKeys(ch.Keys)})
		case TypeVector3:
			out = append(out, denseclip.Vector3Channel{Curve: vector3Keys(ch.Keys)})
		case TypeQuaternion:
			out = append(out, denseclip.QuaternionChannel{Curve: rotationKeys(ch.Keys)})
		}
	}
	return out
}

// Clip builds the analysis clip. It is not evaluable when the definition has
// no root motion.
func (d *Definition) Clip() *loopquality.CurveClip {
	clip := &loopquality.CurveClip{}
	if d.HasRoot() {
		clip.RootPosition = vector3Keys(d.Root.Position)
		clip.RootRotation = rotationKeys(d.Root.Rotation)
	}
	for _, j := range d.Joints {
		clip.Joints = append(clip.Joints, rotationKeys(j.Rotation))
	}
	return clip
}

// Comparer returns a pose comparer weighted by the joint definitions.
func (d *Definition) Comparer() *loopquality.Comparer {
	weights := make([]float64, len(d.Joints))
	for i, j := range d.Joints {
		weights[i] = 1
		if j.Weight != nil {
			weights[i] = *j.Weight
		}
	}
	return &loopquality.Comparer{Weights: weights}
}

// Range returns the time span covered by every key in the definition.
func (d *Definition) Range() (begin, end float32) {
	first := true
	visit := func(keys []KeyDef) {
		for _, k := range keys {
			if first || k.Time < begin {
				begin = k.Time
			}
			if first || k.Time > end {
				end = k.Time
			}
			first = false
		}
	}
	for _, ch := range d.Channels {
		visit(ch.Keys)
	}
	visit(d.Root.Position)
	visit(d.Root.Rotation)
	for _, j := range d.Joints {
		visit(j.Rotation)
	}
	return begin, end
}

func scalarKeys(keys []KeyDef) curve.ScalarKeys {
	out := make(curve.ScalarKeys, len(keys))
	for i, k := range keys {
		out[i] = curve.ScalarKey{Time: k.Time, Value: k.Value[0]}
	}
	curve.SortScalarKeys(out)
	return out
}

func vector3Keys(keys []KeyDef) curve.Vector3Keys {
	out := make(curve.Vector3Keys, len(keys))
	for i, k := range keys {
		out[i] = curve.Vector3Key{Time: k.Time, Value: math.Vec3{X: k.Value[0], Y: k.Value[1], Z: k.Value[2]}}
	}
	curve.SortVector3Keys(out)
	return out
}

func rotationKeys(keys []KeyDef) curve.RotationKeys {
	out := make(curve.RotationKeys, len(keys))
	for i, k := range keys {
		q := math.Quat{X: k.Value[0], Y: k.Value[1], Z: k.Value[2], W: k.Value[3]}
		out[i] = curve.RotationKey{Time: k.Time, Value: q.Normalize()}
	}
	curve.SortRotationKeys(out)
	return out
}
