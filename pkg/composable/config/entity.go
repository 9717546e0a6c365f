package config

import (
	"fmt"

	"github.com/randalmurphal/composable/pkg/composable"
	"github.com/randalmurphal/composable/pkg/composable/decorate"
	"github.com/randalmurphal/composable/pkg/composable/registry"
)

// SlotDecl declares one behavior slot in an entity spec.
type SlotDecl struct {
	// Name is the slot name.
	Name string

	// Policy is "defaulted" or "required".
	Policy string

	// Default names the behavior (looked up in the behavior registry)
	// initially bound to a defaulted slot. Ignored for required slots.
	Default string
}

// LayerDecl declares one decorator layer in an entity spec.
// Layers apply in declaration order, first layer innermost.
type LayerDecl struct {
	// Delta is the layer's cost contribution.
	Delta int64

	// Fragment is the layer's description contribution.
	Fragment string
}

// EntityDecl is a declarative entity definition: a base entity with slot
// declarations plus optional decorator layers.
type EntityDecl struct {
	Description string
	Cost        int64
	Slots       []SlotDecl
	Layers      []LayerDecl
}

// EntityFromConfig reads an EntityDecl from a decoded Config.
// Slots and layers are read from the "slots" and "layers" sections; a
// slot entry without a name fails.
func EntityFromConfig(cfg Config) (EntityDecl, error) {
	d := EntityDecl{
		Description: cfg.String("description", ""),
		Cost:        cfg.Int64("cost", 0),
	}
	for _, s := range cfg.Sections("slots") {
		name := s.String("name", "")
		if name == "" {
			return EntityDecl{}, fmt.Errorf("entity spec: slot declaration missing name")
		}
		d.Slots = append(d.Slots, SlotDecl{
			Name:    name,
			Policy:  s.String("policy", ""),
			Default: s.String("default", ""),
		})
	}
	for _, l := range cfg.Sections("layers") {
		d.Layers = append(d.Layers, LayerDecl{
			Delta:    l.Int64("delta", 0),
			Fragment: l.String("fragment", ""),
		})
	}
	return d, nil
}

// ParseEntity decodes an EntityDecl from YAML.
func ParseEntity(data []byte) (EntityDecl, error) {
	cfg, err := FromYAML(data)
	if err != nil {
		return EntityDecl{}, fmt.Errorf("parse entity spec: %w", err)
	}
	return EntityFromConfig(cfg)
}

// ParseEntityFile decodes an EntityDecl from a YAML or JSON file.
// Format detection follows FromFile.
func ParseEntityFile(path string) (EntityDecl, error) {
	cfg, err := FromFile(path)
	if err != nil {
		return EntityDecl{}, fmt.Errorf("load entity spec: %w", err)
	}
	return EntityFromConfig(cfg)
}

// Build constructs the declared entity. Defaulted slots resolve their
// initial behavior by name from behaviors; a missing name fails with
// composable.ErrUnknownKey. Declared layers wrap the base entity in
// order via decorate.Stack.
//
// Options pass through to composable.NewEntity, so the built entity can
// be attached to a hub or logger.
func (d EntityDecl) Build(behaviors *registry.Registry[string, composable.Behavior], opts ...composable.EntityOption) (composable.Entity, error) {
	specs := make([]composable.SlotSpec, 0, len(d.Slots))
	for _, s := range d.Slots {
		switch s.Policy {
		case "defaulted", "":
			if s.Default == "" {
				return nil, fmt.Errorf("slot %q: defaulted slot needs a default behavior", s.Name)
			}
			b, ok := behaviors.Get(s.Default)
			if !ok {
				return nil, fmt.Errorf("slot %q: default behavior %q: %w", s.Name, s.Default, composable.ErrUnknownKey)
			}
			specs = append(specs, composable.Defaulted(s.Name, b))
		case "required":
			specs = append(specs, composable.Required(s.Name))
		default:
			return nil, fmt.Errorf("slot %q: unknown policy %q", s.Name, s.Policy)
		}
	}

	base := composable.NewEntity(d.Description, d.Cost, specs, opts...)
	if len(d.Layers) == 0 {
		return base, nil
	}

	contribs := make([]decorate.Contribution, len(d.Layers))
	for i, l := range d.Layers {
		contribs[i] = decorate.Contribution{Delta: l.Delta, Fragment: l.Fragment}
	}
	return decorate.Stack(base, contribs...)
}
