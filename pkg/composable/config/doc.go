// Package config provides configuration loading and declarative entity
// wiring.
//
// Config wraps a decoded map[string]any with typed accessors and loads
// from YAML or JSON. EntityDecl goes further: it declares a base entity,
// its behavior slots, and its decorator layers in data. Entity specs are
// read through Config (ParseEntityFile loads via FromFile, then
// EntityFromConfig walks the sections), and Build turns the declaration
// into a live entity using a behavior registry for slot defaults.
//
//	description: Margherita
//	cost: 100
//	slots:
//	  - name: bake
//	    policy: defaulted
//	    default: bake.stone
//	layers:
//	  - { delta: 40, fragment: Fresh Tomato }
//	  - { delta: 70, fragment: Paneer }
//
//	decl, err := config.ParseEntityFile("margherita.yaml")
//	entity, err := decl.Build(behaviors)
//	entity.Cost()     // 210
//	entity.Describe() // "Margherita, Fresh Tomato, Paneer"
package config
