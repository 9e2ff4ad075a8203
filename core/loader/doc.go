// Package loader provides the plugin-like feature loading system.
//
// Each feature (maintenance, inventory, integrity) implements Feature and
// registers its own routes. The Manager keeps the registry and loads every
// enabled feature into the Fiber app at startup.
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
package loader
