// Package loader provides the feature loading system of the API server.
//
// Each feature implements the Feature interface and registers its routes on
// the shared router:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps the registry. Register adds a feature and LoadAll loads
// the enabled ones in registration order.
package loader
