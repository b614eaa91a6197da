// Package loader provides the plugin-like feature loading system.
//
// Each feature implements the Feature interface, which defines its lifecycle
// hooks and route registration logic.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// Features that own tables also implement Modeler so the migrate command can
// collect their models.
//
// # Manager
//
// The Manager struct holds the registry of available features. It handles:
//   - Registration of features via Register()
//   - Loading of enabled features via LoadAll()
//   - Collecting persisted models via Models()
package loader
