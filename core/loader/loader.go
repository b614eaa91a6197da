package loader

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Feature is a self-contained module that mounts its own routes.
type Feature interface {
	Name() string
	IsEnabled() bool
	Load(app fiber.Router) error
}

// Modeler is implemented by features that own persisted models.
type Modeler interface {
	Models() []any
}

// Manager holds the registered features.
type Manager struct {
	features []Feature
}

func NewManager() *Manager {
	return &Manager{}
}

// Register adds a feature to the registry.
func (m *Manager) Register(f Feature) {
	m.features = append(m.features, f)
}

// LoadAll loads every enabled feature in registration order.
func (m *Manager) LoadAll(app fiber.Router) error {
	for _, f := range m.features {
		if !f.IsEnabled() {
			continue
		}
		if err := f.Load(app); err != nil {
			return fmt.Errorf("failed to load feature %s: %w", f.Name(), err)
		}
	}
	return nil
}

// Models collects the models of every registered feature, enabled or not,
// so the schema stays complete regardless of feature flags.
func (m *Manager) Models() []any {
	var models []any
	for _, f := range m.features {
		if mf, ok := f.(Modeler); ok {
			models = append(models, mf.Models()...)
		}
	}
	return models
}

// Names lists the enabled features.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.features))
	for _, f := range m.features {
		if f.IsEnabled() {
			names = append(names, f.Name())
		}
	}
	return names
}
