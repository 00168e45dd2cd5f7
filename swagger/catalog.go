package swagger

import (
	"fmt"
	"log/slog"
	"sync"
)

// Provider enumerates the services of one module.
type Provider func() ([]Service, error)

// Catalog is the set of modules searched when a builder discovers
// services instead of receiving them explicitly. Modules are enumerated in
// registration order; a module that fails to enumerate is skipped.
type Catalog struct {
	mu      sync.Mutex
	modules []catalogModule
}

type catalogModule struct {
	name     string
	provider Provider
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{}
}

var defaultCatalog = NewCatalog()

// DefaultCatalog returns the catalog that Register adds to.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

// Register adds a module provider to the default catalog. It is meant to
// be called from package init functions:
//
//	func init() {
//	    swagger.Register("petstore", func() ([]swagger.Service, error) {
//	        return []swagger.Service{PetService{}, StoreService{}}, nil
//	    })
//	}
func Register(module string, provider Provider) {
	defaultCatalog.Register(module, provider)
}

// Register adds a module provider.
func (c *Catalog) Register(module string, provider Provider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modules = append(c.modules, catalogModule{name: module, provider: provider})
}

// Add registers a module with a fixed service list.
func (c *Catalog) Add(module string, services ...Service) {
	c.Register(module, func() ([]Service, error) { return services, nil })
}

// Services enumerates every module and returns their services in order.
func (c *Catalog) Services(log *slog.Logger) []Service {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	c.mu.Lock()
	modules := append([]catalogModule(nil), c.modules...)
	c.mu.Unlock()

	var services []Service
	for _, mod := range modules {
		found, err := mod.enumerate()
		if err != nil {
			log.Warn("skipping module", "module", mod.name, "error", err)
			continue
		}
		services = append(services, found...)
	}
	return services
}

func (m catalogModule) enumerate() (services []Service, err error) {
	defer func() {
		if rv := recover(); rv != nil {
			services, err = nil, fmt.Errorf("enumerate %s: %v", m.name, rv)
		}
	}()
	if m.provider == nil {
		return nil, nil
	}
	return m.provider()
}
