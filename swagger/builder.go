package swagger

import (
	"errors"
	"log/slog"
)

// ErrMissingServiceInfo is returned when services were mapped but no API
// info is available from settings, overrides, or any service descriptor.
var ErrMissingServiceInfo = errors.New("swagger: no service declares API info")

// Overrides are values supplied by the hosting code. Each non-empty field
// replaces the value derived from settings.
type Overrides struct {
	Info                *Info
	SecurityDefinitions map[string]*SecurityScheme
	BasePath            string
}

// BuilderConfig configures a Builder.
type BuilderConfig struct {
	// Registry assigns definition names. A new registry is created when nil.
	Registry *NameRegistry

	// Services switches to single-service mode: only these services are
	// documented. When empty, services are discovered from Catalog.
	Services []Service

	// Catalog is searched when Services is empty (default: DefaultCatalog).
	Catalog *Catalog

	// HiddenTags lists tag names excluded from the document.
	HiddenTags []string

	// VisibleTags supplies descriptions and sort orders of visible tags.
	VisibleTags []TagOverride

	// Settings holds flat key-value settings (see ApplySettings).
	Settings map[string]string

	Overrides Overrides

	// RoutePrefix is prepended to every service path.
	RoutePrefix string

	Logger *slog.Logger
}

// Builder assembles documents from service descriptors.
type Builder struct {
	cfg BuilderConfig
	reg *NameRegistry
	log *slog.Logger
}

// NewBuilder creates a document builder.
func NewBuilder(cfg BuilderConfig) *Builder {
	b := &Builder{cfg: cfg, reg: cfg.Registry, log: cfg.Logger}
	if b.reg == nil {
		b.reg = NewNameRegistry()
	}
	if b.log == nil {
		b.log = slog.New(slog.DiscardHandler)
	}
	if b.cfg.Catalog == nil {
		b.cfg.Catalog = DefaultCatalog()
	}
	return b
}

// Registry returns the name registry shared by every build.
func (b *Builder) Registry() *NameRegistry {
	return b.reg
}

// SetOverrides replaces the hosting overrides applied to later builds.
func (b *Builder) SetOverrides(o Overrides) {
	b.cfg.Overrides = o
}

// Build assembles the document for a scope. The scope only labels the
// document in logs; every scope documents the same services.
func (b *Builder) Build(scope string) (*Document, error) {
	log := b.log.With("scope", scope)

	doc := &Document{Swagger: Version}
	if err := ApplySettings(doc, b.cfg.Settings); err != nil {
		return nil, err
	}

	ov := b.cfg.Overrides
	if ov.Info != nil {
		doc.Info = ov.Info
	}
	if ov.SecurityDefinitions != nil {
		doc.SecurityDefinitions = ov.SecurityDefinitions
	}
	if ov.BasePath != "" {
		doc.BasePath = ov.BasePath
	}

	services := b.cfg.Services
	if len(services) == 0 {
		services = b.cfg.Catalog.Services(log)
	}

	types := newTypeMapper(b.reg, b.cfg.HiddenTags, b.cfg.VisibleTags)
	mapping := newMapper(types, log).Map(services, b.cfg.RoutePrefix)

	if doc.Info == nil {
		doc.Info = mapping.Info
	}
	if doc.Info == nil && mapping.Services > 0 {
		return nil, ErrMissingServiceInfo
	}

	doc.Paths = mapping.Paths
	doc.Definitions = newDefinitionBuilder(types, log).build(mapping.Roots)
	doc.Tags = ResolveTags(doc.Paths, b.cfg.HiddenTags, b.cfg.VisibleTags)

	log.Debug("document built",
		"services", mapping.Services,
		"paths", len(doc.Paths),
		"definitions", len(doc.Definitions),
		"tags", len(doc.Tags),
	)

	return doc, nil
}
