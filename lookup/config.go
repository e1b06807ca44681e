package lookup

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the YAML overlay applied on top of a preset context. All fields
// except Preset are additive.
type Config struct {
	Name              string            `yaml:"name"`
	Preset            string            `yaml:"preset"`
	GlobalAccessors   []string          `yaml:"globalAccessors,omitempty"`
	FieldMethods      map[string]string `yaml:"fieldMethods,omitempty"`
	CollectionMethods []string          `yaml:"collectionMethods,omitempty"`
	Rules             []Rule            `yaml:"rules,omitempty"`
	DefaultType       string            `yaml:"defaultType,omitempty"`
	KnownTypes        []string          `yaml:"knownTypes,omitempty"`
}

// DefaultConfig is the configuration written by `tvin init`.
var DefaultConfig = Config{
	Name:   "tvin",
	Preset: "base",
}

// LoadConfig reads and parses a YAML overlay configuration file.
func LoadConfig(path string) (Config, error) {
	var config Config

	f, err := os.Open(path)
	if err != nil {
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&config); err != nil {
		return config, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Snapshot dumps the context's effective tables into a Config value, with
// deterministic ordering, so presets can be inspected or copied into an
// overlay file.
func (c *Context) Snapshot(preset string) Config {
	cfg := Config{
		Name:        "tvin",
		Preset:      preset,
		DefaultType: c.defaultType,
		Rules:       append([]Rule{}, c.rules...),
	}
	for name := range c.globals {
		cfg.GlobalAccessors = append(cfg.GlobalAccessors, name)
	}
	sort.Strings(cfg.GlobalAccessors)
	if len(c.fieldMethods) > 0 {
		cfg.FieldMethods = make(map[string]string, len(c.fieldMethods))
		for method, typ := range c.fieldMethods {
			cfg.FieldMethods[method] = typ
		}
	}
	for method := range c.collectionMethods {
		cfg.CollectionMethods = append(cfg.CollectionMethods, method)
	}
	sort.Strings(cfg.CollectionMethods)
	for name := range c.knownTypes {
		cfg.KnownTypes = append(cfg.KnownTypes, name)
	}
	sort.Strings(cfg.KnownTypes)
	return cfg
}

// Context builds a lookup context from the configured preset and layers the
// overlay entries on top. User rules are prepended so they win over the
// preset's rule table.
func (cfg Config) Context() (*Context, error) {
	var base *Context
	switch cfg.Preset {
	case "", "base":
		base = Base()
	case "page":
		base = Page()
	case "message":
		base = Message()
	default:
		return nil, fmt.Errorf("unknown preset %q", cfg.Preset)
	}

	if len(cfg.GlobalAccessors) > 0 {
		base = base.WithGlobals(cfg.GlobalAccessors...)
	}

	if len(cfg.FieldMethods) == 0 && len(cfg.CollectionMethods) == 0 &&
		len(cfg.Rules) == 0 && cfg.DefaultType == "" && len(cfg.KnownTypes) == 0 {
		return base, nil
	}

	next := base.clone()
	for method, typ := range cfg.FieldMethods {
		next.fieldMethods[strings.ToLower(method)] = typ
	}
	for _, method := range cfg.CollectionMethods {
		next.collectionMethods[strings.ToLower(method)] = true
	}
	if len(cfg.Rules) > 0 {
		next.rules = append(append([]Rule{}, cfg.Rules...), next.rules...)
	}
	if cfg.DefaultType != "" {
		next.defaultType = cfg.DefaultType
	}
	for _, name := range cfg.KnownTypes {
		next.knownTypes[strings.ToLower(name)] = true
	}

	return next, nil
}
