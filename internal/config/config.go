package config

import (
	"fmt"
	"maps"
	"slices"

	"github.com/rohmanhakim/jsxtree/internal/evaluate"
	"github.com/rohmanhakim/jsxtree/internal/normalize"
	"github.com/rohmanhakim/jsxtree/internal/render"
	"github.com/rohmanhakim/jsxtree/internal/sanitizer"
	"github.com/rohmanhakim/jsxtree/internal/tree"
	"github.com/rohmanhakim/jsxtree/pkg/hashutil"
)

// ComponentSpec declares a custom element without Go code: a native tag
// plus default props.
type ComponentSpec struct {
	Tag   string         `json:"tag" yaml:"tag"`
	Props map[string]any `json:"props,omitempty" yaml:"props,omitempty"`
}

type Config struct {
	//===============
	// Compilation
	//===============
	// Default props merged under every element's own attributes
	bindings map[string]any
	// Tag names or /regexp/ patterns removed from the output, on top of script
	blacklistedTags []string
	// Attribute names or /regexp/ patterns removed from the output, on top of on*
	blacklistedAttrs []string
	// Custom elements registered by name
	components map[string]ComponentSpec
	// Maximum element nesting
	maxDepth int
	// Maximum source length of a single bracketed expression
	maxExpressionLength int
	// Parse inputs with the HTML5 algorithm instead of the JSX grammar
	lenientHTML bool

	//===============
	// Rendering
	//===============
	// Whether HTML output is wrapped in a container element
	renderInWrapper bool
	// Class of the container element
	wrapperClass string
	// Run rendered HTML through an allow-list sanitizer
	strictHTML bool

	//===============
	// Output
	//===============
	// One of json, html or markdown
	outputFormat normalize.Format
	// Root directory in which to store the resulting files
	outputDir string
	// Whether the program will simulates what it would do without
	// actually performing any irreversible or side-effecting actions
	dryRun bool
	// Algorithm for output filenames and fingerprints
	hashAlgo hashutil.HashAlgo
}

// WithDefault creates a new Config with default values for all fields.
func WithDefault() *Config {
	defaultConfig := Config{
		bindings:            map[string]any{},
		blacklistedTags:     []string{},
		blacklistedAttrs:    []string{},
		components:          map[string]ComponentSpec{},
		maxDepth:            tree.DefaultMaxDepth,
		maxExpressionLength: evaluate.DefaultMaxSourceLength,
		lenientHTML:         false,
		renderInWrapper:     true,
		wrapperClass:        render.DefaultWrapperClass,
		strictHTML:          false,
		outputFormat:        normalize.FormatJSON,
		outputDir:           "output",
		dryRun:              false,
		hashAlgo:            hashutil.HashAlgoBLAKE3,
	}
	return &defaultConfig
}

// ToBuilder returns a builder seeded with c, so that callers can layer
// overrides on top of a loaded config.
func (c Config) ToBuilder() *Config {
	builder := c
	builder.bindings = maps.Clone(c.bindings)
	builder.blacklistedTags = slices.Clone(c.blacklistedTags)
	builder.blacklistedAttrs = slices.Clone(c.blacklistedAttrs)
	builder.components = maps.Clone(c.components)
	return &builder
}

func (c *Config) WithBindings(bindings map[string]any) *Config {
	c.bindings = bindings
	return c
}

func (c *Config) WithBinding(name string, value any) *Config {
	if c.bindings == nil {
		c.bindings = map[string]any{}
	}
	c.bindings[name] = value
	return c
}

func (c *Config) WithBlacklistedTags(patterns []string) *Config {
	c.blacklistedTags = patterns
	return c
}

func (c *Config) WithBlacklistedAttrs(patterns []string) *Config {
	c.blacklistedAttrs = patterns
	return c
}

func (c *Config) WithComponents(components map[string]ComponentSpec) *Config {
	c.components = components
	return c
}

func (c *Config) WithMaxDepth(depth int) *Config {
	c.maxDepth = depth
	return c
}

func (c *Config) WithMaxExpressionLength(length int) *Config {
	c.maxExpressionLength = length
	return c
}

func (c *Config) WithLenientHTML(lenient bool) *Config {
	c.lenientHTML = lenient
	return c
}

func (c *Config) WithRenderInWrapper(wrap bool) *Config {
	c.renderInWrapper = wrap
	return c
}

func (c *Config) WithWrapperClass(class string) *Config {
	c.wrapperClass = class
	return c
}

func (c *Config) WithStrictHTML(strict bool) *Config {
	c.strictHTML = strict
	return c
}

func (c *Config) WithOutputFormat(format normalize.Format) *Config {
	c.outputFormat = format
	return c
}

func (c *Config) WithOutputDir(outputDir string) *Config {
	c.outputDir = outputDir
	return c
}

func (c *Config) WithDryRun(dryRun bool) *Config {
	c.dryRun = dryRun
	return c
}

func (c *Config) WithHashAlgo(algo hashutil.HashAlgo) *Config {
	c.hashAlgo = algo
	return c
}

func (c *Config) Build() (Config, error) {
	format, ok := normalize.ParseFormat(string(c.outputFormat))
	if !ok {
		return Config{}, fmt.Errorf("%w: unknown output format %q", ErrInvalidConfig, c.outputFormat)
	}
	c.outputFormat = format

	algo, err := hashutil.ParseHashAlgo(string(c.hashAlgo))
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, err.Error())
	}
	c.hashAlgo = algo

	if _, err := sanitizer.Compile(c.blacklistedTags, c.blacklistedAttrs); err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, err.Error())
	}

	for name, spec := range c.components {
		if name == "" {
			return Config{}, fmt.Errorf("%w: component name cannot be empty", ErrInvalidConfig)
		}
		if spec.Tag == "" {
			return Config{}, fmt.Errorf("%w: component %q has no tag", ErrInvalidConfig, name)
		}
	}

	if c.maxDepth <= 0 {
		c.maxDepth = tree.DefaultMaxDepth
	}
	if c.maxExpressionLength <= 0 {
		c.maxExpressionLength = evaluate.DefaultMaxSourceLength
	}
	if c.wrapperClass == "" {
		c.wrapperClass = render.DefaultWrapperClass
	}
	if c.outputDir == "" {
		c.outputDir = "output"
	}

	return *c, nil
}

func (c Config) Bindings() map[string]any {
	return maps.Clone(c.bindings)
}

func (c Config) BlacklistedTags() []string {
	return slices.Clone(c.blacklistedTags)
}

func (c Config) BlacklistedAttrs() []string {
	return slices.Clone(c.blacklistedAttrs)
}

func (c Config) Components() map[string]ComponentSpec {
	return maps.Clone(c.components)
}

// ComponentDefinitions turns the declared components into render definitions
// keyed by tag name.
func (c Config) ComponentDefinitions() map[string]any {
	defs := make(map[string]any, len(c.components))
	for name, spec := range c.components {
		defs[name] = render.Element{
			Tag:   spec.Tag,
			Props: tree.Props(maps.Clone(spec.Props)),
		}
	}
	return defs
}

func (c Config) MaxDepth() int {
	return c.maxDepth
}

func (c Config) MaxExpressionLength() int {
	return c.maxExpressionLength
}

func (c Config) LenientHTML() bool {
	return c.lenientHTML
}

func (c Config) RenderInWrapper() bool {
	return c.renderInWrapper
}

func (c Config) WrapperClass() string {
	return c.wrapperClass
}

func (c Config) StrictHTML() bool {
	return c.strictHTML
}

func (c Config) OutputFormat() normalize.Format {
	return c.outputFormat
}

func (c Config) OutputDir() string {
	return c.outputDir
}

func (c Config) DryRun() bool {
	return c.dryRun
}

func (c Config) HashAlgo() hashutil.HashAlgo {
	return c.hashAlgo
}
