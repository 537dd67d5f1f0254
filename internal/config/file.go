package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rohmanhakim/jsxtree/internal/normalize"
	"github.com/rohmanhakim/jsxtree/pkg/hashutil"
	"gopkg.in/yaml.v3"
)

type configDTO struct {
	Bindings            map[string]any           `json:"bindings,omitempty" yaml:"bindings,omitempty"`
	BlacklistedTags     []string                 `json:"blacklistedTags,omitempty" yaml:"blacklistedTags,omitempty"`
	BlacklistedAttrs    []string                 `json:"blacklistedAttrs,omitempty" yaml:"blacklistedAttrs,omitempty"`
	Components          map[string]ComponentSpec `json:"components,omitempty" yaml:"components,omitempty"`
	MaxDepth            int                      `json:"maxDepth,omitempty" yaml:"maxDepth,omitempty"`
	MaxExpressionLength int                      `json:"maxExpressionLength,omitempty" yaml:"maxExpressionLength,omitempty"`
	LenientHTML         bool                     `json:"lenientHTML,omitempty" yaml:"lenientHTML,omitempty"`
	// RenderInWrapper defaults to true, so absence must be told apart from false
	RenderInWrapper *bool  `json:"renderInWrapper,omitempty" yaml:"renderInWrapper,omitempty"`
	WrapperClass    string `json:"wrapperClass,omitempty" yaml:"wrapperClass,omitempty"`
	StrictHTML      bool   `json:"strictHTML,omitempty" yaml:"strictHTML,omitempty"`
	OutputFormat    string `json:"outputFormat,omitempty" yaml:"outputFormat,omitempty"`
	OutputDir       string `json:"outputDir,omitempty" yaml:"outputDir,omitempty"`
	DryRun          bool   `json:"dryRun,omitempty" yaml:"dryRun,omitempty"`
	HashAlgo        string `json:"hashAlgo,omitempty" yaml:"hashAlgo,omitempty"`
}

func newConfigFromDTO(dto configDTO) (Config, error) {
	// Start with default config
	cfg := WithDefault()

	if len(dto.Bindings) > 0 {
		cfg.WithBindings(dto.Bindings)
	}
	if len(dto.BlacklistedTags) > 0 {
		cfg.WithBlacklistedTags(dto.BlacklistedTags)
	}
	if len(dto.BlacklistedAttrs) > 0 {
		cfg.WithBlacklistedAttrs(dto.BlacklistedAttrs)
	}
	if len(dto.Components) > 0 {
		cfg.WithComponents(dto.Components)
	}

	// For other fields, only override if non-zero value is provided
	if dto.MaxDepth != 0 {
		cfg.WithMaxDepth(dto.MaxDepth)
	}
	if dto.MaxExpressionLength != 0 {
		cfg.WithMaxExpressionLength(dto.MaxExpressionLength)
	}
	if dto.RenderInWrapper != nil {
		cfg.WithRenderInWrapper(*dto.RenderInWrapper)
	}
	if dto.WrapperClass != "" {
		cfg.WithWrapperClass(dto.WrapperClass)
	}
	if dto.OutputFormat != "" {
		cfg.WithOutputFormat(normalize.Format(dto.OutputFormat))
	}
	if dto.OutputDir != "" {
		cfg.WithOutputDir(dto.OutputDir)
	}
	if dto.HashAlgo != "" {
		cfg.WithHashAlgo(hashutil.HashAlgo(dto.HashAlgo))
	}
	cfg.WithLenientHTML(dto.LenientHTML).
		WithStrictHTML(dto.StrictHTML).
		WithDryRun(dto.DryRun)

	return cfg.Build()
}

// WithConfigFile loads a config file. The format follows the extension:
// .json, .yaml, .yml or .hcl.
func WithConfigFile(path string) (Config, error) {
	_, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	configContent, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}

	var cfgDTO configDTO
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(configContent, &cfgDTO)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(configContent, &cfgDTO)
	case ".hcl":
		cfgDTO, err = decodeHCL(path, configContent)
	default:
		return Config{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	return newConfigFromDTO(cfgDTO)
}
