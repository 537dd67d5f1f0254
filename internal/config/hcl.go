package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// hclConfigFile is the decoding target for .hcl config files:
//
//	output_format    = "markdown"
//	blacklisted_tags = ["iframe", "/^x-/"]
//	bindings         = { site = { name = "Docs" } }
//
//	component "Card" {
//	  tag   = "div"
//	  props = { className = "card" }
//	}
type hclConfigFile struct {
	Bindings            cty.Value            `hcl:"bindings,optional"`
	BlacklistedTags     []string             `hcl:"blacklisted_tags,optional"`
	BlacklistedAttrs    []string             `hcl:"blacklisted_attrs,optional"`
	Components          []*hclComponentBlock `hcl:"component,block"`
	MaxDepth            int                  `hcl:"max_depth,optional"`
	MaxExpressionLength int                  `hcl:"max_expression_length,optional"`
	LenientHTML         bool                 `hcl:"lenient_html,optional"`
	RenderInWrapper     *bool                `hcl:"render_in_wrapper,optional"`
	WrapperClass        string               `hcl:"wrapper_class,optional"`
	StrictHTML          bool                 `hcl:"strict_html,optional"`
	OutputFormat        string               `hcl:"output_format,optional"`
	OutputDir           string               `hcl:"output_dir,optional"`
	DryRun              bool                 `hcl:"dry_run,optional"`
	HashAlgo            string               `hcl:"hash_algo,optional"`
}

type hclComponentBlock struct {
	Name  string    `hcl:"name,label"`
	Tag   string    `hcl:"tag"`
	Props cty.Value `hcl:"props,optional"`
}

func decodeHCL(filename string, content []byte) (configDTO, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(content, filename)
	if diags.HasErrors() {
		return configDTO{}, diags
	}

	var parsedFile hclConfigFile
	diags = gohcl.DecodeBody(hclFile.Body, nil, &parsedFile)
	if diags.HasErrors() {
		return configDTO{}, diags
	}

	bindings, err := ctyToMap(parsedFile.Bindings)
	if err != nil {
		return configDTO{}, fmt.Errorf("bindings: %w", err)
	}

	dto := configDTO{
		Bindings:            bindings,
		BlacklistedTags:     parsedFile.BlacklistedTags,
		BlacklistedAttrs:    parsedFile.BlacklistedAttrs,
		MaxDepth:            parsedFile.MaxDepth,
		MaxExpressionLength: parsedFile.MaxExpressionLength,
		LenientHTML:         parsedFile.LenientHTML,
		RenderInWrapper:     parsedFile.RenderInWrapper,
		WrapperClass:        parsedFile.WrapperClass,
		StrictHTML:          parsedFile.StrictHTML,
		OutputFormat:        parsedFile.OutputFormat,
		OutputDir:           parsedFile.OutputDir,
		DryRun:              parsedFile.DryRun,
		HashAlgo:            parsedFile.HashAlgo,
	}

	if len(parsedFile.Components) > 0 {
		dto.Components = make(map[string]ComponentSpec, len(parsedFile.Components))
	}
	for _, block := range parsedFile.Components {
		if _, dup := dto.Components[block.Name]; dup {
			return configDTO{}, fmt.Errorf("component %q declared twice", block.Name)
		}
		props, err := ctyToMap(block.Props)
		if err != nil {
			return configDTO{}, fmt.Errorf("component %q props: %w", block.Name, err)
		}
		dto.Components[block.Name] = ComponentSpec{Tag: block.Tag, Props: props}
	}

	return dto, nil
}

func ctyToMap(v cty.Value) (map[string]any, error) {
	native, err := ctyToNative(v)
	if err != nil {
		return nil, err
	}
	if native == nil {
		return nil, nil
	}
	m, ok := native.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected an object, got %s", v.Type().FriendlyName())
	}
	return m, nil
}

// ctyToNative converts a cty.Value to its natural Go counterpart. Numbers
// become float64, lists and tuples []any, objects and maps map[string]any.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()

	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("could not convert number to float64: %w", err)
		}
		return f, nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		slice := make([]any, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, val := it.Element()
			nativeVal, err := ctyToNative(val)
			if err != nil {
				return nil, err
			}
			slice = append(slice, nativeVal)
		}
		return slice, nil

	case ty.IsObjectType() || ty.IsMapType():
		goMap := make(map[string]any, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			key, val := it.Element()
			keyStr := key.AsString()
			nativeVal, err := ctyToNative(val)
			if err != nil {
				return nil, fmt.Errorf("in attribute '%s': %w", keyStr, err)
			}
			goMap[keyStr] = nativeVal
		}
		return goMap, nil

	default:
		return nil, fmt.Errorf("unsupported type %s", ty.FriendlyName())
	}
}
