package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// ParseFile loads and validates a collection spec from disk.
func ParseFile(path string) (*File, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s, %w", path, err)
	}
	return Parse(contents, path)
}

// Parse decodes and validates a collection spec.
func Parse(configString []byte, filename string) (*File, error) {
	// parse the config
	file, diags := hclsyntax.ParseConfig(configString, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, hclDiagsToError("failed to parse config", diags)
	}
	// create empty eval context
	evalCtx := &hcl.EvalContext{
		Variables: make(map[string]cty.Value),
		Functions: make(map[string]function.Function),
	}
	// decode the body into the target struct
	var res File
	moreDiags := gohcl.DecodeBody(file.Body, evalCtx, &res)
	diags = append(diags, moreDiags...)
	if diags.HasErrors() {
		return nil, hclDiagsToError("failed to parse config", diags)
	}

	if err := res.Validate(); err != nil {
		return nil, err
	}
	return &res, nil
}

func hclDiagsToError(prefix string, diags hcl.Diagnostics) error {
	if !diags.HasErrors() {
		return nil
	}
	var errStrings []string
	for _, diag := range diags {
		if diag.Severity == hcl.DiagError {
			errString := diag.Summary
			if diag.Detail != "" {
				errString += ": " + diag.Detail
			}
			errStrings = append(errStrings, errString)
		}
	}
	return fmt.Errorf("%s: %s", prefix, strings.Join(errStrings, "; "))
}
