package hclspec

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/spectrokit/internal/ctxlog"
	"github.com/specialistvlad/spectrokit/internal/item"
)

// ParseFile reads and translates a single HCL file.
func ParseFile(ctx context.Context, filePath string) (map[string]any, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filePath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
	}
	return translate(ctx, file, filePath)
}

// Parse translates HCL source held in memory. filename is only used in
// diagnostics.
func Parse(ctx context.Context, src []byte, filename string) (map[string]any, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL %s: %w", filename, diags)
	}
	return translate(ctx, file, filename)
}

func translate(ctx context.Context, file *hcl.File, filename string) (map[string]any, error) {
	logger := ctxlog.FromContext(ctx)
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("%s: unsupported HCL body type %T", filename, file.Body)
	}

	tree, diags := translateBody(body, true)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to translate HCL file %s: %w", filename, diags)
	}
	logger.Debug("Translated HCL model specification.", "file", filename, "attributes", len(tree))
	return tree, nil
}

// translateBody converts a body into a mapping. At the top level, labelled
// blocks form keyed collections and unlabelled blocks ordered ones; inside
// an item, an unlabelled block becomes a nested mapping.
func translateBody(body *hclsyntax.Body, topLevel bool) (map[string]any, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	out := make(map[string]any, len(body.Attributes)+len(body.Blocks))

	names := make([]string, 0, len(body.Attributes))
	for name := range body.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		attr := body.Attributes[name]
		val, valDiags := attr.Expr.Value(nil)
		diags = append(diags, valDiags...)
		if valDiags.HasErrors() {
			continue
		}
		native, err := item.ToNative(val)
		if err != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unsupported value",
				Detail:   fmt.Sprintf("Attribute %q: %v.", name, err),
				Subject:  attr.Expr.Range().Ptr(),
			})
			continue
		}
		out[name] = native
	}

	// blockKinds remembers whether a block type was first seen with a label,
	// so mixing "x {}" and "x "a" {}" is reported instead of guessed.
	blockKinds := make(map[string]int)
	for _, block := range body.Blocks {
		if _, clash := body.Attributes[block.Type]; clash {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Conflicting definitions",
				Detail:   fmt.Sprintf("%q is defined both as an attribute and as a block.", block.Type),
				Subject:  block.TypeRange.Ptr(),
			})
			continue
		}
		if len(block.Labels) > 1 {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Too many labels",
				Detail:   fmt.Sprintf("Block %q accepts at most one label, got %d.", block.Type, len(block.Labels)),
				Subject:  block.DefRange().Ptr(),
			})
			continue
		}
		if prev, seen := blockKinds[block.Type]; seen && prev != len(block.Labels) {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Inconsistent block labels",
				Detail:   fmt.Sprintf("Blocks of type %q must either all have a label or none.", block.Type),
				Subject:  block.DefRange().Ptr(),
			})
			continue
		}
		blockKinds[block.Type] = len(block.Labels)

		content, blockDiags := translateBody(block.Body, false)
		diags = append(diags, blockDiags...)
		if blockDiags.HasErrors() {
			continue
		}

		switch {
		case len(block.Labels) == 1:
			coll, _ := out[block.Type].(map[string]any)
			if coll == nil {
				coll = make(map[string]any)
				out[block.Type] = coll
			}
			label := block.Labels[0]
			if _, dup := coll[label]; dup {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Duplicate label",
					Detail:   fmt.Sprintf("%s %q is defined more than once.", block.Type, label),
					Subject:  block.LabelRanges[0].Ptr(),
				})
				continue
			}
			coll[label] = content
		case topLevel:
			seq, _ := out[block.Type].([]any)
			out[block.Type] = append(seq, content)
		default:
			if _, dup := out[block.Type]; dup {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Duplicate block",
					Detail:   fmt.Sprintf("Only one %q block is allowed here.", block.Type),
					Subject:  block.TypeRange.Ptr(),
				})
				continue
			}
			out[block.Type] = content
		}
	}

	return out, diags
}
