// Package validate walks a populated model and collects every structural and
// parameter problem it finds. Problems are data, not errors: the caller gets
// the complete list so a specification can be fixed in one editing pass.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/spectrokit/internal/item"
	"github.com/specialistvlad/spectrokit/internal/model"
)

// CollectErrors returns the structural errors of every item, in attribute
// declaration order and then item order.
func CollectErrors(v model.View) []string {
	var errs []string
	for _, attr := range v.Spec().Attributes() {
		for _, it := range v.Items(attr.Name) {
			errs = append(errs, it.ValidateStructure(v)...)
		}
	}
	return errs
}

// Valid reports whether CollectErrors is empty.
func Valid(v model.View) bool {
	return len(CollectErrors(v)) == 0
}

// CollectParameterErrors returns, in the same order as CollectErrors, the
// errors of items whose parameter references do not resolve in params.
func CollectParameterErrors(v model.View, params item.Parameters) []string {
	var errs []string
	for _, attr := range v.Spec().Attributes() {
		for _, it := range v.Items(attr.Name) {
			errs = append(errs, it.ValidateParameters(v, params)...)
		}
	}
	return errs
}

// ValidParameters reports whether CollectParameterErrors is empty.
func ValidParameters(v model.View, params item.Parameters) bool {
	return len(CollectParameterErrors(v, params)) == 0
}

// Result holds both error lists of a full check.
type Result struct {
	ModelErrors     []string
	ParameterErrors []string
}

// Check runs both validations. A nil params skips the parameter check.
func Check(v model.View, params item.Parameters) *Result {
	res := &Result{ModelErrors: CollectErrors(v)}
	if params != nil {
		res.ParameterErrors = CollectParameterErrors(v, params)
	}
	return res
}

// Valid reports whether the result has no errors at all.
func (r *Result) Valid() bool {
	return len(r.ModelErrors) == 0 && len(r.ParameterErrors) == 0
}

// Err returns nil for a valid result, otherwise one error listing every
// problem.
func (r *Result) Err() error {
	var errs []error
	if len(r.ModelErrors) > 0 {
		errs = append(errs, fmt.Errorf("model validation failed:\n- %s", strings.Join(r.ModelErrors, "\n- ")))
	}
	if len(r.ParameterErrors) > 0 {
		errs = append(errs, fmt.Errorf("parameter validation failed:\n- %s", strings.Join(r.ParameterErrors, "\n- ")))
	}
	return errors.Join(errs...)
}

// Report renders a result for humans.
func Report(r *Result) string {
	if r.Valid() {
		return "Model is valid.\n"
	}
	var sb strings.Builder
	writeSection(&sb, "Model errors", r.ModelErrors)
	writeSection(&sb, "Parameter errors", r.ParameterErrors)
	return sb.String()
}

func writeSection(sb *strings.Builder, title string, errs []string) {
	if len(errs) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s (%d):\n", title, len(errs))
	for _, e := range errs {
		fmt.Fprintf(sb, "  - %s\n", e)
	}
}
