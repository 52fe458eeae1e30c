package kinetic

import (
	"fmt"

	"github.com/specialistvlad/spectrokit/internal/item"
	"github.com/zclconf/go-cty/cty"
)

// Type tags shared by several categories.
const (
	TypeGaussian      = "gaussian"
	TypeMultiGaussian = "multi-gaussian"
	TypeOne           = "one"
	TypeZero          = "zero"
	TypeOnly          = "only"
	TypeDecay         = "decay"
	TypeSpectral      = "spectral"
)

var paramList = cty.List(cty.String)

func paramField(name string) item.Field {
	return item.Field{Name: name, Type: cty.String, Ref: item.ParamRef}
}

// decodeAll decodes the named fields into their targets, stopping at the
// first failure.
func decodeAll(f item.Fields, targets map[string]any) error {
	for _, name := range f.Names() {
		target, ok := targets[name]
		if !ok {
			continue
		}
		if err := f.Decode(name, target); err != nil {
			return err
		}
	}
	return nil
}

func issue(b item.Base, format string, args ...any) string {
	return fmt.Sprintf("%s: %s", b.Name(), fmt.Sprintf(format, args...))
}
