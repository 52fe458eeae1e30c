package app

import (
	"github.com/specialistvlad/spectrokit/internal/registry"
	"github.com/specialistvlad/spectrokit/modules/kinetic"
)

// coreModules is the definitive list of all modules that are compiled into
// the spectrokit binary.
var coreModules = []registry.Module{
	&kinetic.Module{},
}
