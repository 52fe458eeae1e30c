package kinetic

import (
	"github.com/specialistvlad/spectrokit/internal/item"
	"github.com/specialistvlad/spectrokit/internal/model"
	"github.com/specialistvlad/spectrokit/internal/registry"
)

// Attribute names of the kinetic model, which double as category names
// except for the ordered collections.
const (
	AttrInitialConcentration = "initial_concentration"
	AttrKMatrix              = "k_matrix"
	AttrIRF                  = "irf"
	AttrShape                = "shape"
	AttrMegacomplex          = "megacomplex"
	AttrDataset              = "dataset"
	AttrConstraints          = "constraints"
	AttrRelations            = "relations"

	CategoryConstraint = "constraint"
	CategoryRelation   = "relation"
)

// ModelType is the name of the kinetic model container type.
const ModelType = "kinetic"

var spec = model.MustSpec(ModelType,
	model.Attribute{Name: AttrInitialConcentration, Kind: model.Keyed, Category: AttrInitialConcentration},
	model.Attribute{Name: AttrKMatrix, Kind: model.Keyed, Category: AttrKMatrix},
	model.Attribute{Name: AttrIRF, Kind: model.Keyed, Category: AttrIRF},
	model.Attribute{Name: AttrShape, Kind: model.Keyed, Category: AttrShape},
	model.Attribute{Name: AttrMegacomplex, Kind: model.Keyed, Category: AttrMegacomplex},
	model.Attribute{Name: AttrDataset, Kind: model.Keyed, Category: AttrDataset},
	model.Attribute{Name: AttrConstraints, Kind: model.Ordered, Category: CategoryConstraint},
	model.Attribute{Name: AttrRelations, Kind: model.Ordered, Category: CategoryRelation},
)

// Spec returns the kinetic model container type.
func Spec() *model.Spec { return spec }

// Module implements the registry.Module interface for this package.
type Module struct{}

type registration struct {
	category string
	tag      string
	factory  *item.Factory
}

func registrations() []registration {
	return []registration{
		{AttrInitialConcentration, "", initialConcentrationFactory},
		{AttrKMatrix, "", kMatrixFactory},
		{AttrIRF, TypeGaussian, gaussianIRFFactory},
		{AttrIRF, TypeMultiGaussian, multiGaussianIRFFactory},
		{AttrShape, TypeGaussian, gaussianShapeFactory},
		{AttrShape, TypeOne, oneShapeFactory},
		{AttrShape, TypeZero, zeroShapeFactory},
		{AttrMegacomplex, TypeDecay, decayMegacomplexFactory},
		{AttrMegacomplex, TypeSpectral, spectralMegacomplexFactory},
		{AttrDataset, "", datasetFactory},
		{CategoryConstraint, TypeZero, zeroConstraintFactory},
		{CategoryConstraint, TypeOnly, onlyConstraintFactory},
		{CategoryRelation, "", relationFactory},
	}
}

// Register adds every kinetic item variant to r.
func (m *Module) Register(r *registry.Registry) error {
	for _, reg := range registrations() {
		var err error
		if reg.tag == "" {
			err = r.RegisterUntyped(reg.category, reg.factory)
		} else {
			err = r.Register(reg.category, reg.tag, reg.factory)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
