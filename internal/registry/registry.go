package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/specialistvlad/spectrokit/internal/item"
)

// Module is the interface that domain packages implement to contribute
// their item categories.
type Module interface {
	Register(r *Registry) error
}

// CategoryInfo describes a category's shape as seen by the decoder.
type CategoryInfo struct {
	Name    string
	Typed   bool
	Labeled bool
}

type category struct {
	info     CategoryInfo
	variants map[string]*item.Factory
}

// Registry holds, per category, the mapping from type tag to item factory.
type Registry struct {
	categories map[string]*category
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		categories: make(map[string]*category),
	}
}

// Register adds a typed variant under category and tag.
func (r *Registry) Register(categoryName, tag string, f *item.Factory) error {
	if tag == "" {
		return fmt.Errorf("category '%s': typed variants need a non-empty tag", categoryName)
	}
	return r.add(categoryName, tag, true, f)
}

// RegisterUntyped adds the single shape of an untyped category.
func (r *Registry) RegisterUntyped(categoryName string, f *item.Factory) error {
	return r.add(categoryName, "", false, f)
}

// MustRegister is Register for static registrations where a failure is a
// programming error.
func (r *Registry) MustRegister(categoryName, tag string, f *item.Factory) {
	if err := r.Register(categoryName, tag, f); err != nil {
		panic(err)
	}
}

func (r *Registry) add(categoryName, tag string, typed bool, f *item.Factory) error {
	if f == nil || f.Descriptor == nil || f.New == nil {
		return fmt.Errorf("category '%s', type '%s': factory needs a descriptor and a constructor", categoryName, tag)
	}
	desc := f.Descriptor
	if desc.Category != categoryName || desc.Tag != tag || desc.Typed != typed {
		return fmt.Errorf("category '%s', type '%s': descriptor declares category '%s', type '%s' (typed=%t)",
			categoryName, tag, desc.Category, desc.Tag, desc.Typed)
	}
	if err := desc.Validate(); err != nil {
		return err
	}

	cat, exists := r.categories[categoryName]
	if !exists {
		cat = &category{
			info:     CategoryInfo{Name: categoryName, Typed: typed, Labeled: desc.HasLabel()},
			variants: make(map[string]*item.Factory),
		}
		r.categories[categoryName] = cat
	} else {
		if cat.info.Typed != typed {
			return &CategoryConflictError{Category: categoryName, Reason: "cannot mix typed and untyped registrations"}
		}
		if cat.info.Labeled != desc.HasLabel() {
			return &CategoryConflictError{Category: categoryName, Reason: fmt.Sprintf("variant '%s' disagrees on the label field", tag)}
		}
	}

	if _, dup := cat.variants[tag]; dup {
		return &DuplicateTagError{Category: categoryName, Tag: tag}
	}
	slog.Debug("Registering item variant.", "category", categoryName, "type", tag)
	cat.variants[tag] = f
	return nil
}

// Resolve returns the factory for tag in category. Untyped categories
// resolve the empty tag.
func (r *Registry) Resolve(categoryName, tag string) (*item.Factory, error) {
	cat, ok := r.categories[categoryName]
	if !ok {
		return nil, &UnknownTypeError{Category: categoryName, Tag: tag}
	}
	f, ok := cat.variants[tag]
	if !ok {
		return nil, &UnknownTypeError{Category: categoryName, Tag: tag, Known: r.Tags(categoryName)}
	}
	return f, nil
}

// Category reports a category's shape.
func (r *Registry) Category(name string) (CategoryInfo, bool) {
	cat, ok := r.categories[name]
	if !ok {
		return CategoryInfo{}, false
	}
	return cat.info, true
}

// Categories returns all category names in sorted order.
func (r *Registry) Categories() []string {
	names := make([]string, 0, len(r.categories))
	for name := range r.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Tags returns the registered tags of a typed category in sorted order.
func (r *Registry) Tags(categoryName string) []string {
	cat, ok := r.categories[categoryName]
	if !ok || !cat.info.Typed {
		return nil
	}
	tags := make([]string, 0, len(cat.variants))
	for tag := range cat.variants {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Load registers every module in order, stopping at the first failure.
func (r *Registry) Load(modules ...Module) error {
	for _, mod := range modules {
		if err := mod.Register(r); err != nil {
			return fmt.Errorf("registering module %T: %w", mod, err)
		}
	}
	return nil
}
