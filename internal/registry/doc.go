// Package registry provides the central "glue" between type tags in model
// specifications and the Go item variants that implement them.
//
// Items are grouped into categories. A typed category (for example
// "megacomplex") maps each type tag (e.g., "decay") to a Factory; an untyped
// category has exactly one shape. The registry is the only place where string
// tags are resolved to variants, so every category's shape is a plain data
// value that can be listed and tested.
//
// Registration is additive. Domain packages contribute their categories
// through the Module interface during application startup; nothing is ever
// removed afterwards.
package registry
