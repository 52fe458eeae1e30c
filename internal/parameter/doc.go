// Package parameter provides the hierarchical parameter set a model's
// parameter references resolve against.
//
// Parameters live in groups; a parameter is addressed by its dotted full
// label, e.g. "rates.k1" for parameter "k1" in group "rates". A Group
// satisfies item.Parameters, so it can be handed directly to the validator.
package parameter
