// Package decoder turns an untyped configuration tree into a populated
// model.Model.
//
// The tree is what a format plugin produces from a file: a mapping from
// attribute name to either a mapping of label to item configuration (keyed
// form) or a sequence of item configurations (ordered form). Each item
// configuration is itself a mapping of field name to value or a positional
// sequence.
//
// Decoding is all-or-nothing. Every item is built and staged first; only when
// the whole tree has decoded without error are the staged items inserted into
// the container. The input tree is never modified.
package decoder
