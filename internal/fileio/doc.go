// Package fileio holds the file format plugins used to read and write model
// specifications and parameter sets. A plugin works on the generic
// configuration tree; decoding into items is left to the decoder.
package fileio
