// Package kinetic defines the items of a global kinetic analysis model:
// compartmental decay schemes (k-matrices, initial concentrations),
// instrument response functions, spectral shapes and the datasets tying
// them together.
//
// Register the package with a registry through Module and decode documents
// against Spec().
package kinetic
