// Package app contains the core application logic. It wires the item
// registry, the model decoder and the file format plugins together behind
// App, decoupled from any specific entrypoint like a CLI.
package app
