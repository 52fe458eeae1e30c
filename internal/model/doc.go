// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the container that holds a decoded model
// specification: named collections of typed items.
//
// # Core Concepts
//
// The container is built around a few key structures:
//
//   - Spec: The container type definition. It declares, once and up front,
//     every attribute a model may carry, which category of items lives in it,
//     and whether the attribute is a keyed or an ordered collection.
//
//   - Model: One instance per model specification. It is populated by the
//     decoder and is read-only for the lifetime of a validation run.
//
//   - View: The read-only face of a Model. Validators and items only ever see
//     a View, so they cannot mutate the container they are inspecting.
//
// Why declare attributes up front?
//
// Whether "megacomplex" is a label-indexed set or an append-only list is a
// property of the model type, not of a particular file. Fixing it in the Spec
// means the decoder never has to guess, and a misspelled attribute in a user
// file can be detected as residue instead of silently creating a new
// collection.
package model
