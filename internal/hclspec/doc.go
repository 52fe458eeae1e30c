// Package hclspec reads model specifications written in HCL and translates
// them into the generic configuration tree the decoder consumes.
//
// The mapping is block-oriented:
//
//	megacomplex "mc1" {          # block with one label: keyed item
//	  type     = "decay"
//	  k_matrix = ["km1"]
//	}
//
//	constraints {                # block without labels: ordered item
//	  type   = "zero"
//	  target = "s1"
//	}
//
//	relations = [                # top-level attribute: passed through
//	  { source = "s1", target = "s2", parameter = "rel.1" },
//	]
//
// Nested blocks inside an item become nested mappings under the block type.
package hclspec
