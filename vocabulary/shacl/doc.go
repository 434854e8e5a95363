// Package shacl defines the W3C Shapes Constraint Language vocabulary
// terms the semshapes engine reads and writes: report structure
// (sh:conforms, sh:result, the per-result properties), the three
// severity IRIs, and the constraint component IRIs that validators stamp
// onto each violation.
package shacl
