// Package domain defines the core business entities for equipcheck.
//
// This package is part of the hexagonal architecture's innermost layer.
// It defines the inspection graph and the values derived from it:
//
//   - Inspection: One equipment inspection and its checklist
//   - InspectionItem: A checklist category
//   - InspectionQuestion: A question and its Answer
//   - Photo: Evidence attached to an answer
//
// Every type is a value. Changes are made by rebuilding the path from the
// edited node up to the Inspection with the With* helpers, so a changed
// inspection never shares mutable slices with its previous version.
//
// # Import Rules
//
//   - Can Import: Standard library and github.com/google/uuid
//   - Cannot Import: Any internal/ package
package domain
