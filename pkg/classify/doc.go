// Package classify assigns colors, titles, and size tiers to dependency
// graph nodes.
//
// Classification follows a strict priority policy, highest first:
//
//  1. Root: the project root always gets the reserved gold color, even
//     when a community partition assigns it a community.
//  2. Community: nodes with a partition entry are colored from a fixed
//     qualitative palette indexed by community ID modulo palette size.
//  3. Direct: remaining members of the direct set get the direct color.
//  4. Transitive: everything else gets the transitive color.
//
// The policy is total: every node matches exactly one tier, and tier 4 is
// an unconditional catch-all. A [Classifier] is a pure function of the
// root name, the direct set, and the optional partition — classifying the
// same graph twice yields byte-identical results.
package classify
