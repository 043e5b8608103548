// Package writers turns engine results into serialized outputs.
//
// Design:
//   - Writers own all presentation knowledge (text tables, pretty blocks, JSON).
//   - The core stays domain-only; the app layer only picks a kind and format.
//   - JSON goes through pkg/api (v1) for a stable wire format.
package writers
