// Package writers turns matching tables into serialized outputs.
//
// Design:
//   - Writers own all presentation knowledge (TSV, JSON, JSONL).
//   - The anchor evaluator stays domain-only.
//   - JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
