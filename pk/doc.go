// Package pk provides the pharmacokinetic dosing engine for a small set of
// antibiotics: vancomycin (intermittent and continuous infusion), gentamicin,
// amikacin, and tobramycin.
//
// # Reading Guide
//
// Start with these three files to understand the pipeline:
//   - clearance.go: creatinine clearance estimation (pediatric Schwartz family
//     vs. adult Cockcroft-Gault)
//   - simulate.go: one-compartment closed-form simulation (Ke, half-life,
//     Cmax, Cmin, AUC) plus the concentration-time curve
//   - evaluate.go: rule-based classification against therapeutic ranges and
//     dose/interval adjustment suggestions
//
// # Architecture
//
// The engine is a synchronous, request-scoped pipeline:
//
//	PatientInput -> EstimateClearance -> Simulate -> Evaluate -> Result
//
// drug.go holds the per-antibiotic profile table (volume of distribution,
// infusion duration, elimination-rate regression) as data rather than inline
// branching; ranges.go holds the therapeutic-range table, immutable after
// startup. Both tables are plain values so the Engine carries no mutable
// state and needs no synchronization.
//
// All computation is closed-form arithmetic; there is no I/O, no logging,
// and no persistence inside this package. Rendering (chart payloads, the
// printable report) lives in pk/report, and the HTTP adapter in server.
package pk
