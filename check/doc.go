// Package check contains the probe stages of the validation pipeline: typo
// correction, disposable classification, DNS resolution, the SMTP envelope
// probe, and the domain health probe. Each stage returns its own record;
// the coordinator in the root package folds them into the final result.
// Syntax validation lives in internal/parse, since its output (the parsed
// address) is the input of every stage here.
package check
