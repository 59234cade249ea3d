// Package vividvalid is an email validation engine. It checks whether an
// address is syntactically well-formed, addressable via DNS, and, where
// policy permits, actually deliverable to a mailbox, producing a structured
// verdict (valid / risky / invalid) with a 0-100 confidence score and a
// breakdown of contributing factors.
//
// Basic usage:
//
//	v := vividvalid.New(vividvalid.Config{})
//	result := v.Validate(ctx, "user@example.com", vividvalid.DefaultOptions())
//
// Batches run through the bulk scheduler, which deduplicates, caches and
// fans out with bounded concurrency:
//
//	report, err := v.ValidateBatch(ctx, emails, vividvalid.DefaultBulkOptions())
package vividvalid

import "github.com/jaainil/vivid-valid/types"

// Re-exports from the types package so that consumers don't need to import
// the types package directly.
type (
	ValidationResult = types.ValidationResult
	Factors          = types.Factors
	DomainHealth     = types.DomainHealth
	BulkReport       = types.BulkReport
	BulkSummary      = types.BulkSummary
	Status           = types.Status
	Deliverability   = types.Deliverability
)

// Status constants re-exported.
const (
	StatusValid   = types.StatusValid
	StatusRisky   = types.StatusRisky
	StatusInvalid = types.StatusInvalid
	StatusError   = types.StatusError
)

// Deliverability constants re-exported.
const (
	DeliverableYes     = types.DeliverableYes
	DeliverableNo      = types.DeliverableNo
	DeliverableUnknown = types.DeliverableUnknown
)
