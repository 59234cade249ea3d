package vividvalid_test

import (
	"context"
	"fmt"
	"time"

	vividvalid "github.com/jaainil/vivid-valid"
)

// Example demonstrates a single validation with the default pipeline.
func Example() {
	v := vividvalid.New(vividvalid.Config{
		SMTPFromDomain: "verify.myapp.com",
	})

	result := v.Validate(context.Background(), "user@example.com", vividvalid.DefaultOptions())
	fmt.Println(result.Status, result.Score)
}

// Example_strict shows strict mode: tighter parsing and higher thresholds.
func Example_strict() {
	v := vividvalid.New(vividvalid.Config{})

	opts := vividvalid.DefaultOptions()
	opts.StrictMode = true
	opts.SMTPTimeout = 3 * time.Second

	result := v.Validate(context.Background(), "user+tag@example.com", opts)
	fmt.Println(result.Status, result.Reason)
}

// Example_batch validates a list with deduplication and caching.
func Example_batch() {
	v := vividvalid.New(vividvalid.Config{})

	report, err := v.ValidateBatch(context.Background(), []string{
		"a@example.com",
		"b@example.com",
		"A@example.com", // duplicate of the first
	}, vividvalid.DefaultBulkOptions())
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(report.Processed, report.DuplicatesRemoved)
}
