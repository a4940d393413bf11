// Package operations contains the storage operation implementations.
// These functions handle the low-level AWS SDK interactions.
//
// Each operation is isolated into its own subpackage for better organization
// and testability.
package operations
