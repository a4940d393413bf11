// Package osspush uploads a local file or directory tree to an
// S3-compatible bucket, authenticating through a short-lived credential
// obtained from an HMAC-signed token exchange.
//
// A run is a single linear pipeline: validate inputs, fetch one temporary
// credential, build one storage client bound to the issued endpoint,
// enumerate the local files, and upload them sequentially with bounded
// retry on transient failures. The credential lives for the run only and is
// never persisted.
package osspush
