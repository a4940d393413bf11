// Package internal contains private implementation details for the osspush
// module. These packages are not intended for external use and may change
// without notice.
//
// The internal packages are organized as follows:
//   - signer: HMAC signing for the credential exchange
//   - token: credential exchange against the token-issuing endpoint
//   - walker: local path resolution and file enumeration
//   - objectkey: object key derivation
//   - operations: storage operation implementations
//   - validation: input validation logic
package internal
