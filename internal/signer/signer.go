// Package signer builds the HMAC-SHA1 authorization token used by the
// credential exchange. The token endpoint expects the request path and the
// JSON body joined by a newline, signed with the caller's long-lived secret.
package signer

import (
	"crypto/hmac"
	"crypto/sha1" //nolint:gosec // the token endpoint contract mandates HMAC-SHA1
	"encoding/hex"
	"fmt"
)

// Sign computes the lowercase hex HMAC-SHA1 digest of path + "\n" + body
// keyed with secret. It is deterministic for fixed inputs.
func Sign(secret, path, body string) string {
	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write([]byte(path + "\n" + body))
	return hex.EncodeToString(mac.Sum(nil))
}

// AuthorizationHeader renders the Authorization header value for a signed
// request: "TOKEN {accessKey}:{signature}".
func AuthorizationHeader(accessKey, secret, path, body string) string {
	return fmt.Sprintf("TOKEN %s:%s", accessKey, Sign(secret, path, body))
}
