// Package token implements the credential exchange against the token-issuing
// endpoint. One signed POST yields a short-lived credential scoped to a
// single bucket, plus the bucket alias and storage endpoint assigned for it.
package token

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/deploykit/osspush/errors"
	"github.com/deploykit/osspush/internal/signer"
)

const (
	// Path is the API path of the token-issuing endpoint. The canonical
	// string signed by the broker is this path joined with the JSON body.
	Path = "/auth/tmp_token.json"

	// channelOSSUpload identifies the upload channel in the token request.
	channelOSSUpload = "OSS_UPLOAD"

	// successCode is the application-level success code inside the
	// response body.
	successCode = 200

	// exchangeTimeout bounds the whole credential exchange round trip.
	exchangeTimeout = 30 * time.Second
)

// Credential is the normalized result of a credential exchange. AccessKeyID
// and SecretAccessKey are guaranteed non-empty; SessionToken, Bucket and
// Endpoint may be empty depending on the upstream response.
type Credential struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string

	// Bucket is the bucket alias assigned by the broker. Uploads target
	// this alias, not the caller-supplied bucket name.
	Bucket string

	// Endpoint is the storage endpoint URL assigned by the broker.
	Endpoint string
}

// Broker fetches temporary credentials from the token-issuing endpoint.
type Broker struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Broker for the given API base URL (scheme + host, no
// trailing path).
func New(baseURL string) *Broker {
	return &Broker{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: exchangeTimeout},
	}
}

// NewWithHTTPClient creates a Broker with a caller-supplied HTTP client.
// This is primarily used for testing.
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Broker {
	return &Broker{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// tokenRequest is the JSON payload of the credential exchange.
type tokenRequest struct {
	Channel string   `json:"channel"`
	Scopes  []string `json:"scopes"`
}

// tokenResponse mirrors the upstream response envelope. Credentials is kept
// loosely typed because the upstream emits several field-name conventions
// for the same logical values.
type tokenResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		Credentials map[string]any `json:"Credentials"`
		Buckets     []struct {
			S3Bucket   string `json:"s3Bucket"`
			S3Endpoint string `json:"s3Endpoint"`
		} `json:"Buckets"`
	} `json:"data"`
}

// Fetch performs the signed credential exchange for the given bucket scope
// and normalizes the response into a Credential.
func (b *Broker) Fetch(ctx context.Context, accessKey, secretKey, bucket string) (*Credential, error) {
	payload, err := json.Marshal(tokenRequest{
		Channel: channelOSSUpload,
		Scopes:  []string{bucket + ":*"},
	})
	if err != nil {
		return nil, errors.NewError("fetchToken", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+Path, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.NewError("fetchToken", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", signer.AuthorizationHeader(accessKey, secretKey, Path, string(payload)))

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewError("fetchToken", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.NewError("fetchToken", &errors.UpstreamError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
		})
	}

	var body tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.NewError("fetchToken", fmt.Errorf("decoding response: %w", err))
	}

	if body.Code != successCode {
		return nil, errors.NewError("fetchToken", &errors.UpstreamError{Message: body.Msg})
	}

	cred := normalize(body)
	if cred.AccessKeyID == "" || cred.SecretAccessKey == "" {
		return nil, errors.NewError("fetchToken", errors.ErrCredential)
	}

	return cred, nil
}

// Alias sets for the credential fields, tried in priority order. Isolated
// here so a new upstream convention only touches these lists.
var (
	accessKeyAliases = []string{"accessKeyId", "AccessKeyId", "accessKey", "AccessKey", "ak", "AK"}
	secretKeyAliases = []string{"secretAccessKey", "SecretAccessKey", "secretKey", "SecretKey", "sk", "SK"}
	tokenAliases     = []string{"sessionToken", "SessionToken", "securityToken", "SecurityToken", "token", "st", "ST"}
)

// normalize maps the raw response onto the canonical Credential, picking
// the first present alias for each field.
func normalize(body tokenResponse) *Credential {
	raw := body.Data.Credentials
	cred := &Credential{
		AccessKeyID:     pick(raw, accessKeyAliases),
		SecretAccessKey: pick(raw, secretKeyAliases),
		SessionToken:    pick(raw, tokenAliases),
	}

	if len(body.Data.Buckets) > 0 {
		// Multiple bucket assignments are not part of the observed
		// contract; the first entry wins.
		cred.Bucket = body.Data.Buckets[0].S3Bucket
		cred.Endpoint = body.Data.Buckets[0].S3Endpoint
	}

	return cred
}

// pick returns the first non-empty string value among the aliased keys.
func pick(raw map[string]any, aliases []string) string {
	for _, name := range aliases {
		if v, ok := raw[name]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}
