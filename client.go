package osspush

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/deploykit/osspush/errors"
	"github.com/deploykit/osspush/internal/token"
)

const (
	// regionAuto marks the client as endpoint-addressed rather than
	// region-routed.
	regionAuto = "auto"

	// requestTimeout is the ceiling for one storage request round trip.
	requestTimeout = 10 * time.Minute

	// dialTimeout bounds connection establishment.
	dialTimeout = 30 * time.Second

	// transportRetries is the SDK-level retry budget for transport
	// failures, distinct from the uploader's own retry loop.
	transportRetries = 5
)

// NewClient constructs an S3 client bound to the issued endpoint and
// credential. The client always uses path-style bucket addressing, which the
// custom endpoint requires. When cred is nil the default AWS credential
// chain is used instead, which is mainly useful for local testing against
// S3-compatible stores.
//
// Construction fails only when the endpoint URL is structurally invalid.
func NewClient(endpoint string, cred *token.Credential) (*s3.Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.NewError("client initialization", errors.ErrConfiguration).
			WithMessage("invalid endpoint URL " + endpoint)
	}

	var cfg aws.Config
	if cred != nil {
		cfg = aws.Config{
			Credentials: credentials.NewStaticCredentialsProvider(
				cred.AccessKeyID, cred.SecretAccessKey, cred.SessionToken),
		}
	} else {
		cfg, err = config.LoadDefaultConfig(context.Background())
		if err != nil {
			return nil, errors.NewError("client initialization", err)
		}
	}

	cfg.Region = regionAuto
	cfg.RetryMaxAttempts = transportRetries

	httpClient := &http.Client{
		Timeout: requestTimeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout: dialTimeout,
			}).DialContext,
		},
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
		o.HTTPClient = httpClient
	})

	return client, nil
}
