// Package osspush provides functional options for configuring a run.
// These follow the functional options pattern for clean, composable
// configuration.
package osspush

import (
	"net/http"

	"github.com/input-output-hk/catalyst-forge-libs/fs"
	"github.com/rs/zerolog"

	"github.com/deploykit/osspush/internal/s3api"
)

// Option configures a Run.
type Option func(*runConfig)

// runConfig holds the resolved configuration of one run.
type runConfig struct {
	apiBaseURL string
	workDir    string
	fsys       fs.Filesystem
	logger     zerolog.Logger
	httpClient *http.Client
	s3Client   s3api.API
}

// WithAPIBaseURL sets the base URL (scheme + host) of the token-issuing
// endpoint. Required; a run fails validation without it.
func WithAPIBaseURL(baseURL string) Option {
	return func(c *runConfig) {
		c.apiBaseURL = baseURL
	}
}

// WithWorkDir sets the directory against which a relative local path is
// resolved. Defaults to the process working directory.
func WithWorkDir(dir string) Option {
	return func(c *runConfig) {
		c.workDir = dir
	}
}

// WithFilesystem sets the filesystem implementation used for enumeration and
// reading file bodies. Defaults to the OS filesystem. This is useful for
// testing with an in-memory filesystem.
func WithFilesystem(fsys fs.Filesystem) Option {
	return func(c *runConfig) {
		c.fsys = fsys
	}
}

// WithLogger sets the logger for run progress and retry reporting.
// Defaults to a disabled logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *runConfig) {
		c.logger = logger
	}
}

// WithHTTPClient sets the HTTP client used for the credential exchange.
// This is primarily used for testing.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *runConfig) {
		c.httpClient = httpClient
	}
}

// WithStorageClient supplies a pre-built storage client, bypassing client
// construction from the issued endpoint. This is primarily used for testing
// with mocked clients.
func WithStorageClient(client s3api.API) Option {
	return func(c *runConfig) {
		c.s3Client = client
	}
}
