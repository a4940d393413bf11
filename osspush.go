// Package osspush provides the run orchestrator.
package osspush

import (
	"context"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/input-output-hk/catalyst-forge-libs/fs/billy"
	"github.com/rs/zerolog"

	"github.com/deploykit/osspush/errors"
	"github.com/deploykit/osspush/internal/objectkey"
	"github.com/deploykit/osspush/internal/operations/upload"
	"github.com/deploykit/osspush/internal/token"
	"github.com/deploykit/osspush/internal/validation"
	"github.com/deploykit/osspush/internal/walker"
)

// DefaultContentType is the content type used when detection fails.
const DefaultContentType = "application/octet-stream"

// Input holds the caller-supplied parameters of one run. All fields except
// Prefix are required. Input is immutable for the run.
type Input struct {
	// AccessKey and SecretKey are the long-lived credentials used to sign
	// the token exchange. They never reach the storage endpoint.
	AccessKey string
	SecretKey string

	// Bucket is the bucket name the credential is scoped to. Uploads go to
	// the alias the broker assigns for it, not to this name directly.
	Bucket string

	// LocalPath is the file or directory to upload, absolute or relative to
	// the run's working directory.
	LocalPath string

	// Prefix is an optional remote key prefix.
	Prefix string
}

// Result summarizes a completed run.
type Result struct {
	// Uploaded is the number of objects uploaded.
	Uploaded int

	// Bytes is the total number of body bytes uploaded.
	Bytes int64

	// Duration is the wall-clock duration of the run.
	Duration time.Duration
}

// Run states, in pipeline order. Terminal outcomes are a returned *Result
// (done) or an error (failed).
const (
	stateValidatingInput    = "validating_input"
	stateFetchingCredential = "fetching_credential"
	stateBuildingClient     = "building_client"
	stateEnumerating        = "enumerating"
	stateUploading          = "uploading"
)

// Run executes one upload batch: validate inputs, fetch a temporary
// credential, build the storage client, enumerate local files, and upload
// them sequentially. The first fatal error aborts the remaining batch;
// already-uploaded objects are left in place.
func Run(ctx context.Context, in Input, opts ...Option) (*Result, error) {
	cfg := &runConfig{
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.fsys == nil {
		cfg.fsys = billy.NewOSFS("/")
	}
	if cfg.workDir == "" {
		if wd, err := os.Getwd(); err == nil {
			cfg.workDir = wd
		}
	}

	start := time.Now()
	log := cfg.logger

	log.Debug().Str("state", stateValidatingInput).Msg("run state")
	if err := validateInput(in, cfg); err != nil {
		return nil, err
	}
	if _, err := walker.Locate(cfg.fsys, cfg.workDir, in.LocalPath); err != nil {
		return nil, err
	}

	log.Debug().Str("state", stateFetchingCredential).Msg("run state")
	broker := token.New(cfg.apiBaseURL)
	if cfg.httpClient != nil {
		broker = token.NewWithHTTPClient(cfg.apiBaseURL, cfg.httpClient)
	}
	cred, err := broker.Fetch(ctx, in.AccessKey, in.SecretKey, in.Bucket)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("bucket", cred.Bucket).
		Str("endpoint", cred.Endpoint).
		Msg("temporary credential issued")

	log.Debug().Str("state", stateBuildingClient).Msg("run state")
	if cred.Bucket == "" || cred.Endpoint == "" {
		return nil, errors.NewError("run", errors.ErrConfiguration)
	}
	s3Client := cfg.s3Client
	if s3Client == nil {
		s3Client, err = NewClient(cred.Endpoint, cred)
		if err != nil {
			return nil, err
		}
	}

	log.Debug().Str("state", stateEnumerating).Msg("run state")
	_, entries, err := walker.Resolve(cfg.fsys, cfg.workDir, in.LocalPath)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		log.Info().Msg("nothing to upload")
		return &Result{Duration: time.Since(start)}, nil
	}

	log.Debug().Str("state", stateUploading).Int("files", len(entries)).Msg("run state")
	uploader := upload.New(s3Client, log)
	result := &Result{}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, errors.NewError("run", err)
		}

		body, err := cfg.fsys.ReadFile(entry.Path)
		if err != nil {
			return nil, errors.NewError("run", err).WithKey(entry.RelPath)
		}

		key := objectkey.Derive(entry.RelPath, in.Prefix)
		if err := validation.ValidateObjectKey(key); err != nil {
			return nil, err
		}

		task := upload.Task{
			Key:         key,
			Body:        body,
			ContentType: detectContentType(entry.Path, body),
		}
		if err := uploader.Put(ctx, cred.Bucket, task); err != nil {
			return nil, err
		}

		result.Uploaded++
		result.Bytes += int64(len(body))
		log.Info().
			Str("key", task.Key).
			Int("size", len(body)).
			Msg("uploaded")
	}

	result.Duration = time.Since(start)
	log.Info().
		Int("files", result.Uploaded).
		Int64("bytes", result.Bytes).
		Dur("duration", result.Duration).
		Msg("upload complete")
	return result, nil
}

// validateInput checks the caller contract before any network activity.
func validateInput(in Input, cfg *runConfig) error {
	switch {
	case in.AccessKey == "":
		return errors.NewError("run", errors.ErrInvalidInput).WithMessage("access key is required")
	case in.SecretKey == "":
		return errors.NewError("run", errors.ErrInvalidInput).WithMessage("secret key is required")
	case in.Bucket == "":
		return errors.NewError("run", errors.ErrInvalidInput).WithMessage("bucket is required")
	case in.LocalPath == "":
		return errors.NewError("run", errors.ErrInvalidInput).WithMessage("local path is required")
	case cfg.apiBaseURL == "":
		return errors.NewError("run", errors.ErrInvalidInput).WithMessage("API base URL is required")
	}
	return nil
}

// detectContentType infers a content type from the file extension, falling
// back to sniffing the body for extensionless files, then to the generic
// binary type.
func detectContentType(path string, body []byte) string {
	if ext := strings.ToLower(filepath.Ext(path)); ext != "" {
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			return byExt
		}
	}

	if len(body) > 0 {
		if mt := mimetype.Detect(body); mt != nil {
			return mt.String()
		}
	}

	return DefaultContentType
}
