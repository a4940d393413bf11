// Package upload handles put-object operations with bounded retry.
//
// Transient failures (timeouts and errors the transport marks retryable) are
// retried with a linear backoff; everything else propagates immediately.
package upload

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/deploykit/osspush/errors"
	"github.com/deploykit/osspush/internal/s3api"
)

const (
	// maxAttempts is the total put budget per object, first try included.
	maxAttempts = 3

	// backoffStep and backoffCap shape the wait before each retry:
	// min(backoffStep * attempt, backoffCap).
	backoffStep = 2 * time.Second
	backoffCap  = 8 * time.Second
)

// Task is one object to upload.
type Task struct {
	Key         string
	Body        []byte
	ContentType string
}

// Uploader performs put-object calls against a fixed client.
type Uploader struct {
	s3Client s3api.API
	logger   zerolog.Logger

	// newBackOff produces the retry policy for one task. Overridden in
	// tests to avoid real sleeps.
	newBackOff func() backoff.BackOff
}

// New creates a new Uploader instance.
func New(s3Client s3api.API, logger zerolog.Logger) *Uploader {
	return &Uploader{
		s3Client: s3Client,
		logger:   logger,
		newBackOff: func() backoff.BackOff {
			return backoff.WithMaxRetries(&linearBackOff{}, maxAttempts-1)
		},
	}
}

// Put uploads one task, retrying transient failures up to the attempt
// budget. A non-retryable failure, or exhaustion of the budget, surfaces as
// an error wrapping errors.ErrUploadFailed and aborts the caller's batch.
func (u *Uploader) Put(ctx context.Context, bucket string, task Task) error {
	attempt := 0

	operation := func() error {
		attempt++
		_, err := u.s3Client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(bucket),
			Key:           aws.String(task.Key),
			Body:          bytes.NewReader(task.Body),
			ContentType:   aws.String(task.ContentType),
			ContentLength: aws.Int64(int64(len(task.Body))),
		})
		if err == nil {
			return nil
		}
		if !isTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		u.logger.Warn().
			Str("key", task.Key).
			Int("attempt", attempt).
			Dur("backoff", wait).
			Str("reason", failureReason(err)).
			Msg("retrying upload")
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(u.newBackOff(), ctx), notify); err != nil {
		return errors.NewError("upload",
			fmt.Errorf("%w after %d attempt(s): %w", errors.ErrUploadFailed, attempt, err)).
			WithBucket(bucket).
			WithKey(task.Key)
	}

	return nil
}

// linearBackOff waits min(backoffStep * attempt, backoffCap) before each
// retry: 2s before the second attempt, 4s before the third.
type linearBackOff struct {
	attempt int
}

// NextBackOff implements backoff.BackOff.
func (l *linearBackOff) NextBackOff() time.Duration {
	l.attempt++
	wait := time.Duration(l.attempt) * backoffStep
	if wait > backoffCap {
		wait = backoffCap
	}
	return wait
}

// Reset implements backoff.BackOff.
func (l *linearBackOff) Reset() {
	l.attempt = 0
}

// isTransient reports whether a put failure is worth retrying: request
// timeouts and errors the transport explicitly marks retryable.
func isTransient(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if stderrors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var retryable interface{ RetryableError() bool }
	if stderrors.As(err, &retryable) {
		return retryable.RetryableError()
	}

	return false
}

// failureReason extracts a compact reason for retry log lines, preferring
// the service error code when one is present.
func failureReason(err error) string {
	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return err.Error()
}
