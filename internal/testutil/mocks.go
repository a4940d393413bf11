// Package testutil provides test utilities and mocks for storage operations.
// This package is internal and should only be used for testing within the
// osspush module.
package testutil

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/deploykit/osspush/internal/s3api"
)

// MockS3Client is a mock implementation of the s3api.API interface for
// testing. It allows customization of each operation through function fields
// and records the keys of every put it receives, in order.
type MockS3Client struct {
	PutObjectFunc func(context.Context, *s3.PutObjectInput, ...func(*s3.Options)) (*s3.PutObjectOutput, error)

	// PutCalls holds the object key of every PutObject invocation.
	PutCalls []string
}

// PutObject mocks the S3 PutObject operation.
func (m *MockS3Client) PutObject(
	ctx context.Context,
	params *s3.PutObjectInput,
	optFns ...func(*s3.Options),
) (*s3.PutObjectOutput, error) {
	if params != nil && params.Key != nil {
		m.PutCalls = append(m.PutCalls, *params.Key)
	}
	if m.PutObjectFunc != nil {
		return m.PutObjectFunc(ctx, params, optFns...)
	}
	return &s3.PutObjectOutput{}, nil
}

// Verify the mock satisfies the interface it stands in for.
var _ s3api.API = (*MockS3Client)(nil)
