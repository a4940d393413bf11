package osspush

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploykit/osspush/errors"
	"github.com/deploykit/osspush/internal/token"
)

func TestNewClient(t *testing.T) {
	cred := &token.Credential{
		AccessKeyID:     "tmp-id",
		SecretAccessKey: "tmp-sec",
		SessionToken:    "tmp-tok",
	}

	tests := []struct {
		name     string
		endpoint string
		wantErr  bool
	}{
		{name: "https endpoint", endpoint: "https://oss.example.com", wantErr: false},
		{name: "http endpoint", endpoint: "http://127.0.0.1:9000", wantErr: false},
		{name: "missing scheme", endpoint: "oss.example.com", wantErr: true},
		{name: "empty endpoint", endpoint: "", wantErr: true},
		{name: "garbage", endpoint: "://nope", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.endpoint, cred)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, errors.ErrConfiguration)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestNewClient_UsesPathStyle(t *testing.T) {
	cred := &token.Credential{AccessKeyID: "id", SecretAccessKey: "sec"}

	client, err := NewClient("https://oss.example.com", cred)
	require.NoError(t, err)

	opts := client.Options()
	assert.True(t, opts.UsePathStyle)
	assert.Equal(t, regionAuto, opts.Region)
	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "https://oss.example.com", *opts.BaseEndpoint)
}
