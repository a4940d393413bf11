package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpstreamError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *UpstreamError
		want string
	}{
		{
			name: "http failure",
			err:  &UpstreamError{StatusCode: 403, Status: "Forbidden"},
			want: "token endpoint returned 403 Forbidden",
		},
		{
			name: "application failure",
			err:  &UpstreamError{Message: "scope denied"},
			want: "token endpoint rejected request: scope denied",
		},
		{
			name: "application failure without reason",
			err:  &UpstreamError{},
			want: "token endpoint rejected request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

// The op wrapper supplies the module prefix; the upstream error must not
// repeat it.
func TestUpstreamError_WrappedRendersSinglePrefix(t *testing.T) {
	err := NewError("fetchToken", &UpstreamError{StatusCode: 500, Status: "Internal Server Error"})
	assert.Equal(t, "osspush.fetchToken: token endpoint returned 500 Internal Server Error", err.Error())
}
