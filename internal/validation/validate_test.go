package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploykit/osspush/errors"
)

func TestValidateObjectKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{name: "plain filename", key: "index.js", wantErr: false},
		{name: "nested key", key: "assets/css/b.css", wantErr: false},
		{name: "unicode key", key: "docs/说明.txt", wantErr: false},
		{name: "empty key", key: "", wantErr: true},
		{name: "traversal", key: "../etc/passwd", wantErr: true},
		{name: "embedded traversal", key: "a/../../b", wantErr: true},
		{name: "absolute key", key: "/etc/passwd", wantErr: true},
		{name: "control character", key: "bad\x00key", wantErr: true},
		{name: "over length limit", key: strings.Repeat("k", 1025), wantErr: true},
		{name: "at length limit", key: strings.Repeat("k", 1024), wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateObjectKey(tt.key)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsInvalidInput(err))
				return
			}
			require.NoError(t, err)
		})
	}
}
