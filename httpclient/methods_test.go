// httpclient/methods_test.go
package httpclient

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_normalizeMethod(t *testing.T) {
	type args struct {
		method string
	}
	tests := []struct {
		name    string
		args    args
		want    string
		wantErr error
	}{
		{
			name: "testing a supported method",
			args: args{
				method: http.MethodGet,
			},
			want: http.MethodGet,
		},
		{
			name: "testing a lower case method",
			args: args{
				method: "patch",
			},
			want: http.MethodPatch,
		},
		{
			name: "testing an unsupported method",
			args: args{
				method: http.MethodOptions,
			},
			wantErr: ErrUnsupportedMethod,
		},
		{
			name: "testing an empty method",
			args: args{
				method: "",
			},
			wantErr: ErrUnsupportedMethod,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeMethod(tt.args.method)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_isSafeHTTPMethod(t *testing.T) {
	assert.True(t, isSafeHTTPMethod(http.MethodGet))
	assert.True(t, isSafeHTTPMethod(http.MethodHead))
	assert.False(t, isSafeHTTPMethod(http.MethodPost))
	assert.False(t, isSafeHTTPMethod(http.MethodDelete))
}
