package httpclient_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datacat-dev/datacat/internal/httpclient"
)

func TestHTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		statusCode    int
		url           string
		message       string
		expectedError string
		errorContains []string
	}{
		{
			name:          "create HTTPError with all fields",
			statusCode:    404,
			url:           "http://example.com",
			message:       "Not Found",
			expectedError: "HTTP 404 for URL http://example.com: Not Found",
			errorContains: []string{"HTTP 404", "http://example.com", "Not Found"},
		},
		{
			name:          "format error message correctly for 500",
			statusCode:    500,
			url:           "http://api.example.com/v1/datasets",
			message:       "Internal Server Error",
			expectedError: "HTTP 500 for URL http://api.example.com/v1/datasets: Internal Server Error",
		},
		{
			name:          "handle empty message",
			statusCode:    404,
			url:           "http://example.com",
			message:       "",
			expectedError: "HTTP 404 for URL http://example.com: ",
		},
		{
			name:          "handle URL with query and fragment",
			statusCode:    404,
			url:           "http://example.com/path?query=value&foo=bar#anchor",
			message:       "Not Found",
			errorContains: []string{"http://example.com/path?query=value&foo=bar#anchor"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := httpclient.NewHTTPError(tt.statusCode, tt.url, tt.message)

			require.Error(t, err)

			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, err.Error())
			}

			for _, contains := range tt.errorContains {
				assert.Contains(t, err.Error(), contains)
			}
		})
	}
}
