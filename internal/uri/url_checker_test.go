package uri_test

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitk/memory-vault/internal/mocks"
	"github.com/nitk/memory-vault/internal/uri"
)

func response(status int) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader(nil)),
	}
}

func TestURLChecker_Check(t *testing.T) {
	const url = "https://ipfs.io/ipfs/" + testCID

	tests := []struct {
		name           string
		url            string
		setupMocks     func(*mocks.MockHTTPClient, *mocks.MockIO)
		expectedStatus uri.HealthStatus
		expectedError  string
	}{
		{
			name: "HEAD succeeds",
			url:  url,
			setupMocks: func(mockHTTP *mocks.MockHTTPClient, mockIO *mocks.MockIO) {
				mockHTTP.EXPECT().Head(gomock.Any(), url).Return(response(http.StatusOK), nil)
				mockHTTP.EXPECT().GetResponse(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			expectedStatus: uri.HealthStatusHealthy,
		},
		{
			name: "HEAD rejected, ranged GET returns partial content",
			url:  url,
			setupMocks: func(mockHTTP *mocks.MockHTTPClient, mockIO *mocks.MockIO) {
				mockHTTP.EXPECT().Head(gomock.Any(), url).Return(response(http.StatusMethodNotAllowed), nil)
				mockHTTP.EXPECT().
					GetResponse(gomock.Any(), url, map[string]string{"Range": "bytes=0-1023"}).
					Return(response(http.StatusPartialContent), nil)
				mockIO.EXPECT().Discard(gomock.Any()).Return(nil)
			},
			expectedStatus: uri.HealthStatusHealthy,
		},
		{
			name: "HEAD fails, GET ignores range",
			url:  url,
			setupMocks: func(mockHTTP *mocks.MockHTTPClient, mockIO *mocks.MockIO) {
				mockHTTP.EXPECT().Head(gomock.Any(), url).Return(nil, errors.New("connection reset"))
				mockHTTP.EXPECT().GetResponse(gomock.Any(), url, gomock.Any()).Return(response(http.StatusOK), nil)
				mockIO.EXPECT().Discard(gomock.Any()).Return(nil)
			},
			expectedStatus: uri.HealthStatusHealthy,
		},
		{
			name: "content not found",
			url:  url,
			setupMocks: func(mockHTTP *mocks.MockHTTPClient, mockIO *mocks.MockIO) {
				mockHTTP.EXPECT().Head(gomock.Any(), url).Return(response(http.StatusNotFound), nil)
				mockHTTP.EXPECT().GetResponse(gomock.Any(), url, gomock.Any()).Return(response(http.StatusNotFound), nil)
				mockIO.EXPECT().Discard(gomock.Any()).Return(nil)
			},
			expectedStatus: uri.HealthStatusBroken,
			expectedError:  "HTTP 404",
		},
		{
			name: "gateway unreachable",
			url:  url,
			setupMocks: func(mockHTTP *mocks.MockHTTPClient, mockIO *mocks.MockIO) {
				mockHTTP.EXPECT().Head(gomock.Any(), url).Return(nil, errors.New("timeout"))
				mockHTTP.EXPECT().GetResponse(gomock.Any(), url, gomock.Any()).Return(nil, errors.New("timeout"))
			},
			expectedStatus: uri.HealthStatusBroken,
			expectedError:  "timeout",
		},
		{
			name:           "relative path is not checked",
			url:            "/placeholder.svg",
			setupMocks:     func(mockHTTP *mocks.MockHTTPClient, mockIO *mocks.MockIO) {},
			expectedStatus: uri.HealthStatusBroken,
			expectedError:  "only HTTP/HTTPS URLs are supported",
		},
		{
			name:           "unsupported scheme",
			url:            "ipfs://" + testCID,
			setupMocks:     func(mockHTTP *mocks.MockHTTPClient, mockIO *mocks.MockIO) {},
			expectedStatus: uri.HealthStatusBroken,
			expectedError:  "only HTTP/HTTPS URLs are supported",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockHTTP := mocks.NewMockHTTPClient(ctrl)
			mockIO := mocks.NewMockIO(ctrl)
			tt.setupMocks(mockHTTP, mockIO)

			result := uri.NewURLChecker(mockHTTP, mockIO).Check(t.Context(), tt.url)
			assert.Equal(t, tt.expectedStatus, result.Status)
			assert.Equal(t, tt.expectedStatus == uri.HealthStatusHealthy, result.Healthy())
			if tt.expectedError == "" {
				assert.Nil(t, result.Error)
				return
			}
			require.NotNil(t, result.Error)
			assert.Contains(t, *result.Error, tt.expectedError)
		})
	}
}
