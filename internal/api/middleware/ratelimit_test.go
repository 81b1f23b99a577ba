package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/nitk/memory-vault/internal/api/middleware"
	"github.com/nitk/memory-vault/internal/mocks"
	"github.com/nitk/memory-vault/internal/ratelimit"
)

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		subject    string
		key        string
		decision   ratelimit.Decision
		err        error
		wantStatus int
		wantHeader map[string]string
	}{
		{
			name:       "allowed by client ip",
			key:        "ip:192.0.2.1",
			decision:   ratelimit.Decision{Allowed: true, Remaining: 4},
			wantStatus: http.StatusOK,
			wantHeader: map[string]string{middleware.RATE_LIMIT_REMAINING_HEADER: "4"},
		},
		{
			name:       "allowed by subject",
			subject:    "student-42",
			key:        "sub:student-42",
			decision:   ratelimit.Decision{Allowed: true},
			wantStatus: http.StatusOK,
			wantHeader: map[string]string{middleware.RATE_LIMIT_REMAINING_HEADER: "0"},
		},
		{
			name:       "rejected",
			key:        "ip:192.0.2.1",
			decision:   ratelimit.Decision{RetryAfter: 1500 * time.Millisecond},
			wantStatus: http.StatusTooManyRequests,
			wantHeader: map[string]string{middleware.RETRY_AFTER_HEADER: "2"},
		},
		{
			name:       "limiter error lets the request through",
			key:        "ip:192.0.2.1",
			err:        errors.New("limiter down"),
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			limiter := mocks.NewMockLimiter(ctrl)
			limiter.EXPECT().Allow(gomock.Any(), tt.key).Return(tt.decision, tt.err)

			router := gin.New()
			router.POST("/uploads",
				func(c *gin.Context) {
					if tt.subject != "" {
						c.Set(middleware.AUTH_SUBJECT_KEY, tt.subject)
					}
				},
				middleware.RateLimit(limiter),
				func(c *gin.Context) { c.Status(http.StatusOK) },
			)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/uploads", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			for header, value := range tt.wantHeader {
				assert.Equal(t, value, w.Header().Get(header))
			}
			if tt.wantStatus == http.StatusTooManyRequests {
				assert.Contains(t, w.Body.String(), `"code":"too_many_requests"`)
			}
		})
	}
}
