package middleware_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitk/memory-vault/internal/api/middleware"
)

func generateKey(t *testing.T) (*rsa.PrivateKey, string) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	require.NoError(t, err)

	return privateKey, string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.RegisteredClaims) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestNewAuthenticator_InvalidKey(t *testing.T) {
	_, err := middleware.NewAuthenticator(middleware.AuthConfig{JWTPublicKey: "not a pem"})
	assert.Error(t, err)
}

func TestAuthenticate(t *testing.T) {
	privateKey, publicKeyPEM := generateKey(t)
	otherKey, _ := generateKey(t)

	authenticator, err := middleware.NewAuthenticator(middleware.AuthConfig{
		JWTPublicKey: publicKeyPEM,
		APIKeys:      []string{"key-1", "", "key-2"},
	})
	require.NoError(t, err)

	valid := signToken(t, privateKey, jwt.RegisteredClaims{
		Subject:   "did:key:z6Mkuploader",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	expired := signToken(t, privateKey, jwt.RegisteredClaims{
		Subject:   "did:key:z6Mkuploader",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	foreign := signToken(t, otherKey, jwt.RegisteredClaims{Subject: "mallory"})
	hmac, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "mallory"}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name            string
		header          string
		expectedType    string
		expectedSubject string
		expectedErr     bool
	}{
		{name: "valid jwt", header: "Bearer " + valid, expectedType: middleware.AUTH_TYPE_JWT, expectedSubject: "did:key:z6Mkuploader"},
		{name: "scheme is case-insensitive", header: "bearer " + valid, expectedType: middleware.AUTH_TYPE_JWT, expectedSubject: "did:key:z6Mkuploader"},
		{name: "expired jwt", header: "Bearer " + expired, expectedErr: true},
		{name: "jwt signed by another key", header: "Bearer " + foreign, expectedErr: true},
		{name: "hmac jwt", header: "Bearer " + hmac, expectedErr: true},
		{name: "first api key", header: "ApiKey key-1", expectedType: middleware.AUTH_TYPE_APIKEY},
		{name: "second api key", header: "ApiKey key-2", expectedType: middleware.AUTH_TYPE_APIKEY},
		{name: "unknown api key", header: "ApiKey key-3", expectedErr: true},
		{name: "missing header", header: "", expectedErr: true},
		{name: "missing credentials", header: "Bearer", expectedErr: true},
		{name: "unsupported scheme", header: "Basic dXNlcjpwYXNz", expectedErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := authenticator.Authenticate(tt.header)
			if tt.expectedErr {
				assert.Error(t, err)
				assert.Nil(t, result)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedType, result.AuthType)
			assert.Equal(t, tt.expectedSubject, result.AuthSubject)
		})
	}
}

func TestAuthenticate_Unconfigured(t *testing.T) {
	authenticator, err := middleware.NewAuthenticator(middleware.AuthConfig{})
	require.NoError(t, err)

	_, err = authenticator.Authenticate("ApiKey anything")
	assert.Error(t, err)

	_, err = authenticator.Authenticate("Bearer a.b.c")
	assert.Error(t, err)
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	authenticator, err := middleware.NewAuthenticator(middleware.AuthConfig{APIKeys: []string{"key-1"}})
	require.NoError(t, err)

	router := gin.New()
	router.POST("/protected", middleware.Auth(authenticator), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(middleware.AUTH_TYPE_KEY))
	})

	t.Run("authorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/protected", nil)
		req.Header.Set("Authorization", "ApiKey key-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, middleware.AUTH_TYPE_APIKEY, w.Body.String())
	})

	t.Run("unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/protected", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"code":"unauthorized"`)
	})
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(middleware.RequestID())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(middleware.REQUEST_ID_KEY))
	})

	t.Run("reuses a valid id", func(t *testing.T) {
		const id = "4f6c6f8e-8c4b-4b8e-9f3a-1d2e3f4a5b6c"
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.REQUEST_ID_HEADER, id)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, id, w.Body.String())
		assert.Equal(t, id, w.Header().Get(middleware.REQUEST_ID_HEADER))
	})

	t.Run("replaces an invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.REQUEST_ID_HEADER, "<script>")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.NotEqual(t, "<script>", w.Body.String())
		assert.Len(t, w.Body.String(), 36)
	})
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"internal_error"`)
}
