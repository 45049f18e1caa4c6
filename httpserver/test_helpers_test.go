package httpserver_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"moviebot/pkg/config"
	"moviebot/pkg/jwt"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-jwt-secret"

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = testJWTSecret
	return cfg
}

func signTestToken() (string, error) {
	return signToken(testJWTSecret)
}

func signToken(secret string) (string, error) {
	return jwt.NewProvider(secret, 1*time.Hour).GenerateOperatorToken("operator")
}

type apiResponse struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
	Info    string          `json:"info"`
}

func decodeAPIResponse(t *testing.T, rec *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func decodeListResult[T any](t *testing.T, resp apiResponse) []T {
	t.Helper()
	var result struct {
		Data []T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Result, &result))
	return result.Data
}
