package github

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	domainErrors "github.com/Tomas-vilte/MateReview/internal/domain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestRequestDeviceCode(t *testing.T) {
	t.Run("should parse the device code response", func(t *testing.T) {
		mockHTTP := &MockHTTPClient{}
		flow := NewDeviceFlow(mockHTTP, "client-id")

		mockHTTP.On("Do", mock.MatchedBy(func(req *http.Request) bool {
			return req.Method == http.MethodPost &&
				req.URL.String() == deviceCodeURL &&
				req.Header.Get("Accept") == "application/json"
		})).Return(jsonResponse(200, `{
			"device_code": "dc-1",
			"user_code": "ABCD-1234",
			"verification_uri": "https://github.com/login/device",
			"expires_in": 900,
			"interval": 5
		}`), nil)

		code, err := flow.RequestDeviceCode(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "dc-1", code.DeviceCode)
		assert.Equal(t, "ABCD-1234", code.UserCode)
		assert.Equal(t, 5, code.Interval)
		assert.Equal(t, 900, code.ExpiresIn)
	})

	t.Run("should classify a non-2xx response as a remote rejection", func(t *testing.T) {
		mockHTTP := &MockHTTPClient{}
		flow := NewDeviceFlow(mockHTTP, "client-id")

		mockHTTP.On("Do", mock.Anything).Return(jsonResponse(500, `oops`), nil)

		_, err := flow.RequestDeviceCode(context.Background())

		var rejErr *domainErrors.RemoteRejectionError
		assert.True(t, errors.As(err, &rejErr))
	})

	t.Run("should classify a transport failure as a network error", func(t *testing.T) {
		mockHTTP := &MockHTTPClient{}
		flow := NewDeviceFlow(mockHTTP, "client-id")

		mockHTTP.On("Do", mock.Anything).Return(nil, errors.New("dns failure"))

		_, err := flow.RequestDeviceCode(context.Background())

		var netErr *domainErrors.NetworkError
		assert.True(t, errors.As(err, &netErr))
	})

	t.Run("should reject a response without device_code", func(t *testing.T) {
		mockHTTP := &MockHTTPClient{}
		flow := NewDeviceFlow(mockHTTP, "client-id")

		mockHTTP.On("Do", mock.Anything).Return(jsonResponse(200, `{}`), nil)

		_, err := flow.RequestDeviceCode(context.Background())

		assert.Error(t, err)
	})
}

func TestPollToken(t *testing.T) {
	t.Run("should return the credential on success", func(t *testing.T) {
		mockHTTP := &MockHTTPClient{}
		flow := NewDeviceFlow(mockHTTP, "client-id")

		mockHTTP.On("Do", mock.Anything).Return(jsonResponse(200, `{
			"access_token": "gho_tok",
			"token_type": "bearer",
			"scope": "repo"
		}`), nil)

		result, err := flow.PollToken(context.Background(), "dc-1")

		require.NoError(t, err)
		require.NotNil(t, result.Credential)
		assert.Equal(t, "gho_tok", result.Credential.AccessToken)
		assert.Empty(t, result.ErrorCode)
	})

	t.Run("should pass protocol error codes through", func(t *testing.T) {
		mockHTTP := &MockHTTPClient{}
		flow := NewDeviceFlow(mockHTTP, "client-id")

		mockHTTP.On("Do", mock.Anything).Return(jsonResponse(200, `{
			"error": "authorization_pending",
			"error_description": "The authorization request is still pending."
		}`), nil)

		result, err := flow.PollToken(context.Background(), "dc-1")

		require.NoError(t, err)
		assert.Nil(t, result.Credential)
		assert.Equal(t, "authorization_pending", result.ErrorCode)
	})

	t.Run("should send the device_code grant", func(t *testing.T) {
		mockHTTP := &MockHTTPClient{}
		flow := NewDeviceFlow(mockHTTP, "client-id")

		mockHTTP.On("Do", mock.MatchedBy(func(req *http.Request) bool {
			body, _ := io.ReadAll(req.Body)
			payload := string(body)
			req.Body = io.NopCloser(strings.NewReader(payload))
			return strings.Contains(payload, "device_code=dc-1") &&
				strings.Contains(payload, "urn%3Aietf%3Aparams%3Aoauth%3Agrant-type%3Adevice_code")
		})).Return(jsonResponse(200, `{"error": "slow_down"}`), nil)

		result, err := flow.PollToken(context.Background(), "dc-1")

		require.NoError(t, err)
		assert.Equal(t, "slow_down", result.ErrorCode)
	})
}
