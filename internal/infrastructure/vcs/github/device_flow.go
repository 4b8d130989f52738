package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainErrors "github.com/Tomas-vilte/MateReview/internal/domain/errors"
	"github.com/Tomas-vilte/MateReview/internal/domain/models"
	"github.com/Tomas-vilte/MateReview/internal/domain/ports"
	"github.com/Tomas-vilte/MateReview/internal/infrastructure/httpclient"
)

var _ ports.DeviceAuthorizer = (*DeviceFlow)(nil)

const (
	deviceCodeURL  = "https://github.com/login/device/code"
	accessTokenURL = "https://github.com/login/oauth/access_token"
	defaultScope   = "repo read:user"
)

// DeviceFlow habla con los endpoints de device code de GitHub. La máquina de
// estados del polling vive en el servicio de autenticación; acá solo están
// las dos llamadas HTTP.
type DeviceFlow struct {
	client         httpclient.HTTPClient
	clientID       string
	deviceCodeURL  string
	accessTokenURL string
}

func NewDeviceFlow(client httpclient.HTTPClient, clientID string) *DeviceFlow {
	return &DeviceFlow{
		client:         client,
		clientID:       clientID,
		deviceCodeURL:  deviceCodeURL,
		accessTokenURL: accessTokenURL,
	}
}

// NewDeviceFlowWithEndpoints permite apuntar a endpoints alternativos (tests).
func NewDeviceFlowWithEndpoints(client httpclient.HTTPClient, clientID, codeURL, tokenURL string) *DeviceFlow {
	return &DeviceFlow{
		client:         client,
		clientID:       clientID,
		deviceCodeURL:  codeURL,
		accessTokenURL: tokenURL,
	}
}

func (f *DeviceFlow) RequestDeviceCode(ctx context.Context) (*models.DeviceCode, error) {
	form := url.Values{
		"client_id": {f.clientID},
		"scope":     {defaultScope},
	}

	body, err := f.postForm(ctx, f.deviceCodeURL, form)
	if err != nil {
		return nil, err
	}

	var code models.DeviceCode
	if err := json.Unmarshal(body, &code); err != nil {
		return nil, fmt.Errorf("error deserializando el device code: %w", err)
	}
	if code.DeviceCode == "" {
		return nil, domainErrors.NewRemoteRejectionError("requestDeviceCode", 0, "respuesta sin device_code")
	}
	return &code, nil
}

func (f *DeviceFlow) PollToken(ctx context.Context, deviceCode string) (*ports.PollResult, error) {
	form := url.Values{
		"client_id":   {f.clientID},
		"device_code": {deviceCode},
		"grant_type":  {"urn:ietf:params:oauth:grant-type:device_code"},
	}

	body, err := f.postForm(ctx, f.accessTokenURL, form)
	if err != nil {
		return nil, err
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		Scope       string `json:"scope"`
		Error       string `json:"error"`
		ErrorDesc   string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("error deserializando la respuesta del token: %w", err)
	}

	if payload.AccessToken != "" {
		return &ports.PollResult{
			Credential: &models.Credential{
				AccessToken: payload.AccessToken,
				TokenType:   payload.TokenType,
				Scope:       payload.Scope,
				CreatedAt:   time.Now(),
			},
		}, nil
	}

	return &ports.PollResult{
		ErrorCode: payload.Error,
		ErrorDesc: payload.ErrorDesc,
	}, nil
}

func (f *DeviceFlow) postForm(ctx context.Context, endpoint string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("error armando la petición: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, domainErrors.NewNetworkError("deviceFlow", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domainErrors.NewRemoteRejectionError("deviceFlow", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domainErrors.NewNetworkError("deviceFlow", err)
	}
	return body, nil
}
