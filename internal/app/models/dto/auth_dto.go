package dto

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/yigit/uniconnect/internal/app/models"
)

// ErrMissingUser is returned when an auth response carries no user
var ErrMissingUser = errors.New("Invalid response from server: Missing user")

// OtpRequest is the body of POST /auth/otp
type OtpRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// TokenResponse represents the token object returned by the backend
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType,omitempty"`
	ExpiresIn   int64  `json:"expiresIn,omitempty"`
}

// AuthResponse represents successful authentication: the user and, when the
// backend issues one, an access token.
type AuthResponse struct {
	User        models.User
	AccessToken string
}

type authBody struct {
	User        *models.User   `json:"user"`
	Token       *TokenResponse `json:"token"`
	AccessToken string         `json:"accessToken"`
	Data        *struct {
		User        *models.User   `json:"user"`
		Token       *TokenResponse `json:"token"`
		AccessToken string         `json:"accessToken"`
	} `json:"data"`
}

// ParseAuthResponse reads the user from "user" or "data.user" and the token
// from "token.accessToken", "accessToken" or "data.token.accessToken".
func ParseAuthResponse(body []byte) (*AuthResponse, error) {
	var parsed authBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode auth response: %w", err)
	}

	resp := &AuthResponse{}
	switch {
	case parsed.User != nil && !parsed.User.IsEmpty():
		resp.User = *parsed.User
	case parsed.Data != nil && parsed.Data.User != nil && !parsed.Data.User.IsEmpty():
		resp.User = *parsed.Data.User
	default:
		return nil, ErrMissingUser
	}

	switch {
	case parsed.Token != nil && parsed.Token.AccessToken != "":
		resp.AccessToken = parsed.Token.AccessToken
	case parsed.AccessToken != "":
		resp.AccessToken = parsed.AccessToken
	case parsed.Data != nil && parsed.Data.Token != nil && parsed.Data.Token.AccessToken != "":
		resp.AccessToken = parsed.Data.Token.AccessToken
	case parsed.Data != nil && parsed.Data.AccessToken != "":
		resp.AccessToken = parsed.Data.AccessToken
	}

	return resp, nil
}
