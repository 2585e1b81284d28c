package gateway

import (
	"context"
	"net/http"

	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/app/models/dto"
)

// Signup submits the registration form. The backend answers by sending an
// OTP to the email address; no user exists until VerifyOtp succeeds.
func (c *Client) Signup(ctx context.Context, payload models.SignupPayload) error {
	req, err := jsonRequest("signup", http.MethodPost, "/auth/signup", payload)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, req)
	return err
}

// VerifyOtp confirms the signup and returns the created user
func (c *Client) VerifyOtp(ctx context.Context, email, otp string) (*models.User, error) {
	return c.authenticate(ctx, "verifyOtp", "/auth/otp", dto.OtpRequest{Email: email, OTP: otp})
}

// Login exchanges credentials for the user
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	return c.authenticate(ctx, "login", "/auth/login", models.Credentials{Email: email, Password: password})
}

func (c *Client) authenticate(ctx context.Context, op, path string, payload interface{}) (*models.User, error) {
	req, err := jsonRequest(op, http.MethodPost, path, payload)
	if err != nil {
		return nil, err
	}
	body, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}

	auth, err := dto.ParseAuthResponse(body)
	if err != nil {
		return nil, &GatewayError{Op: op, Kind: KindApplication, Status: http.StatusOK, Message: dto.ErrMissingUser.Error(), Err: err}
	}
	if auth.AccessToken != "" {
		c.SetToken(auth.AccessToken)
	}
	return &auth.User, nil
}

// SubmitFeedback posts the feedback or contact form
func (c *Client) SubmitFeedback(ctx context.Context, feedback models.Feedback) error {
	req, err := jsonRequest("submitFeedback", http.MethodPost, "/feedback", feedback)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, req)
	return err
}

// UpdateProfile saves the current user's profile and returns the stored copy
func (c *Client) UpdateProfile(ctx context.Context, user models.User) (models.User, error) {
	return postRecord[models.User](ctx, c, "updateProfile", http.MethodPut, "/users/me", user, "user")
}
