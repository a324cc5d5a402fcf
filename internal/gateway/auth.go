package gateway

import (
	"context"

	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/league"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	EmployeeID  int64  `json:"employeeId"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Address     string `json:"address,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
}

// RegisterRequest carries the registration form fields. Only the first three
// are required; the backend validates uniqueness.
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Email       string `json:"email"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Address     string `json:"address,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// RegisterResponse is the backend's registration confirmation.
type RegisterResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}

// Authenticate verifies credentials against the backend and returns the
// employee identity on success.
func (c *Client) Authenticate(ctx context.Context, username, password string) (league.Employee, error) {
	var resp loginResponse
	err := c.postJSON(ctx, "/api/employee/login", loginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return league.Employee{}, err
	}
	return league.Employee{
		ID:          resp.EmployeeID,
		Username:    resp.Username,
		Email:       resp.Email,
		Address:     resp.Address,
		PhoneNumber: resp.PhoneNumber,
		DateOfBirth: resp.DateOfBirth,
	}, nil
}

// Register creates a new employee account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error) {
	var resp RegisterResponse
	if err := c.postJSON(ctx, "/api/employee/register", req, &resp); err != nil {
		return RegisterResponse{}, err
	}
	return resp, nil
}
