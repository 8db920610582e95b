package dto

// SignupRequest describes shopper registration payload.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest describes shopper login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the issued bearer token.
type AuthResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// VerifyEmailRequest confirms an emailed verification code.
type VerifyEmailRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// EmailRequest names an account by email, for code resends and resets.
type EmailRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest completes a password reset with a code.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

// AdminLoginRequest describes back-office login payload.
type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminRegisterRequest provisions a new back-office account.
type AdminRegisterRequest struct {
	Username    string           `json:"username"`
	Email       string           `json:"email"`
	Password    string           `json:"password"`
	Role        string           `json:"role"`
	Permissions PermissionsInput `json:"permissions"`
}

// PermissionsInput mirrors the admin capability flags.
type PermissionsInput struct {
	ManageProducts bool `json:"manageProducts"`
	ManageUsers    bool `json:"manageUsers"`
	ManageOrders   bool `json:"manageOrders"`
}
