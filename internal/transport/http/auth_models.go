package http

// RegisterRequest carries the signup fields.
type RegisterRequest struct {
	Username  string `json:"username"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginRequest carries email login fields.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest starts the OTP flow.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// VerifyOTPRequest exchanges a mailed OTP for a reset token.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// ResetPasswordRequest redeems the reset token with the new password.
type ResetPasswordRequest struct {
	Email    string `json:"email"`
	Token    string `json:"token"`
	Password string `json:"password"`
}
