package dto

// RegisterRequest represents a college registration request. It binds from
// JSON or multipart form data; the optional logo arrives as a file part.
type RegisterRequest struct {
	Name          string `json:"name" form:"name" binding:"required,max=255"`
	Email         string `json:"email" form:"email" binding:"required,email"`
	Password      string `json:"password" form:"password" binding:"required,min=6"`
	Address       string `json:"address" form:"address" binding:"required"`
	City          string `json:"city" form:"city" binding:"required"`
	State         string `json:"state" form:"state" binding:"required"`
	Country       string `json:"country" form:"country" binding:"required"`
	Description   string `json:"description" form:"description" binding:"required,max=1000"`
	Website       string `json:"website,omitempty" form:"website"`
	ContactNumber string `json:"contactNumber,omitempty" form:"contactNumber"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token   string           `json:"token"`
	College *CollegeResponse `json:"college"`
}

// ForgotPasswordRequest starts the password reset flow
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest completes the password reset flow
type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}
