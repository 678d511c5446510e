package dto

// LoginRequest is the POST /login body.
type LoginRequest struct {
	UCCMSNumber string `json:"uccms_number" validate:"required"`
	Password    string `json:"password" validate:"required"`
}

// RegisterRequest is the POST /register body.
type RegisterRequest struct {
	UCCMSNumber string `json:"uccms_number" validate:"required"`
	FullName    string `json:"full_name" validate:"required"`
	Password    string `json:"password" validate:"required"`
}

// LoginResult mirrors the legacy success payload field-for-field.
type LoginResult struct {
	Status string `json:"status"`
	UserID string `json:"user_id"`
	UCCMS  string `json:"uccms"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// RegisterResult is the POST /register success payload.
type RegisterResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
