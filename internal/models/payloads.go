package models

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name" binding:"required"`
	Phone       string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type OTPVerifyRequest struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

type CreateRequestRequest struct {
	Kind         string `json:"kind" binding:"required"`
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	ContactName  string `json:"contact_name" binding:"required"`
	ContactPhone string `json:"contact_phone"`
	FileURL      string `json:"file_url"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdateNotesRequest struct {
	AdminNotes string `json:"admin_notes"`
}

type SubscribeRequest struct {
	PlanID     string `json:"plan_id" binding:"required"`
	SuccessURL string `json:"success_url" binding:"required"`
	CancelURL  string `json:"cancel_url" binding:"required"`
}

type ConfirmRequest struct {
	// SessionID may be empty; the server then falls back to the caller's
	// most recent pending checkout session.
	SessionID string `json:"session_id"`
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}
