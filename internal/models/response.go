package models

import "time"

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// PageSize is the fixed page size used by every list endpoint.
const PageSize = 10

// Pagination is the canonical list envelope shared by every paginated
// endpoint. TotalPages is derived as ceil(Count / PageSize).
type Pagination struct {
	Count      int `json:"count"`
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
}

func NewPagination(count, page int) Pagination {
	return Pagination{
		Count:      count,
		Page:       page,
		TotalPages: (count + PageSize - 1) / PageSize,
	}
}

type RequestResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Kind         string    `json:"kind"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ContactName  string    `json:"contact_name"`
	ContactPhone string    `json:"contact_phone,omitempty"`
	FileURL      string    `json:"file_url,omitempty"`
	Status       string    `json:"status"`
	AdminNotes   string    `json:"admin_notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type RequestListResponse struct {
	Results []RequestResponse `json:"results"`
	Pagination
}

func NewRequestResponse(r *Request) RequestResponse {
	resp := RequestResponse{
		ID:          r.ID.String(),
		UserID:      r.UserID.String(),
		Kind:        r.Kind,
		Title:       r.Title,
		Description: r.Description,
		ContactName: r.ContactName,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.ContactPhone.Valid {
		resp.ContactPhone = r.ContactPhone.String
	}
	if r.FileURL.Valid {
		resp.FileURL = r.FileURL.String
	}
	if r.AdminNotes.Valid {
		resp.AdminNotes = r.AdminNotes.String
	}
	return resp
}

type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Phone       string    `json:"phone,omitempty"`
	Role        string    `json:"role"`
	Verified    bool      `json:"verified"`
	CreatedAt   time.Time `json:"created_at"`
}

type UserListResponse struct {
	Results []UserResponse `json:"results"`
	Pagination
}

func NewUserResponse(u *User) UserResponse {
	resp := UserResponse{
		ID:          u.ID.String(),
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		Verified:    u.Verified,
		CreatedAt:   u.CreatedAt,
	}
	if u.Phone.Valid {
		resp.Phone = u.Phone.String
	}
	return resp
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type PhotoResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url"`
	FileSize    int64     `json:"file_size,omitempty"`
	MimeType    string    `json:"mime_type"`
	CreatedAt   time.Time `json:"created_at"`
}

type PhotoListResponse struct {
	Results []PhotoResponse `json:"results"`
	Pagination
}

func NewPhotoResponse(p *Photo) PhotoResponse {
	resp := PhotoResponse{
		ID:        p.ID.String(),
		Title:     p.Title,
		URL:       p.StorageURL,
		MimeType:  p.MimeType,
		CreatedAt: p.CreatedAt,
	}
	if p.Description.Valid {
		resp.Description = p.Description.String
	}
	if p.FileSize.Valid {
		resp.FileSize = p.FileSize.Int64
	}
	return resp
}

type SubscribeResponse struct {
	CheckoutURL string `json:"checkout_url"`
	SessionID   string `json:"session_id"`
}

type SubscriptionStatusResponse struct {
	HasSubscription   bool       `json:"has_subscription"`
	IsPremium         bool       `json:"is_premium"`
	PlanName          string     `json:"plan_name,omitempty"`
	Status            string     `json:"status,omitempty"`
	CurrentPeriodEnd  *time.Time `json:"current_period_end,omitempty"`
	CancelAtPeriodEnd bool       `json:"cancel_at_period_end"`
}

func NewSubscriptionStatusResponse(s *Subscription) SubscriptionStatusResponse {
	if s == nil {
		return SubscriptionStatusResponse{}
	}
	resp := SubscriptionStatusResponse{
		HasSubscription:   true,
		IsPremium:         s.Status == SubscriptionActive,
		PlanName:          s.PlanName,
		Status:            s.Status,
		CancelAtPeriodEnd: s.CancelAtPeriodEnd,
	}
	if s.CurrentPeriodEnd.Valid {
		end := s.CurrentPeriodEnd.Time
		resp.CurrentPeriodEnd = &end
	}
	return resp
}

type ChatResponse struct {
	ID        string                `json:"id"`
	UserID    string                `json:"user_id"`
	Status    string                `json:"status"`
	Messages  []ChatMessageResponse `json:"messages,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

type ChatListResponse struct {
	Results []ChatResponse `json:"results"`
	Pagination
}

type ChatMessageResponse struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chat_id"`
	Sender    string    `json:"sender"`
	SenderID  string    `json:"sender_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func NewChatResponse(c *Chat) ChatResponse {
	return ChatResponse{
		ID:        c.ID.String(),
		UserID:    c.UserID.String(),
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func NewChatMessageResponse(m *ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{
		ID:        m.ID.String(),
		ChatID:    m.ChatID.String(),
		Sender:    m.Sender,
		SenderID:  m.SenderID.String(),
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}
