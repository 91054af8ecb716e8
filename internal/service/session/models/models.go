package models

import "github.com/m04kA/SMC-LeasingGateway/internal/domain"

// LoginRequest запрос входа
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest запрос регистрации
type RegisterRequest struct {
	FullName    string `json:"fullName" validate:"required"`
	Email       string `json:"email" validate:"required,contact_email"`
	PhoneNumber string `json:"phoneNumber" validate:"required,phone"`
	Password    string `json:"password" validate:"required,min=6"`
	Agreed      bool   `json:"agreed" validate:"required"`
}

// SessionResponse созданная сессия
// AdminConsole сообщает клиенту, что после входа нужно открыть консоль администратора
type SessionResponse struct {
	SessionID    string      `json:"sessionId"`
	Role         domain.Role `json:"role"`
	UserID       int64       `json:"userId,omitempty"`
	AdminConsole bool        `json:"adminConsole"`
}

// FromDomainSession конвертирует сессию в ответ
func FromDomainSession(s *domain.Session) *SessionResponse {
	return &SessionResponse{
		SessionID:    s.ID,
		Role:         s.Role,
		UserID:       s.UserID,
		AdminConsole: s.IsAdmin(),
	}
}

// MeResponse текущий пользователь для шапки приложения
type MeResponse struct {
	Role   domain.Role `json:"role"`
	UserID int64       `json:"userId,omitempty"`
}
