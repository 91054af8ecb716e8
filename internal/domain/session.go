package domain

import "time"

// Session сессия пользователя шлюза
// Хранит bearer-токен бэкенда и кэш роли; создается при входе, удаляется при выходе
type Session struct {
	ID        string
	Token     string
	Role      Role
	UserID    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin возвращает true для сессии администратора
func (s *Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// HasUserID возвращает true, если ID пользователя известен
func (s *Session) HasUserID() bool {
	return s.UserID > 0
}
