package session

import (
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
)

// identity роль и ID пользователя, прочитанные из токена
type identity struct {
	Role   domain.Role
	UserID int64
}

// parseIdentity читает claims токена без проверки подписи: токен выпускает и проверяет бэкенд
// Нечитаемый токен дает роль User и неизвестный ID
func parseIdentity(token string) identity {
	id := identity{Role: domain.RoleUser}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return id
	}

	if role := roleFromClaim(claims[domain.RoleClaim]); role != "" {
		id.Role = role
	}

	for _, key := range []string{domain.NameIdentifierClaim, "sub", "id"} {
		if userID, ok := int64FromClaim(claims[key]); ok {
			id.UserID = userID
			break
		}
	}

	return id
}

// roleFromClaim роль может прийти строкой или списком ролей
func roleFromClaim(v interface{}) domain.Role {
	switch val := v.(type) {
	case string:
		return domain.Role(val)
	case []interface{}:
		var first domain.Role
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				continue
			}
			if domain.Role(s) == domain.RoleAdmin {
				return domain.RoleAdmin
			}
			if first == "" {
				first = domain.Role(s)
			}
		}
		return first
	}
	return ""
}

func int64FromClaim(v interface{}) (int64, bool) {
	switch val := v.(type) {
	case float64:
		return int64(val), val > 0
	case string:
		n, err := strconv.ParseInt(val, 10, 64)
		return n, err == nil && n > 0
	}
	return 0, false
}
