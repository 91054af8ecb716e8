package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
	sessionRepo "github.com/m04kA/SMC-LeasingGateway/internal/infra/storage/session"
	"github.com/m04kA/SMC-LeasingGateway/internal/integrations/leasingapi"
	"github.com/m04kA/SMC-LeasingGateway/internal/service/session/models"
	"github.com/m04kA/SMC-LeasingGateway/pkg/validation"
)

// Service сервис сессий: вход, регистрация, выход и разрешение сессии по ID
type Service struct {
	repo      SessionRepository
	client    LeasingClient
	validator Validator
	logger    Logger
	newID     func() string
}

// NewService создает новый экземпляр сервиса сессий
func NewService(
	repo SessionRepository,
	client LeasingClient,
	validator Validator,
	logger Logger,
) *Service {
	return &Service{
		repo:      repo,
		client:    client,
		validator: validator,
		logger:    logger,
		newID:     uuid.NewString,
	}
}

// Login выполняет вход на бэкенде и открывает сессию шлюза
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.SessionResponse, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, ErrEmptyCredentials
	}

	s.logger.Info("Login: authenticating email=%s", req.Email)

	token, err := s.client.Login(ctx, leasingapi.LoginRequest{Email: req.Email, Password: req.Password})
	if err != nil {
		return nil, s.backendError("Login", err)
	}

	return s.open(ctx, token)
}

// Register регистрирует пользователя на бэкенде и открывает сессию шлюза
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.SessionResponse, error) {
	if err := s.validateRegister(req); err != nil {
		return nil, err
	}

	s.logger.Info("Register: registering email=%s", req.Email)

	token, err := s.client.Register(ctx, leasingapi.RegisterRequest{
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	})
	if err != nil {
		return nil, s.backendError("Register", err)
	}

	return s.open(ctx, token)
}

// validateRegister проверки в порядке формы регистрации: сначала обязательность, затем форматы
func (s *Service) validateRegister(req *models.RegisterRequest) error {
	failures := validation.Failures(s.validator.Validate(req))
	if len(failures) == 0 {
		return nil
	}

	for _, field := range []string{"FullName", "Email", "PhoneNumber", "Password"} {
		if validation.HasFailure(failures, field, "required") {
			return ErrMissingFields
		}
	}

	switch {
	case validation.HasFailure(failures, "Email", ""):
		return ErrInvalidEmail
	case validation.HasFailure(failures, "PhoneNumber", ""):
		return ErrInvalidPhone
	case validation.HasFailure(failures, "Password", ""):
		return ErrShortPassword
	case validation.HasFailure(failures, "Agreed", ""):
		return ErrAgreementRequired
	}

	return ErrMissingFields
}

// open сохраняет сессию для полученного токена
// Роль и ID читаются из токена и уточняются запросом /api/user/me, если он доступен
func (s *Service) open(ctx context.Context, token string) (*models.SessionResponse, error) {
	if token == "" {
		s.logger.Warn("open: backend responded without token")
		return nil, ErrTokenMissing
	}

	id := parseIdentity(token)

	if me, err := s.client.Me(ctx, token); err != nil {
		s.logger.Warn("open: /me unavailable, using token claims: %v", err)
	} else {
		if me.Role != "" {
			id.Role = domain.Role(me.Role)
		}
		if me.ID > 0 {
			id.UserID = me.ID
		}
	}

	created, err := s.repo.Create(ctx, &domain.Session{
		ID:     s.newID(),
		Token:  token,
		Role:   id.Role,
		UserID: id.UserID,
	})
	if err != nil {
		s.logger.Error("open: failed to store session: %v", err)
		return nil, fmt.Errorf("%w: open - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("open: session opened for user=%d role=%s", created.UserID, created.Role)
	return models.FromDomainSession(created), nil
}

// Logout закрывает сессию
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return ErrSessionNotFound
		}
		s.logger.Error("Logout: repository error: %v", err)
		return fmt.Errorf("%w: Logout - repository error: %v", ErrInternal, err)
	}
	return nil
}

// Resolve возвращает сессию по ID из заголовка запроса
func (s *Service) Resolve(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}

	sess, err := s.repo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: Resolve - repository error: %v", ErrInternal, err)
	}
	return sess, nil
}

// RefreshRole запрашивает роль пользователя у бэкенда
// Если бэкенд недоступен или отказал, возвращается роль из сессии (по умолчанию User)
func (s *Service) RefreshRole(ctx context.Context, sess *domain.Session) *models.MeResponse {
	cached := sess.Role
	if cached == "" {
		cached = domain.RoleUser
	}

	me, err := s.client.Me(ctx, sess.Token)
	if err != nil {
		s.logger.Warn("RefreshRole: /me failed, using cached role=%s: %v", cached, err)
		return &models.MeResponse{Role: cached, UserID: sess.UserID}
	}

	role := domain.Role(me.Role)
	if role == "" {
		role = domain.RoleUser
	}
	userID := sess.UserID
	if me.ID > 0 {
		userID = me.ID
	}

	if role != sess.Role || userID != sess.UserID {
		if err := s.repo.UpdateIdentity(ctx, sess.ID, role, userID); err != nil {
			s.logger.Warn("RefreshRole: failed to cache role for session: %v", err)
		} else {
			sess.Role = role
			sess.UserID = userID
		}
	}

	return &models.MeResponse{Role: role, UserID: userID}
}

// backendError переводит ошибку бэкенда в ошибку сервиса
// Ошибки статуса сохраняются в цепочке, чтобы обработчик показал текст сервера
func (s *Service) backendError(op string, err error) error {
	if errors.Is(err, leasingapi.ErrInvalidResponse) {
		s.logger.Warn("%s: malformed backend response: %v", op, err)
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	s.logger.Warn("%s: backend error: %v", op, err)
	return fmt.Errorf("%s: %w", op, err)
}
