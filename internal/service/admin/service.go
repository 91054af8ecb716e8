package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
	"github.com/m04kA/SMC-LeasingGateway/internal/service/admin/models"
)

// Service консоль администратора: общий CRUD для всех ресурсов
type Service struct {
	client   LeasingClient
	exporter Exporter
	pageSize int
	logger   Logger
}

// NewService создает новый экземпляр сервиса консоли администратора
func NewService(client LeasingClient, exporter Exporter, pageSize int, logger Logger) *Service {
	if pageSize <= 0 {
		pageSize = domain.DefaultAdminPageSize
	}
	return &Service{
		client:   client,
		exporter: exporter,
		pageSize: pageSize,
		logger:   logger,
	}
}

// PageSize размер страницы консоли
func (s *Service) PageSize() int {
	return s.pageSize
}

// List возвращает страницу ресурса с локальным поиском
func (s *Service) List(ctx context.Context, sess *domain.Session, req *models.ListRequest) (*models.ListResponse, error) {
	page := req.Page
	if page < domain.FirstPage {
		page = domain.FirstPage
	}

	items, err := s.client.AdminList(ctx, sess.Token, req.Resource, page, s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("List %s: %w", req.Resource, err)
	}

	resp := &models.ListResponse{
		Resource: req.Resource,
		Label:    req.Resource.Label(),
		Page:     page,
		PageSize: s.pageSize,
		HasMore:  len(items) >= s.pageSize,
		Items:    make([]models.ItemView, 0, len(items)),
	}

	query := strings.TrimSpace(req.Query)
	for _, item := range items {
		if !req.Resource.MatchesQuery(item, query) {
			continue
		}
		resp.Items = append(resp.Items, models.NewItemView(req.Resource, item))
	}

	s.logger.Info("List: resource=%s page=%d loaded=%d shown=%d", req.Resource, page, len(items), len(resp.Items))
	return resp, nil
}

// Schema возвращает поля формы создания или редактирования
func (s *Service) Schema(resource domain.AdminResource, editing bool) *models.SchemaResponse {
	return &models.SchemaResponse{
		Resource: resource,
		Label:    resource.Label(),
		Fields:   resource.Schema(editing),
	}
}

// Create создает элемент; id из формы не отправляется
func (s *Service) Create(ctx context.Context, sess *domain.Session, resource domain.AdminResource, item domain.AdminItem) error {
	payload, err := preparePayload(resource, item)
	if err != nil {
		return err
	}
	delete(payload, "id")

	if err := s.client.AdminCreate(ctx, sess.Token, resource, payload); err != nil {
		return fmt.Errorf("Create %s: %w", resource, err)
	}

	s.logger.Info("Create: resource=%s created by user=%d", resource, sess.UserID)
	return nil
}

// Update изменяет элемент по ID
func (s *Service) Update(ctx context.Context, sess *domain.Session, resource domain.AdminResource, id int64, item domain.AdminItem) error {
	if id <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidID, id)
	}

	payload, err := preparePayload(resource, item)
	if err != nil {
		return err
	}
	payload["id"] = id

	if err := s.client.AdminUpdate(ctx, sess.Token, resource, id, payload); err != nil {
		return fmt.Errorf("Update %s id=%d: %w", resource, id, err)
	}

	s.logger.Info("Update: resource=%s id=%d updated by user=%d", resource, id, sess.UserID)
	return nil
}

// Delete удаляет элемент по ID
func (s *Service) Delete(ctx context.Context, sess *domain.Session, resource domain.AdminResource, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidID, id)
	}

	if err := s.client.AdminDelete(ctx, sess.Token, resource, id); err != nil {
		return fmt.Errorf("Delete %s id=%d: %w", resource, id, err)
	}

	s.logger.Info("Delete: resource=%s id=%d deleted by user=%d", resource, id, sess.UserID)
	return nil
}

// Pickers загружает варианты пользователей, автомобилей и договоров параллельно
// Результат читается после завершения всех запросов; ошибка источника оставляет его список пустым
func (s *Service) Pickers(ctx context.Context, sess *domain.Session) *models.PickersResponse {
	options := make([][]domain.PickerOption, len(domain.PickerSources))

	g, gctx := errgroup.WithContext(ctx)
	for i, resource := range domain.PickerSources {
		i, resource := i, resource
		g.Go(func() error {
			items, err := s.client.AdminList(gctx, sess.Token, resource, domain.FirstPage, s.pageSize)
			if err != nil {
				s.logger.Warn("Pickers: failed to load %s: %v", resource, err)
				options[i] = []domain.PickerOption{}
				return nil
			}
			options[i] = resource.PickerOptions(items)
			return nil
		})
	}
	_ = g.Wait()

	return &models.PickersResponse{
		Users:          options[0],
		Cars:           options[1],
		LeaseContracts: options[2],
	}
}

// Export выгружает текущую страницу (с учетом поиска) в XLSX
func (s *Service) Export(ctx context.Context, sess *domain.Session, req *models.ListRequest) (*models.ExportResponse, error) {
	list, err := s.List(ctx, sess, req)
	if err != nil {
		return nil, err
	}

	items := make([]domain.AdminItem, 0, len(list.Items))
	for _, view := range list.Items {
		items = append(items, view.Data)
	}

	content, err := s.exporter.Generate(req.Resource, items)
	if err != nil {
		s.logger.Error("Export: resource=%s page=%d: %v", req.Resource, list.Page, err)
		return nil, fmt.Errorf("%w: %v", ErrExport, err)
	}

	return &models.ExportResponse{
		FileName: models.ExportFileName(req.Resource, list.Page),
		Content:  content,
	}, nil
}

// preparePayload копирует форму и приводит поля-даты к YYYY-MM-DD
func preparePayload(resource domain.AdminResource, item domain.AdminItem) (domain.AdminItem, error) {
	if len(item) == 0 {
		return nil, ErrEmptyItem
	}

	payload := make(domain.AdminItem, len(item))
	for k, v := range item {
		payload[k] = v
	}

	for _, key := range resource.DateFields() {
		raw, ok := payload[key].(string)
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		t, err := parseFormDate(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q", ErrInvalidDate, key, raw)
		}
		payload[key] = t.Format(domain.DateFormat)
	}

	return payload, nil
}

// parseFormDate принимает ISO дату бэкенда или дд.мм.гггг из карточки
func parseFormDate(raw string) (time.Time, error) {
	if t, ok := domain.ParseBackendTime(raw); ok {
		return t, nil
	}
	return time.Parse(domain.DisplayDateFormat, raw)
}
