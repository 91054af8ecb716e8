package models

import (
	"fmt"

	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
)

// ListRequest запрос страницы ресурса
type ListRequest struct {
	Resource domain.AdminResource
	Page     int
	Query    string // локальный поиск по строке элемента
}

// ItemView элемент в карточке консоли
type ItemView struct {
	ID    *int64           `json:"id,omitempty"`
	Title string           `json:"title"`
	Text  string           `json:"text"`
	Data  domain.AdminItem `json:"data"`
}

// ListResponse страница ресурса
// HasMore считается по размеру страницы до локального поиска
type ListResponse struct {
	Resource domain.AdminResource `json:"resource"`
	Label    string               `json:"label"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"pageSize"`
	HasMore  bool                 `json:"hasMore"`
	Items    []ItemView           `json:"items"`
}

// SchemaResponse поля формы ресурса
type SchemaResponse struct {
	Resource domain.AdminResource `json:"resource"`
	Label    string               `json:"label"`
	Fields   []domain.Field       `json:"fields"`
}

// PickersResponse варианты для полей-пикеров
type PickersResponse struct {
	Users          []domain.PickerOption `json:"users"`
	Cars           []domain.PickerOption `json:"cars"`
	LeaseContracts []domain.PickerOption `json:"leaseContracts"`
}

// ExportResponse XLSX выгрузка страницы
type ExportResponse struct {
	FileName string
	Content  []byte
}

// ExportFileName имя файла выгрузки
func ExportFileName(resource domain.AdminResource, page int) string {
	return fmt.Sprintf("%s-page-%d.xlsx", resource, page)
}

// NewItemView формирует карточку элемента
func NewItemView(resource domain.AdminResource, item domain.AdminItem) ItemView {
	view := ItemView{
		Title: resource.Title(item),
		Text:  resource.DisplayText(item),
		Data:  item,
	}
	if id, ok := item.ID(); ok {
		view.ID = &id
	}
	return view
}
