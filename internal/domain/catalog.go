package domain

import (
	"fmt"
	"net/url"
	"strconv"
)

// CatalogFilter фильтры каталога, выбранные пользователем
// Status задается отображаемой подписью ("Доступен", ...), а не токеном бэкенда
type CatalogFilter struct {
	Brand    string
	Year     string
	Status   string
	MinPrice string
	MaxPrice string
	Search   string
}

// Query переводит фильтры в единую строку запроса /api/cars/search
// Бренд и свободный текст передаются одним параметром search (возможно дважды)
func (f CatalogFilter) Query() (url.Values, error) {
	params := url.Values{}

	if f.Brand != "" && f.Brand != AllBrands {
		params.Add("search", f.Brand)
	}
	if f.Search != "" {
		params.Add("search", f.Search)
	}
	if f.MinPrice != "" {
		params.Add("minPrice", f.MinPrice)
	}
	if f.MaxPrice != "" {
		params.Add("maxPrice", f.MaxPrice)
	}
	if f.Year != "" && f.Year != AllYears {
		params.Add("minYear", f.Year)
	}
	if f.Status != "" && f.Status != AllStatuses {
		status, ok := CarStatusLabels.Inverse(f.Status)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownStatusLabel, f.Status)
		}
		params.Add("status", string(status))
	}

	return params, nil
}

// CatalogFacets значения для выпадающих списков фильтров, собранные из результата поиска
type CatalogFacets struct {
	Brands   []string `json:"brands"`
	Years    []string `json:"years"`
	Statuses []string `json:"statuses"`
}

// BuildFacets собирает уникальные бренды и года в порядке первого появления
func BuildFacets(cars []Car) CatalogFacets {
	brands := []string{AllBrands}
	years := []string{AllYears}
	seenBrands := make(map[string]struct{})
	seenYears := make(map[int]struct{})

	for _, car := range cars {
		if _, ok := seenBrands[car.Brand]; !ok {
			seenBrands[car.Brand] = struct{}{}
			brands = append(brands, car.Brand)
		}
		if _, ok := seenYears[car.Year]; !ok {
			seenYears[car.Year] = struct{}{}
			years = append(years, strconv.Itoa(car.Year))
		}
	}

	return CatalogFacets{
		Brands:   brands,
		Years:    years,
		Statuses: append([]string{AllStatuses}, CarStatusLabels.Values()...),
	}
}

// FilterBrands фильтрует список брендов по подстроке без учета регистра
func FilterBrands(brands []string, query string) []string {
	result := make([]string, 0, len(brands))
	for _, b := range brands {
		if containsFold(b, query) {
			result = append(result, b)
		}
	}
	return result
}
