package catalog

import (
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
)

// filterFromQuery читает фильтры каталога из строки запроса
func filterFromQuery(q url.Values) domain.CatalogFilter {
	return domain.CatalogFilter{
		Brand:    q.Get("brand"),
		Year:     q.Get("year"),
		Status:   q.Get("status"),
		MinPrice: q.Get("minPrice"),
		MaxPrice: q.Get("maxPrice"),
		Search:   q.Get("search"),
	}
}

// quoteParams читает параметры калькулятора, пропущенные значения берутся по умолчанию
func quoteParams(q url.Values) (downPercent, termMonths int, err error) {
	downPercent, err = intOrDefault(q.Get("downPercent"), domain.DefaultDownPaymentPercent)
	if err != nil {
		return 0, 0, err
	}
	termMonths, err = intOrDefault(q.Get("term"), domain.DefaultLeaseTermMonths)
	if err != nil {
		return 0, 0, err
	}
	return downPercent, termMonths, nil
}

func intOrDefault(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
