package checkout

import (
	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
	checkoutsModels "github.com/m04kA/SMC-LeasingGateway/internal/service/checkouts/models"
	checkoutUC "github.com/m04kA/SMC-LeasingGateway/internal/usecase/checkout"
)

// CardRequest данные карты из формы оплаты
type CardRequest struct {
	Number string `json:"number"`
	Holder string `json:"holder"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
}

// CreateCheckoutRequest тело запроса на оформление лизинга
type CreateCheckoutRequest struct {
	Lease  domain.LeaseDetails `json:"lease"`
	Card   CardRequest         `json:"card"`
	Agreed bool                `json:"agreed"`
}

// CreateCheckoutResponse результат успешного оформления
type CreateCheckoutResponse struct {
	Checkout        *checkoutsModels.CheckoutResponse `json:"checkout"`
	Message         string                            `json:"message"`
	RedirectAfterMs int64                             `json:"redirectAfterMs"`
}

// ToUseCaseRequest преобразует HTTP запрос в запрос usecase
func (r *CreateCheckoutRequest) ToUseCaseRequest(sess *domain.Session) *checkoutUC.Request {
	return &checkoutUC.Request{
		Session: sess,
		Lease:   r.Lease,
		Card: checkoutUC.Card{
			Number: r.Card.Number,
			Holder: r.Card.Holder,
			Expiry: r.Card.Expiry,
			CVV:    r.Card.CVV,
		},
		Agreed: r.Agreed,
	}
}

// FromUseCaseResponse преобразует ответ usecase в HTTP ответ
func FromUseCaseResponse(resp *checkoutUC.Response) *CreateCheckoutResponse {
	return &CreateCheckoutResponse{
		Checkout:        checkoutsModels.FromDomainCheckout(resp.Checkout),
		Message:         msgCheckoutCompleted,
		RedirectAfterMs: resp.RedirectAfter.Milliseconds(),
	}
}
