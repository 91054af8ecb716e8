package leasingapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type observedCall struct {
	endpoint string
	outcome  string
}

type recordingObserver struct {
	calls []observedCall
}

func (o *recordingObserver) ObserveBackendCall(endpoint, outcome string, _ time.Duration) {
	o.calls = append(o.calls, observedCall{endpoint: endpoint, outcome: outcome})
}

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *recordingObserver) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	obs := &recordingObserver{}
	return NewClient(srv.URL+"/", 2*time.Second, nopLogger{}).WithObserver(obs), obs
}

func TestClient_Login(t *testing.T) {
	client, obs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var body LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@b.kz", body.Email)

		_, _ = w.Write([]byte(`{"token":"jwt-token"}`))
	})

	token, err := client.Login(context.Background(), LoginRequest{Email: "a@b.kz", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", token)
	assert.Equal(t, []observedCall{{endpoint: "auth.login", outcome: outcomeOK}}, obs.calls)
}

func TestClient_ErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{name: "message field", status: http.StatusBadRequest, body: `{"message":"Вы уже оставили отзыв для этого автомобиля."}`, message: "Вы уже оставили отзыв для этого автомобиля."},
		{name: "error field", status: http.StatusConflict, body: `{"error":"Email занят"}`, message: "Email занят"},
		{name: "title field", status: http.StatusBadRequest, body: `{"title":"One or more validation errors occurred."}`, message: "One or more validation errors occurred."},
		{name: "plain text", status: http.StatusBadRequest, body: "Автомобиль уже забронирован", message: "Автомобиль уже забронирован"},
		{name: "empty body", status: http.StatusInternalServerError, body: "", message: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, obs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			err := client.CreateReview(context.Background(), "tok", 1, ReviewRequest{Rating: 5, Comment: "ok"})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnexpectedStatus)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, outcomeStatus, obs.calls[0].outcome)
		})
	}
}

func TestClient_UnauthorizedAndNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/user/me" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.Me(context.Background(), "expired")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrNotFound)

	_, err = client.GetCar(context.Background(), "tok", 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	obs := &recordingObserver{}
	client := NewClient(srv.URL, time.Second, nopLogger{}).WithObserver(obs)

	_, err := client.ListFavorites(context.Background(), "tok")
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, MsgUnavailable, UserMessage(err, "fallback"))
	assert.Equal(t, outcomeUnavailable, obs.calls[0].outcome)
}

func TestClient_InvalidResponse(t *testing.T) {
	client, obs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>oops</html>"))
	})

	_, err := client.GetCar(context.Background(), "tok", 1)
	require.ErrorIs(t, err, ErrInvalidResponse)
	assert.Equal(t, "fallback", UserMessage(err, "fallback"))
	assert.Equal(t, outcomeInvalid, obs.calls[0].outcome)
}

func TestClient_SearchCars(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/cars/search", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, []string{"BMW", "x5"}, r.URL.Query()["search"])
		assert.Equal(t, "Available", r.URL.Query().Get("status"))

		_, _ = w.Write([]byte(`[{"id":1,"brand":"BMW","model":"X5","year":2021,"price":30000000,"status":"Available","averageRating":null}]`))
	})

	cars, err := client.SearchCars(context.Background(), "tok", url.Values{
		"search": {"BMW", "x5"},
		"status": {"Available"},
	})
	require.NoError(t, err)
	require.Len(t, cars, 1)
	assert.Equal(t, domain.CarStatusAvailable, cars[0].Status)
	assert.Nil(t, cars[0].AverageRating)
}

func TestClient_ReservationsAndLease(t *testing.T) {
	start := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/reservations":
			if r.Method == http.MethodGet {
				assert.Equal(t, "7", r.URL.Query().Get("carId"))
				_, _ = w.Write([]byte(`[{"id":3,"carId":7,"userId":5,"reservationStart":"2024-01-15T09:30:00","reservationEnd":"2024-01-16T09:30:00Z"}]`))
				return
			}
			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "2024-01-15T09:30:00.000Z", body["reservationStart"])
			assert.Equal(t, "2024-01-16T09:30:00.000Z", body["reservationEnd"])
			w.WriteHeader(http.StatusCreated)
		case "/api/lease":
			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "2025-01-15T09:30:00.000Z", body["leaseEndDate"])
			_, _ = w.Write([]byte(`{"id":42}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	ctx := context.Background()

	list, err := client.ListReservations(ctx, "tok", 7)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, time.Date(2024, 1, 16, 9, 30, 0, 0, time.UTC), list[0].ReservationEnd)

	id, err := client.CreateReservation(ctx, "tok", 7, start, start.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Zero(t, id)

	leaseID, err := client.CreateLease(ctx, "tok", LeaseRequest{
		UserID:         5,
		CarID:          7,
		LeaseStartDate: start,
		LeaseEndDate:   domain.LeaseEndDate(start, 12),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), leaseID)
}

func TestClient_CreateLease_MissingID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	id, err := client.CreateLease(context.Background(), "tok", LeaseRequest{})
	require.NoError(t, err)
	assert.Zero(t, id)
}

func TestClient_AdminList(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "bare array", body: `[{"id":1},{"id":2}]`, want: 2},
		{name: "items wrapper", body: `{"items":[{"id":1}],"total":1}`, want: 1},
		{name: "empty wrapper", body: `{}`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/admin/lease-contracts", r.URL.Path)
				assert.Equal(t, "2", r.URL.Query().Get("page"))
				assert.Equal(t, "100", r.URL.Query().Get("pageSize"))
				_, _ = io.WriteString(w, tt.body)
			})

			items, err := client.AdminList(context.Background(), "tok", domain.AdminLeaseContracts, 2, 100)
			require.NoError(t, err)
			assert.Len(t, items, tt.want)
		})
	}
}

func TestClient_GetProfile(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/Profile", r.URL.Path)
		_, _ = w.Write([]byte(`{"fullName":"Иван","email":"i@kz","phoneNumber":"+77001234567",
			"contracts":[{"id":1,"carId":2,"carBrand":"Kia","leaseStartDate":"2024-01-15T00:00:00",
			"leaseEndDate":"2025-01-15T00:00:00","totalCost":1200,"status":"Active"}]}`))
	})

	profile, err := client.GetProfile(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, profile.Contracts, 1)
	assert.Equal(t, 100.0, profile.Contracts[0].MonthlyPayment())
	assert.Equal(t, domain.LeaseStatusActive, profile.Contracts[0].Status)
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "Текст сервера", UserMessage(&APIError{StatusCode: 400, Message: "Текст сервера"}, "fallback"))
	assert.Equal(t, "fallback", UserMessage(&APIError{StatusCode: 500}, "fallback"))
}
