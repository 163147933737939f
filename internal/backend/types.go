package backend

import "fmt"

// CreateCheckoutSessionRequest тело запроса на создание checkout-сессии.
type CreateCheckoutSessionRequest struct {
	PriceID string `json:"priceId"`
}

// CheckoutSessionResponse ответ бэкенда с идентификатором checkout-сессии.
type CheckoutSessionResponse struct {
	SessionID string `json:"sessionId"`
}

// errorBody формат тела ошибки, возвращаемого бэкендом.
type errorBody struct {
	Error string `json:"error"`
}

// APIError описывает отказ бэкенда: HTTP-статус и сообщение из тела ответа.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend: status %d: %s", e.StatusCode, e.Message)
}
