// Package paymentprovider реализует клиент hosted-checkout страницы
// платёжного провайдера. Провайдер принимает идентификатор checkout-сессии
// и публичный ключ и отдаёт URL, на который нужно увести браузер пользователя.
package paymentprovider

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// SessionPrefix обязательный префикс идентификатора checkout-сессии.
const SessionPrefix = "cs_"

// Client клиент hosted-checkout страницы.
type Client struct {
	publicKey   string
	checkoutURL string
}

// NewClient создаёт клиент провайдера. Возвращает ошибку при пустом
// публичном ключе или базовом URL: без них redirect собрать невозможно.
func NewClient(publicKey, checkoutURL string) (*Client, error) {
	if publicKey == "" {
		return nil, errors.New("paymentprovider.NewClient: public key is not configured")
	}
	if checkoutURL == "" {
		return nil, errors.New("paymentprovider.NewClient: checkout URL is not configured")
	}
	return &Client{
		publicKey:   publicKey,
		checkoutURL: strings.TrimRight(checkoutURL, "/"),
	}, nil
}

// RedirectToCheckout собирает URL hosted-checkout страницы для переданной
// сессии. Ошибка означает, что redirect не состоялся; nil-ошибка — что
// переход инициирован, а не что оплата завершена.
func (c *Client) RedirectToCheckout(sessionID string) (string, error) {
	const op = "paymentprovider.RedirectToCheckout"

	if !strings.HasPrefix(sessionID, SessionPrefix) {
		return "", fmt.Errorf("%s: malformed session id %q", op, sessionID)
	}

	redirect, err := url.Parse(c.checkoutURL + "/" + sessionID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	query := redirect.Query()
	query.Set("key", c.publicKey)
	redirect.RawQuery = query.Encode()
	return redirect.String(), nil
}
