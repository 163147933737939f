package subscription

import "errors"

// Code машиночитаемый код ошибки подписочных операций.
type Code string

const (
	// CodeInvalidPriceID — идентификатор цены не прошёл локальную проверку формата.
	CodeInvalidPriceID Code = "invalid_price_id"
	// CodeInvalidResponse — бэкенд вернул ответ без корректного идентификатора сессии.
	CodeInvalidResponse Code = "invalid_response"
	// CodeInvalidPriceConfiguration — провайдер не знает такую цену.
	CodeInvalidPriceConfiguration Code = "invalid_price_configuration"
	// CodeCheckoutFailed — создание checkout-сессии не удалось по иной причине.
	CodeCheckoutFailed Code = "checkout_failed"
	// CodeCheckoutRedirectFailed — провайдер сообщил об ошибке вместо redirect.
	CodeCheckoutRedirectFailed Code = "checkout_redirect_failed"
	// CodeCancelFailed — отмена подписки не удалась.
	CodeCancelFailed Code = "cancel_failed"
	// CodeResumeFailed — возобновление подписки не удалось.
	CodeResumeFailed Code = "resume_failed"
)

// Error типизированная ошибка подписочной операции. Message безопасен для
// показа пользователю; исходная причина доступна через errors.Unwrap.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func newError(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return string(e.Code) + ": " + e.Message + ": " + e.cause.Error()
	}
	return string(e.Code) + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is сравнивает ошибки по коду, что позволяет использовать errors.Is
// с сентинелами ниже независимо от текста и причины.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// Сентинелы для errors.Is.
var (
	ErrInvalidPriceID             = &Error{Code: CodeInvalidPriceID}
	ErrInvalidResponse            = &Error{Code: CodeInvalidResponse}
	ErrInvalidPriceConfiguration  = &Error{Code: CodeInvalidPriceConfiguration}
	ErrCheckoutFailed             = &Error{Code: CodeCheckoutFailed}
	ErrCheckoutRedirectFailed     = &Error{Code: CodeCheckoutRedirectFailed}
	ErrCancelFailed               = &Error{Code: CodeCancelFailed}
	ErrResumeFailed               = &Error{Code: CodeResumeFailed}
)

// UserMessage возвращает безопасное для показа пользователю сообщение:
// текст типизированной ошибки либо общий fallback для неизвестных ошибок.
func UserMessage(err error) string {
	var subErr *Error
	if errors.As(err, &subErr) && subErr.Message != "" {
		return subErr.Message
	}
	return "Something went wrong. Please try again."
}
