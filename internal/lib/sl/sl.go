// Package sl содержит вспомогательные функции для работы с логгером slog.
// Основная цель — единообразное формирование структурированных полей лога
// для ошибок и идентификатора пользователя.
package sl

import "log/slog"

// Err возвращает slog.Attr с ключом "error" и значением текста ошибки.
//
// Пример:
//
//	log.Error("failed to fetch subscription status", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Identity возвращает slog.Attr с ключом "identity" и идентификатором
// пользователя, для которого выполняется операция.
func Identity(id string) slog.Attr {
	return slog.Attr{
		Key:   "identity",
		Value: slog.StringValue(id),
	}
}
