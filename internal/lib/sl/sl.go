// Package sl содержит вспомогательные функции для структурированного
// логирования через slog в сервисах авторизации и базы знаний.
package sl

import "log/slog"

// Err оборачивает ошибку в slog.Attr с ключом "error",
// чтобы ошибки во всех логах выводились единообразно.
//
// Пример:
//
//	log.Error("failed to delete user", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
