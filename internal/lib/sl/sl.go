// Package sl содержит помощники для структурированного логирования через
// slog: обработчики и сервисы платформы кладут ошибки в лог единообразно,
// одним атрибутом.
package sl

import "log/slog"

// Err упаковывает ошибку в slog.Attr с ключом "error".
//
//	log.Error("failed to enroll user", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
