// Package jwt реализует выпуск и проверку JWT токенов сессии.
//
// Maker определяет интерфейс для создания и проверки токенов с username,
// email и ролью пользователя. MakerImpl — конкретная реализация на HS256
// с секретным ключом и временем жизни, загружаемыми один раз из конфига.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для выпуска и разбора токенов сессии.
type Maker interface {
	// GenerateToken создает токен с username, email и ролью пользователя.
	GenerateToken(username, email, role string) (string, error)
	// ParseToken проверяет подпись и срок действия, возвращает *CustomClaims.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
