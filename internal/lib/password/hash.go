// Package password реализует безопасное хеширование и проверку паролей.
//
// Hasher создает bcrypt-хэши с настраиваемым фактором стоимости,
// который читается из конфигурации процесса, а не зашивается в код.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher хеширует пароли с фиксированным на старте процесса фактором стоимости.
// Вычисление идёт без каких-либо разделяемых блокировок, поэтому медленный
// bcrypt не задерживает параллельные запросы.
type Hasher struct {
	cost int
}

// NewHasher создает Hasher с заданным фактором стоимости bcrypt.
// Нулевое или отрицательное значение заменяется на bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// GetHash принимает пароль пользователя и возвращает его bcrypt-хэш.
// Соль генерируется библиотекой для каждого вызова заново.
func (h *Hasher) GetHash(password string) (string, error) {
	const op = "password.GetHash"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// CompareHash сравнивает bcrypt-хэш с введённым паролем.
// Возвращает nil, если пароль соответствует хэшу, иначе — ошибку.
func (h *Hasher) CompareHash(originalHash, externalPassword string) error {
	const op = "password.CompareHash"
	if err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
