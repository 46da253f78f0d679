package models

import "time"

// Course представляет курс из каталога. Логика каталога (фильтрация,
// расчёт стоимости) живёт в отдельном сервисе, ядру курс нужен для
// проверки существования при записи и для текста уведомлений.
type Course struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Level     string    `json:"level"`
	Price     float64   `json:"price"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}
