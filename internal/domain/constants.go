package domain

// Default pagination values
const (
	DefaultPageFrom = 0
	DefaultPageSize = 20
)

// Time format constants
const (
	// DateTimeFormat формат даты-времени без зоны, в котором клиенты присылают интервалы
	DateTimeFormat = "2006-01-02T15:04:05"
)
