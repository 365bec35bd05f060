package create_booking

import "errors"

var (
	// ErrUserNotFound возвращается, когда арендатор не существует
	ErrUserNotFound = errors.New("create_booking: user not found")

	// ErrItemNotFound возвращается, когда вещь не найдена
	ErrItemNotFound = errors.New("create_booking: item not found")

	// ErrAccessDenied возвращается, когда владелец пытается забронировать свою вещь
	ErrAccessDenied = errors.New("create_booking: owner cannot book own item")

	// ErrItemUnavailable возвращается, когда вещь недоступна для аренды
	ErrItemUnavailable = errors.New("create_booking: item is unavailable")

	// ErrInvalidTimeRange возвращается, когда начало не раньше окончания
	ErrInvalidTimeRange = errors.New("create_booking: invalid time range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
