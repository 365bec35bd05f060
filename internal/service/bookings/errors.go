package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrUserNotFound возвращается, когда пользователь не существует
	ErrUserNotFound = errors.New("user not found")

	// ErrItemNotFound возвращается, когда вещь не существует
	ErrItemNotFound = errors.New("item not found")

	// ErrAccessDenied возвращается, когда пользователь не арендатор и не владелец вещи
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidState возвращается при неизвестной корзине выборки
	ErrInvalidState = errors.New("unknown booking state")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
