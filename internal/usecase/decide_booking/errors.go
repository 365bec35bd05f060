package decide_booking

import "errors"

var (
	// ErrUserNotFound возвращается, когда принимающий решение пользователь не существует
	ErrUserNotFound = errors.New("decide_booking: user not found")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("decide_booking: booking not found")

	// ErrItemNotFound возвращается, когда вещь бронирования не найдена
	ErrItemNotFound = errors.New("decide_booking: item not found")

	// ErrBookingCannotBeChanged возвращается, когда бронирование уже подтверждено
	ErrBookingCannotBeChanged = errors.New("decide_booking: booking cannot be changed")

	// ErrAccessDenied возвращается, когда решение принимает не владелец вещи
	ErrAccessDenied = errors.New("decide_booking: only item owner can decide")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("decide_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("decide_booking: internal error")
)
