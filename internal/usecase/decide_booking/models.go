package decide_booking

// Request модель запроса на подтверждение или отклонение бронирования
type Request struct {
	DeciderID int64 // ID владельца вещи (из заголовка X-Sharer-User-Id)
	BookingID int64
	Approved  bool
}
