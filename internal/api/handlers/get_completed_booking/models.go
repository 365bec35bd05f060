package get_completed_booking

// CompletedBookingResponse ответ для сервиса комментариев
type CompletedBookingResponse struct {
	ItemID    int64 `json:"itemId"`
	UserID    int64 `json:"userId"`
	Completed bool  `json:"completed"`
}
