package models

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// Request модели

// GetBookingsRequest запрос на получение списка бронирований.
// Для арендатора UserID - booker, для владельца - владелец вещей.
type GetBookingsRequest struct {
	UserID int64  `json:"userId"`
	State  string `json:"state"`
	From   int    `json:"from"`
	Size   int    `json:"size"`
}

// ToDomainPage конвертирует параметры пагинации в domain.PageRequest
func (r *GetBookingsRequest) ToDomainPage() (domain.PageRequest, error) {
	return domain.NewPageRequest(r.From, r.Size)
}

// Response модели

// BookerResponse арендатор в ответе
type BookerResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ItemResponse вещь в ответе
type ItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID     int64          `json:"id"`
	Start  string         `json:"start"` // "2026-10-15T12:00:00"
	End    string         `json:"end"`
	Status string         `json:"status"`
	Booker BookerResponse `json:"booker"`
	Item   ItemResponse   `json:"item"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// ShortBookingResponse краткое бронирование для карточки вещи
type ShortBookingResponse struct {
	ID       int64  `json:"id"`
	BookerID int64  `json:"bookerId"`
	Start    string `json:"start"`
	End      string `json:"end"`
}

// ItemBookingsSummaryResponse последнее и ближайшее подтверждённые бронирования вещи
type ItemBookingsSummaryResponse struct {
	ItemID      int64                 `json:"itemId"`
	LastBooking *ShortBookingResponse `json:"lastBooking"`
	NextBooking *ShortBookingResponse `json:"nextBooking"`
}

// Методы конвертации

// FormatTime форматирует момент в формате API
func FormatTime(t time.Time) string {
	return t.Format(domain.DateTimeFormat)
}

// FromDomainBooking конвертирует бронирование с арендатором и вещью в DTO
func FromDomainBooking(b *domain.Booking, booker *domain.User, item *domain.Item) *BookingResponse {
	if b == nil || booker == nil || item == nil {
		return nil
	}

	return &BookingResponse{
		ID:     b.ID,
		Start:  FormatTime(b.Start),
		End:    FormatTime(b.End),
		Status: string(b.Status),
		Booker: BookerResponse{
			ID:    booker.ID,
			Name:  booker.Name,
			Email: booker.Email,
		},
		Item: ItemResponse{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Available:   item.Available,
		},
	}
}

// FromDomainBookingList конвертирует список бронирований в DTO.
// users и items - снимки справочников, собранные один раз на операцию.
func FromDomainBookingList(
	bookings []*domain.Booking,
	users map[int64]*domain.User,
	items map[int64]*domain.Item,
) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, users[booking.BookerID], items[booking.ItemID]); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// FromDomainShortBooking конвертирует бронирование в краткий DTO
func FromDomainShortBooking(b *domain.Booking) *ShortBookingResponse {
	if b == nil {
		return nil
	}

	return &ShortBookingResponse{
		ID:       b.ID,
		BookerID: b.BookerID,
		Start:    FormatTime(b.Start),
		End:      FormatTime(b.End),
	}
}
