package itemservice

import "github.com/m04kA/SMC-RentalService/internal/domain"

// Item модель вещи из ItemService
type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
}

// ToDomain конвертирует модель клиента в domain.Item
func (i *Item) ToDomain() *domain.Item {
	return &domain.Item{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Available:   i.Available,
		OwnerID:     i.OwnerID,
	}
}
