package domain

// User пользователь из внешнего сервиса пользователей
type User struct {
	ID    int64
	Name  string
	Email string
}

// Item вещь из внешнего сервиса вещей
type Item struct {
	ID          int64
	Name        string
	Description string
	Available   bool
	OwnerID     int64
}

// IsOwnedBy returns true if the user owns the item
func (i *Item) IsOwnedBy(userID int64) bool {
	return i.OwnerID == userID
}
