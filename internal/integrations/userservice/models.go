package userservice

import "github.com/m04kA/SMC-RentalService/internal/domain"

// User модель пользователя из UserService
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ToDomain конвертирует модель клиента в domain.User
func (u *User) ToDomain() *domain.User {
	return &domain.User{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
