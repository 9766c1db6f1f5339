package user

import (
	"encoding/json"
	"time"
)

// User - профиль пловца. Клиент хранит копию в локальном кэше сессии.
type User struct {
	ID        int       `json:"id"`
	UUID      string    `json:"uuid"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Token     string    `json:"token,omitempty"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// хэш пароля, наружу не отдаётся
	Password string `json:"-"`
}

// UnmarshalJSON дополнительно понимает ключи в стиле gorm: ID, CreatedAt, UpdatedAt.
// ID совпадает с id и без этого, поиск полей в encoding/json регистронезависимый.
func (u *User) UnmarshalJSON(b []byte) error {
	type plain User
	var aux struct {
		plain
		GormCreatedAt *time.Time `json:"CreatedAt"`
		GormUpdatedAt *time.Time `json:"UpdatedAt"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	*u = User(aux.plain)
	if u.CreatedAt.IsZero() && aux.GormCreatedAt != nil {
		u.CreatedAt = *aux.GormCreatedAt
	}
	if u.UpdatedAt.IsZero() && aux.GormUpdatedAt != nil {
		u.UpdatedAt = *aux.GormUpdatedAt
	}
	return nil
}

// RegisterRequest - тело POST /users.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest - тело POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileRequest - тело PUT /users/{id}.
type ProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
