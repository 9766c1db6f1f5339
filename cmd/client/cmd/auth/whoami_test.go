package auth

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"swimlog/internal/domain/user"
)

func TestPrintUser(t *testing.T) {
	var buf bytes.Buffer
	printUser(&buf, user.User{
		Name:      "Анна",
		Email:     "anna@example.com",
		UUID:      "3f2b6c1e-0000-4000-8000-000000000001",
		Verified:  true,
		CreatedAt: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
	})

	out := buf.String()
	assert.Contains(t, out, "Анна")
	assert.Contains(t, out, "anna@example.com")
	assert.Contains(t, out, "Подтверждён:  да")
	assert.Contains(t, out, "2024-01-15")

	buf.Reset()
	printUser(&buf, user.User{Name: "Борис"})
	assert.Contains(t, buf.String(), "Подтверждён:  нет")
	assert.NotContains(t, buf.String(), "Создан")
}
