package health

import "time"

type statusInput struct{}

type statusOutput struct {
	Body Status
}

// Status - состояние сервера разработки и размер хранилища в памяти.
type Status struct {
	Status    string    `json:"status" example:"OK" doc:"Состояние сервиса"`
	StartedAt time.Time `json:"started_at" doc:"Время запуска"`
	Uptime    string    `json:"uptime" example:"1h2m3s" doc:"Время работы"`
	Users     int       `json:"users" doc:"Количество зарегистрированных пользователей"`
	Records   int       `json:"records" doc:"Количество записей о заплывах"`
}
