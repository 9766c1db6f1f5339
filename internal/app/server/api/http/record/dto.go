package record

import "swimlog/internal/domain/record"

type listOutput struct {
	Body []record.Entry
}

type userIDInput struct {
	UserID int `path:"id" example:"1" doc:"ID пользователя"`
}

type userUUIDInput struct {
	UUID string `path:"uuid" doc:"UUID пользователя"`
}

type createInput struct {
	UserID int `path:"id" example:"1" doc:"ID пользователя"`
	Body   record.Payload
}

type createByUUIDInput struct {
	UUID string `path:"uuid" doc:"UUID пользователя"`
	Body record.Payload
}

type findInput struct {
	ID int `path:"id" example:"1" doc:"ID записи"`
}

type updateInput struct {
	ID   int `path:"id" example:"1" doc:"ID записи"`
	Body record.Payload
}

type output struct {
	Body record.Entry
}

type deleteOutput struct {
	Body response
}

type response struct {
	ID      int    `json:"id"`
	Message string `json:"message"`
}
