package user

import "swimlog/internal/domain/user"

type registerInput struct {
	Body user.RegisterRequest
}

type registerOutput struct {
	Body RegisterResponse
}

type RegisterResponse struct {
	User    user.User `json:"user"`
	Message string    `json:"message"`
}

type verifyInput struct {
	Token string `query:"token" doc:"Токен из письма"`
}

type messageOutput struct {
	Body MessageResponse
}

type MessageResponse struct {
	Message string `json:"message"`
}

type loginInput struct {
	Body user.LoginRequest
}

type loginOutput struct {
	Body LoginResponse
}

type LoginResponse struct {
	User  user.User `json:"user"`
	Token string    `json:"token,omitempty"`
}

type idInput struct {
	ID int `path:"id" example:"1" doc:"ID пользователя"`
}

type uuidInput struct {
	UUID string `path:"uuid" doc:"UUID пользователя"`
}

type updateInput struct {
	ID   int `path:"id" example:"1" doc:"ID пользователя"`
	Body user.ProfileRequest
}

type updateByUUIDInput struct {
	UUID string `path:"uuid" doc:"UUID пользователя"`
	Body user.ProfileRequest
}

type userOutput struct {
	Body user.User
}
