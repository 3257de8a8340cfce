package service

import (
	"github.com/dom/todo-api/internal/repository"
	"github.com/dom/todo-api/internal/token"
)

type Services struct {
	Auth *AuthService
	Task *TaskService
}

func NewServices(repos *repository.Repositories, issuer *token.Issuer) *Services {
	return &Services{
		Auth: NewAuthService(repos.User, repos.Revocation, issuer),
		Task: NewTaskService(repos.Task),
	}
}
