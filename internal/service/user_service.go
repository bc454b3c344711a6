package service

import (
	"word_duel_backend/internal/model"
	"word_duel_backend/internal/repository"
	"word_duel_backend/internal/util"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) GetByID(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) GetByUsername(username string) (*model.User, error) {
	user, err := s.UserRepo.FindByUsername(username)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	return user, nil
}

// TouchLastSeen 刷新最近活跃时间，由中间件异步调用
func (s *UserService) TouchLastSeen(id uint) {
	_ = s.UserRepo.UpdateLastSeen(id)
}
