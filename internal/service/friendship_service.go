package service

import (
	"word_duel_backend/internal/model"
	"word_duel_backend/internal/repository"
	"word_duel_backend/internal/util"
)

type FriendshipService struct {
	FriendRepo *repository.FriendshipRepository
	UserRepo   *repository.UserRepository
}

func NewFriendshipService(friendRepo *repository.FriendshipRepository, userRepo *repository.UserRepository) *FriendshipService {
	return &FriendshipService{
		FriendRepo: friendRepo,
		UserRepo:   userRepo,
	}
}

// AddFriend 按用户名加好友，双向写入，幂等
func (s *FriendshipService) AddFriend(userID uint, friendUsername string) (*model.User, error) {
	friend, err := s.UserRepo.FindByUsername(friendUsername)
	if err != nil {
		return nil, util.ErrFriendNotFound
	}
	if friend.ID == userID {
		return nil, util.ErrCannotFriendSelf
	}

	already, err := s.FriendRepo.IsFriend(userID, friend.ID)
	if err != nil {
		return nil, err
	}
	if already {
		return friend, nil
	}

	if err := s.FriendRepo.CreateFriendship(&model.Friendship{UserID: userID, FriendID: friend.ID}); err != nil {
		return nil, err
	}
	return friend, nil
}

func (s *FriendshipService) ListFriends(userID uint) ([]model.User, error) {
	return s.FriendRepo.GetFriends(userID)
}
