package repository

import (
	"context"
	"fmt"
	"time"
	"word_duel_backend/internal/model"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type FriendshipRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
	ctx   context.Context
}

func NewFriendshipRepository(db *gorm.DB, rdb *redis.Client) *FriendshipRepository {
	return &FriendshipRepository{
		DB:    db,
		Redis: rdb,
		ctx:   context.Background(),
	}
}

// CreateFriendship 建立双向好友关系，两行同事务写入
func (r *FriendshipRepository) CreateFriendship(f *model.Friendship) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(f).Error; err != nil {
			return err
		}
		reverse := &model.Friendship{
			UserID:   f.FriendID,
			FriendID: f.UserID,
		}
		return tx.Create(reverse).Error
	})

	if err == nil && r.Redis != nil {
		// 清除关系缓存
		r.Redis.Del(r.ctx, fmt.Sprintf("relation:friends:%d", f.UserID))
		r.Redis.Del(r.ctx, fmt.Sprintf("relation:friends:%d", f.FriendID))
	}
	return err
}

func (r *FriendshipRepository) GetFriends(userID uint) ([]model.User, error) {
	var friends []model.User
	err := r.DB.Joins("JOIN friendships ON friendships.friend_id = users.id").
		Where("friendships.user_id = ?", userID).
		Find(&friends).Error
	return friends, err
}

// GetFriendIDs 只获取好友的 ID 列表
func (r *FriendshipRepository) GetFriendIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Table("friendships").
		Where("user_id = ?", userID).
		Pluck("friend_id", &ids).Error
	return ids, err
}

// GetFriendIDsCached 获取好友 ID 列表 (带缓存)
func (r *FriendshipRepository) GetFriendIDsCached(userID uint) ([]uint, error) {
	if r.Redis == nil {
		return r.GetFriendIDs(userID)
	}

	key := fmt.Sprintf("relation:friends:%d", userID)
	cached, err := r.Redis.SMembers(r.ctx, key).Result()
	if err == nil && len(cached) > 0 {
		var ids []uint
		for _, s := range cached {
			var id uint
			fmt.Sscanf(s, "%d", &id)
			if id > 0 {
				ids = append(ids, id)
			}
		}
		return ids, nil
	}

	// 缓存失效，回源数据库
	ids, err := r.GetFriendIDs(userID)
	if err == nil && len(ids) > 0 {
		pipe := r.Redis.Pipeline()
		for _, id := range ids {
			pipe.SAdd(r.ctx, key, id)
		}
		pipe.Expire(r.ctx, key, 24*time.Hour)
		pipe.Exec(r.ctx)
	} else if err == nil {
		// 防止缓存穿透：存一个特殊值并设置短过期时间
		r.Redis.SAdd(r.ctx, key, 0)
		r.Redis.Expire(r.ctx, key, 5*time.Minute)
	}
	return ids, err
}

func (r *FriendshipRepository) IsFriend(userID, friendID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Friendship{}).
		Where("user_id = ? AND friend_id = ?", userID, friendID).
		Count(&count).Error
	return count > 0, err
}
