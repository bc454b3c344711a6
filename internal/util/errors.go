package util

import "errors"

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrUsernameTaken      = errors.New("用户名已被注册")
	ErrFriendNotFound     = errors.New("好友不存在")
	ErrCannotFriendSelf   = errors.New("不能添加自己为好友")
	ErrWordlistNotFound   = errors.New("词表不存在")
	ErrWordNotFound       = errors.New("单词不存在")
	ErrCannotDuelSelf     = errors.New("不能和自己对战")
	ErrSessionNotFound    = errors.New("对战会话不存在")
	ErrNotParticipant     = errors.New("不是该会话的参与者")
	ErrEmptyWordPool      = errors.New("练习池中没有可用单词")
	ErrTaskNotFound       = errors.New("任务不存在")
	ErrTaskAccessDenied   = errors.New("无权访问该任务")
	ErrVisionUnconfigured = errors.New("未配置图片识别模型")
)
