package util

import "errors"

var (
	ErrUserNotFound           = errors.New("用户不存在")
	ErrEmailRegistered        = errors.New("该邮箱已被注册")
	ErrCategoryNotFound       = errors.New("category not found")
	ErrCategoryCodeTaken      = errors.New("category code already exists")
	ErrRecommendationNotFound = errors.New("recommendation not found")
	ErrAlreadyCheckedIn       = errors.New("今日已完成打卡")
	ErrInvalidScore           = errors.New("score must be between 0 and 100")
)
