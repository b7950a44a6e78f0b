package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid      = errors.New("参数错误")
	ErrUserNotFound      = errors.New("用户不存在")
	ErrUserUsernameExist = errors.New("用户名已存在")
	ErrUserEmailExist    = errors.New("邮箱已注册")
	ErrPasswordIncorrect = errors.New("用户名或密码错误")
	ErrTokenInvalid      = errors.New("令牌无效或已过期")
	ErrPostNotFound      = errors.New("文章不存在")
	ErrPostForbidden     = errors.New("无权操作此文章")
	ErrCommentNotFound   = errors.New("评论不存在")
	ErrCommentForbidden  = errors.New("无权操作此评论")
	ErrCategoryNotFound  = errors.New("分类不存在")
	ErrCategoryExist     = errors.New("分类已存在")
	ErrUserFollowSelf    = errors.New("用户不能关注自己")
	ErrPasswordMismatch  = errors.New("两次输入的密码不一致")
	ErrResetTokenInvalid = errors.New("重置凭据无效或已过期")
	ErrFileNotSupported  = errors.New("不支持的文件类型")
	ErrSlugAlreadyTaken  = errors.New("slug已被占用")
	ErrPromoteNotAllowed = errors.New("目标用户无法被提升")
	UnauthorizedError    = errors.New("权限不足")
	UnExpectedError      = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:      BadRequest,
	ErrUserNotFound:      NotFound,
	ErrUserUsernameExist: BadRequest,
	ErrUserEmailExist:    BadRequest,
	ErrPasswordIncorrect: Unauthorized,
	ErrTokenInvalid:      Unauthorized,
	ErrPostNotFound:      NotFound,
	ErrPostForbidden:     Forbidden,
	ErrCommentNotFound:   NotFound,
	ErrCommentForbidden:  Forbidden,
	ErrCategoryNotFound:  BadRequest,
	ErrCategoryExist:     BadRequest,
	ErrUserFollowSelf:    BadRequest,
	ErrPasswordMismatch:  BadRequest,
	ErrResetTokenInvalid: BadRequest,
	ErrFileNotSupported:  BadRequest,
	ErrSlugAlreadyTaken:  BadRequest,
	ErrPromoteNotAllowed: BadRequest,
	UnauthorizedError:    Forbidden,
	UnExpectedError:      InternalServerError,
}
