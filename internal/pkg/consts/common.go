package consts

const (
	MimePrefixImage = "image"
)

const (
	// ViewerCookie 匿名访客的会话标识 cookie，用于浏览计数去重
	ViewerCookie = "viewer_id"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)
