package dto

// CommentCreateDTO 创建评论请求
type CommentCreateDTO struct {
	Content string `json:"content" binding:"required,max=1000"`
}

// CommentUpdateDTO 修改评论请求
type CommentUpdateDTO struct {
	Content string `json:"content" binding:"required,max=1000"`
}

// CommentDTO 评论返回详情
type CommentDTO struct {
	ID             uint64 `json:"id"`
	PostID         uint64 `json:"post_id"`
	AuthorID       uint64 `json:"author_id"`
	AuthorUsername string `json:"author_username"`
	Content        string `json:"content"`
	CreatedAt      string `json:"created_at"`
}
