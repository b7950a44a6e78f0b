package dto

// PostDTO 文章详情
type PostDTO struct {
	// Post
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Content     string `json:"content"`
	IsPublished bool   `json:"is_published"`
	ImageURL    string `json:"image_url"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`

	// Category
	Category *CategoryDTO `json:"category"`

	// Author
	AuthorID       uint64 `json:"author_id"`
	AuthorUsername string `json:"author_username"`

	// Analytics
	Views         int64 `json:"views"`
	Likes         int64 `json:"likes"`
	CommentsCount int64 `json:"comments_count"`
}

// PostBaseDTO 文章 - 新增，标题和正文至少填一项
type PostBaseDTO struct {
	Title       string  `json:"title" validate:"omitempty,max=255"`
	Content     string  `json:"content"`
	Slug        *string `json:"slug,omitempty" validate:"omitempty,max=255"`
	Category    *string `json:"category,omitempty"`
	IsPublished bool    `json:"is_published"`
}

// PostPatchDTO 文章 - 修改，字段为空表示不变
type PostPatchDTO struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Content     *string `json:"content,omitempty" validate:"omitempty,min=1"`
	Category    *string `json:"category,omitempty"`
	IsPublished *bool   `json:"is_published,omitempty"`
}

// PostPageDTO 文章分页
type PostPageDTO struct {
	List    []*PostDTO `json:"list"`
	HasMore bool       `json:"has_more"`
}

// LikeResultDTO 点赞切换结果
type LikeResultDTO struct {
	IsLiked    bool  `json:"is_liked"`
	LikesCount int64 `json:"likes_count"`
}

// ViewResultDTO 浏览计数结果
type ViewResultDTO struct {
	Views int64 `json:"views"`
}

// PostAnalyticsDTO 文章统计数据
type PostAnalyticsDTO struct {
	PostID   uint64 `json:"post_id"`
	Views    int64  `json:"views"`
	Likes    int64  `json:"likes"`
	Comments int64  `json:"comments"`
}
