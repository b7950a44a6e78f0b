package model

// PostAnalytics 帖子聚合计数，与 Post 一对一，首次点赞或浏览时惰性创建。
// likes 始终与 post_likes 的行数对齐，views 只对去重后的浏览者累加。
type PostAnalytics struct {
	ID     uint64 `gorm:"primaryKey"`
	PostID uint64 `gorm:"not null;uniqueIndex:idx_analytics_post_id" json:"post_id"`
	Views  int64  `gorm:"not null;default:0" json:"views"`
	Likes  int64  `gorm:"not null;default:0" json:"likes"`
}

func (PostAnalytics) TableName() string {
	return "post_analytics"
}
