package model

type Category struct {
	ID   uint64 `gorm:"primaryKey"`
	Name string `gorm:"type:varchar(100);uniqueIndex:idx_category_name;not null" json:"name"`
	Slug string `gorm:"type:varchar(120);uniqueIndex:idx_category_slug;not null" json:"slug"`
}

func (Category) TableName() string {
	return "categories"
}
