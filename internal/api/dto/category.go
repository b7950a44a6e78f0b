package dto

// CategoryDTO 分类
type CategoryDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CategoryBaseDTO 分类 - 新增或修改
type CategoryBaseDTO struct {
	Name string `json:"name" binding:"required" validate:"min=1,max=100"`
}
