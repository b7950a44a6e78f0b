package util

import (
	"fmt"

	"github.com/gosimple/slug"
)

// Slugify 将标题转换为 URL 友好的 slug
func Slugify(title string) string {
	return slug.Make(title)
}

// SlugWithSuffix 在基础 slug 后追加序号，用于解决冲突
func SlugWithSuffix(base string, n int) string {
	return fmt.Sprintf("%s-%d", base, n)
}
