package service

import "Inkwell/internal/pkg/consts"

// NormalizePage 规整分页参数并换算为 limit/offset
func NormalizePage(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = consts.DefaultPageSize
	}
	if pageSize > consts.MaxPageSize {
		pageSize = consts.MaxPageSize
	}
	return pageSize, (page - 1) * pageSize
}
