package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		pageSize   int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", 0, 0, 10, 0},
		{"first page", 1, 20, 20, 0},
		{"third page", 3, 20, 20, 40},
		{"negative page", -5, 10, 10, 0},
		{"page size capped", 1, 1000, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := NormalizePage(tt.page, tt.pageSize)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}
