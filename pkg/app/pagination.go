package app

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// PaginationConfig 分页配置
type PaginationConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

var DefaultPaginationConfig = PaginationConfig{
	DefaultPageSize: 20,
	MaxPageSize:     100,
}

func queryInt(c *gin.Context, name string) int {
	s, ok := c.GetQuery(name)
	if !ok {
		s = c.PostForm(name)
	}
	n, _ := strconv.Atoi(s)
	return n
}

func GetPage(c *gin.Context) int {
	if page := queryInt(c, "page"); page > 0 {
		return page
	}
	return 1
}

// GetPageSize 获取分页大小
func GetPageSize(c *gin.Context) int {
	size := queryInt(c, "pageSize")
	switch {
	case size <= 0:
		return DefaultPaginationConfig.DefaultPageSize
	case size > DefaultPaginationConfig.MaxPageSize:
		return DefaultPaginationConfig.MaxPageSize
	}
	return size
}

func GetPageOffset(page, pageSize int) int {
	if page <= 0 {
		return 0
	}
	return (page - 1) * pageSize
}

func NewPager(c *gin.Context, totalRows int) *Pager {
	return &Pager{
		Page:      GetPage(c),
		PageSize:  GetPageSize(c),
		TotalRows: totalRows,
	}
}
