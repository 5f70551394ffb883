package paging

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultSize = 10
	maxSize     = 100
)

// Parse reads page/size query params. Pages are zero-based.
func Parse(c *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ = strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(defaultSize)))
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultSize
	}
	if size > maxSize {
		size = maxSize
	}
	return page, size
}

// Envelope is the standard list response body.
func Envelope(items any, page, size int, total int64) gin.H {
	return gin.H{
		"content":        items,
		"page":           page,
		"size":           size,
		"total_elements": total,
	}
}
