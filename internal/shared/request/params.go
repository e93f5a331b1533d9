package request

import (
	"strconv"

	"bookstore-catalog/internal/domains/catalog"
	"bookstore-catalog/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Paging reads page/pageSize with defaults 1/10. Range checks happen in the services.
func Paging(c *gin.Context) (page, pageSize int, ok bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(catalog.DefaultPage)))
	if err != nil {
		response.BadRequest(c, "page must be an integer")
		return 0, 0, false
	}
	pageSize, err = strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(catalog.DefaultPageSize)))
	if err != nil {
		response.BadRequest(c, "pageSize must be an integer")
		return 0, 0, false
	}
	return page, pageSize, true
}
