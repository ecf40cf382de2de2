package helpers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func StringToInt(s string) (int, error) {
	return strconv.Atoi(s)
}

// UUIDParam parses a :param path segment as a uuid.
func UUIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(name))
}

// Pagination reads ?page and ?limit with the usual defaults.
func Pagination(c *gin.Context) (page, limit int, err error) {
	page, err = StringToInt(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 0, 0, fmt.Errorf("invalid page number")
	}
	limit, err = StringToInt(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		return 0, 0, fmt.Errorf("invalid limit")
	}
	return page, limit, nil
}

// NewOrderRef builds a provider-agnostic order identifier, unique enough
// for invoice display and webhook correlation.
func NewOrderRef() string {
	return fmt.Sprintf("EH-%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
