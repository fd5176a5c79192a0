package utils

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"foodgram/internal/pkg/apperr"
)

// ParamID parses a positive integer path parameter.
func ParamID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation(name, "must be a positive integer")
	}
	return id, nil
}

// QueryFlag reports whether a query parameter is set to a truthy value
// ("1", "true").
func QueryFlag(c *gin.Context, name string) bool {
	switch strings.ToLower(c.Query(name)) {
	case "1", "true":
		return true
	}
	return false
}

// QueryInt parses an optional integer query parameter. ok is false when the
// parameter is absent.
func QueryInt(c *gin.Context, name string) (value int, ok bool, err error) {
	raw, present := c.GetQuery(name)
	if !present || raw == "" {
		return 0, false, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, apperr.Validation(name, "must be an integer")
	}
	return v, true, nil
}
