package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"toyboard/internal/app"
	"toyboard/internal/search"
	"toyboard/internal/transport/http/middleware"
	"toyboard/internal/transport/http/response"
)

// PageOptions bounds the page size clients may request.
type PageOptions struct {
	DefaultSize int
	MaxSize     int
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// parsePage reads the 0-based page and size query parameters.
func parsePage(c *gin.Context, opts PageOptions) (search.Page, bool) {
	index, size := 0, 0
	if raw := c.Query("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid page")
			return search.Page{}, false
		}
		index = parsed
	}
	if raw := c.Query("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid size")
			return search.Page{}, false
		}
		size = parsed
	}
	return search.NewPage(index, size, opts.DefaultSize, opts.MaxSize), true
}

// parseIsAsc reads the optional is_asc flag. Absent means newest first.
func parseIsAsc(c *gin.Context) (*bool, bool) {
	raw := c.Query("is_asc")
	if raw == "" {
		return nil, true
	}
	asc, err := strconv.ParseBool(raw)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid is_asc")
		return nil, false
	}
	return &asc, true
}

// callerFrom prefers the authenticated member; otherwise the request's
// password is the credential.
func callerFrom(c *gin.Context, password string) app.Caller {
	if memberID, ok := middleware.MemberID(c); ok {
		return app.AsMember(memberID)
	}
	return app.AsAnonymous(password)
}

// bindOptionalJSON binds a body if one was sent. DELETE requests from
// members usually carry none.
func bindOptionalJSON(c *gin.Context, dst interface{}) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return false
	}
	return true
}
