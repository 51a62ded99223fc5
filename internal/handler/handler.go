package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shareloop/service-sharing/internal/domain"
	"github.com/shareloop/service-sharing/internal/response"
)

// sharerHeader identifies the acting user on every authenticated route. The
// gateway in front of this service fills it in.
const sharerHeader = "X-Sharer-User-Id"

// sharerID extracts and validates the acting user's identifier. On failure
// it writes a 400 response and returns false.
func sharerID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetHeader(sharerHeader)
	if raw == "" {
		response.BadRequest(c, "missing "+sharerHeader+" header")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		response.BadRequest(c, "invalid "+sharerHeader+" header")
		return uuid.Nil, false
	}
	return id, true
}

// pathID parses a UUID path parameter. On failure it writes a 400 response
// and returns false.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// pagination derives the page window from the from/size query pair. On
// failure it writes a 400 response and returns false.
func pagination(c *gin.Context) (domain.PageRequest, bool) {
	from, err := strconv.Atoi(c.DefaultQuery("from", "0"))
	if err != nil {
		response.BadRequest(c, "from must be an integer")
		return domain.PageRequest{}, false
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil {
		response.BadRequest(c, "size must be an integer")
		return domain.PageRequest{}, false
	}

	page, err := domain.NewPageRequest(from, size)
	if err != nil {
		response.Error(c, err)
		return domain.PageRequest{}, false
	}
	return page, true
}
