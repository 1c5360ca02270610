package http

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/khoahotran/skillfolio/internal/domain/sector"
	"github.com/khoahotran/skillfolio/pkg/apperror"
)

// currentUserID reads the authenticated user; on failure the error is already
// attached to c.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("user not found in context", nil))
		return uuid.Nil, false
	}
	return id, true
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid "+name, err))
		return uuid.Nil, false
	}
	return id, true
}

// sectorParam parses the :sector route segment case-insensitively.
func sectorParam(c *gin.Context) (sector.Sector, bool) {
	s, err := sector.Parse(c.Param("sector"))
	if err != nil {
		c.Error(apperror.NewInvalidInput(err.Error(), err))
		return "", false
	}
	return s, true
}

// routeScope returns the route's sector for /sectors/:sector routes and the
// empty sector for sector-agnostic ones.
func routeScope(c *gin.Context) (sector.Sector, bool) {
	if c.Param("sector") == "" {
		return "", true
	}
	return sectorParam(c)
}

func pageQuery(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.Query("page"))
	limit, _ = strconv.Atoi(c.Query("limit"))
	return page, limit
}
