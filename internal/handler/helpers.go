package handler

import (
	"net/http"
	"strconv"

	"Micro_Social/internal/middleware"
	"Micro_Social/internal/model"
	"Micro_Social/internal/pkg"
	"Micro_Social/internal/service"

	"github.com/gin-gonic/gin"
)

// userIDFromCtx 未登录返回 0
func userIDFromCtx(c *gin.Context) uint64 {
	if v, ok := c.Get(middleware.ContextUserIDKey); ok {
		if id, ok2 := v.(uint64); ok2 {
			return id
		}
	}
	return 0
}

func actorFromCtx(c *gin.Context) service.Actor {
	actor := service.Actor{ID: userIDFromCtx(c)}
	if v, ok := c.Get(middleware.ContextRoleKey); ok {
		if role, ok2 := v.(int); ok2 {
			actor.Admin = role == model.RoleAdmin
		}
	}
	return actor
}

func paramID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid " + name})
		return 0, false
	}
	return id, true
}

func pageQuery(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("size"))
	return page, size
}

// fail 业务错误统一出口
func fail(c *gin.Context, err error) {
	c.JSON(pkg.HTTPStatus(err), gin.H{"msg": err.Error()})
}
