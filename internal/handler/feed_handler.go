package handler

import (
	"net/http"

	"Micro_Social/internal/repository/mysql"
	"Micro_Social/internal/service"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	svc *service.FeedService
}

func NewFeedHandler() *FeedHandler {
	return &FeedHandler{svc: service.NewFeedService(mysql.DB)}
}

// Discover 发现页：对自己可见的全部帖子，游客只看公开作者
func (h *FeedHandler) Discover(c *gin.Context) {
	page, size := pageQuery(c)
	rows, err := h.svc.Discover(c.Request.Context(), userIDFromCtx(c), page, size)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": rows})
}

// Following 关注页：自己 + 已接受关注对象的帖子
func (h *FeedHandler) Following(c *gin.Context) {
	page, size := pageQuery(c)
	rows, err := h.svc.Following(c.Request.Context(), userIDFromCtx(c), page, size)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": rows})
}
