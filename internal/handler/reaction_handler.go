package handler

import (
	"net/http"

	"Micro_Social/internal/repository/mysql"
	"Micro_Social/internal/repository/redis"
	"Micro_Social/internal/service"

	"github.com/gin-gonic/gin"
)

type ReactionHandler struct {
	svc *service.ReactionService
}

func NewReactionHandler(cache *redis.ReactionCacheRepository) *ReactionHandler {
	return &ReactionHandler{svc: service.NewReactionService(mysql.DB, cache)}
}

// React 表情开关：同类型再点一次取消，换类型原地改写
func (h *ReactionHandler) React(c *gin.Context) {
	postID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Type string `json:"type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	reaction, err := h.svc.React(c.Request.Context(), userIDFromCtx(c), postID, req.Type)
	if err != nil {
		fail(c, err)
		return
	}
	if reaction == nil {
		c.JSON(http.StatusOK, gin.H{"reaction": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reaction": reaction.Type})
}

// Counts 各表情计数 + 自己的表情
func (h *ReactionHandler) Counts(c *gin.Context) {
	postID, ok := paramID(c, "id")
	if !ok {
		return
	}
	counts, err := h.svc.Counts(c.Request.Context(), postID)
	if err != nil {
		fail(c, err)
		return
	}

	var mine string
	if uid := userIDFromCtx(c); uid != 0 {
		if r, err := h.svc.MyReaction(c.Request.Context(), uid, postID); err == nil && r != nil {
			mine = r.Type
		}
	}
	c.JSON(http.StatusOK, gin.H{"counts": counts, "mine": mine})
}
