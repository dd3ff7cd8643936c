package handler

import (
	"net/http"
	"strconv"

	"Micro_Social/internal/repository/mysql"
	"Micro_Social/internal/service"

	"github.com/gin-gonic/gin"
)

type FollowHandler struct {
	svc *service.FollowService
}

func NewFollowHandler() *FollowHandler {
	return &FollowHandler{svc: service.NewFollowService(mysql.DB)}
}

// Request 发起关注。公开号直接成功，私密号进待审
func (h *FollowHandler) Request(c *gin.Context) {
	targetID, ok := paramID(c, "id")
	if !ok {
		return
	}
	edge, changed, err := h.svc.Request(c.Request.Context(), userIDFromCtx(c), targetID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"changed": changed, "status": edge.Status})
}

// Accept 接受一条待审关注请求
func (h *FollowHandler) Accept(c *gin.Context) {
	edgeID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Accept(c.Request.Context(), userIDFromCtx(c), edgeID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// Decline 拒绝请求，对方之后可重新发起
func (h *FollowHandler) Decline(c *gin.Context) {
	edgeID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Decline(c.Request.Context(), userIDFromCtx(c), edgeID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// Unfollow 取关，无论当前是 Pending 还是 Accepted
func (h *FollowHandler) Unfollow(c *gin.Context) {
	targetID, ok := paramID(c, "id")
	if !ok {
		return
	}
	changed, err := h.svc.Unfollow(c.Request.Context(), userIDFromCtx(c), targetID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"changed": changed})
}

// RemoveFollower 把某个粉丝移出自己的粉丝列表
func (h *FollowHandler) RemoveFollower(c *gin.Context) {
	followerID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.RemoveFollower(c.Request.Context(), userIDFromCtx(c), followerID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// ListPending 自己收到的待处理关注请求
func (h *FollowHandler) ListPending(c *gin.Context) {
	rows, err := h.svc.ListPendingRequests(c.Request.Context(), userIDFromCtx(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": rows})
}

// ListFollowings 获取关注列表
func (h *FollowHandler) ListFollowings(c *gin.Context) {
	userID, _ := strconv.ParseUint(c.Query("user_id"), 10, 64)
	cursor, _ := strconv.ParseUint(c.Query("cursor"), 10, 64)
	limit, _ := strconv.Atoi(c.Query("limit"))
	rows, next, err := h.svc.ListFollowings(c.Request.Context(), userID, cursor, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": rows, "next_cursor": next})
}

// ListFollowers 获取粉丝列表
func (h *FollowHandler) ListFollowers(c *gin.Context) {
	userID, _ := strconv.ParseUint(c.Query("user_id"), 10, 64)
	cursor, _ := strconv.ParseUint(c.Query("cursor"), 10, 64)
	limit, _ := strconv.Atoi(c.Query("limit"))
	rows, next, err := h.svc.ListFollowers(c.Request.Context(), userID, cursor, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": rows, "next_cursor": next})
}

// Relation 获取用户间关系
func (h *FollowHandler) Relation(c *gin.Context) {
	from, _ := strconv.ParseUint(c.Query("from"), 10, 64)
	to, _ := strconv.ParseUint(c.Query("to"), 10, 64)
	ok, err := h.svc.IsFollowing(c.Request.Context(), from, to)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": ok})
}
