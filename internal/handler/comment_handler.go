package handler

import (
	"net/http"

	"Micro_Social/internal/repository/mysql"
	"Micro_Social/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	svc *service.CommentService
}

func NewCommentHandler(moderation *service.ModerationService) *CommentHandler {
	return &CommentHandler{svc: service.NewCommentService(mysql.DB, moderation)}
}

// Create 评论
func (h *CommentHandler) Create(c *gin.Context) {
	postID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	comment, err := h.svc.Create(c.Request.Context(), userIDFromCtx(c), postID, req.Text)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comment": comment})
}

// Delete 作者或管理员
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, ok := paramID(c, "cid")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), actorFromCtx(c), commentID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// List 帖子评论列表
func (h *CommentHandler) List(c *gin.Context) {
	postID, ok := paramID(c, "id")
	if !ok {
		return
	}
	page, size := pageQuery(c)
	rows, err := h.svc.ListByPost(c.Request.Context(), userIDFromCtx(c), postID, page, size)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": rows})
}
