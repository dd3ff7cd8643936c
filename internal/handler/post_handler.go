package handler

import (
	"net/http"

	"Micro_Social/internal/pkg"
	"Micro_Social/internal/repository/mysql"
	"Micro_Social/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	svc *service.PostService
}

func NewPostHandler(moderation *service.ModerationService, storage *pkg.FileStorage) *PostHandler {
	return &PostHandler{svc: service.NewPostService(mysql.DB, moderation, storage)}
}

// Create 发帖，multipart：content 文本 + image/video 二选一
func (h *PostHandler) Create(c *gin.Context) {
	content := c.PostForm("content")
	image, _ := c.FormFile("image")
	video, _ := c.FormFile("video")

	post, err := h.svc.Create(c.Request.Context(), userIDFromCtx(c), content, image, video)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

// Edit 只能改文字
func (h *PostHandler) Edit(c *gin.Context) {
	postID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	if err := h.svc.Edit(c.Request.Context(), userIDFromCtx(c), postID, req.Content); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// Delete 作者或管理员
func (h *PostHandler) Delete(c *gin.Context) {
	postID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), actorFromCtx(c), postID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// Show 单帖详情，可见性不够时按不存在处理
func (h *PostHandler) Show(c *gin.Context) {
	postID, ok := paramID(c, "id")
	if !ok {
		return
	}
	post, err := h.svc.Get(c.Request.Context(), userIDFromCtx(c), postID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}
