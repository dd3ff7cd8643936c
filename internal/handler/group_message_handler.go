package handler

import (
	"net/http"

	"Micro_Social/internal/repository/mysql"
	"Micro_Social/internal/service"

	"github.com/gin-gonic/gin"
)

type GroupMessageHandler struct {
	svc *service.GroupMessageService
}

func NewGroupMessageHandler(moderation *service.ModerationService) *GroupMessageHandler {
	return &GroupMessageHandler{svc: service.NewGroupMessageService(mysql.DB, moderation)}
}

type messageReq struct {
	Content string `json:"content" binding:"required"`
}

// Post 发群消息，仅已接受成员
func (h *GroupMessageHandler) Post(c *gin.Context) {
	groupID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req messageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	msg, err := h.svc.Post(c.Request.Context(), actorFromCtx(c), groupID, req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// Edit 改消息，作者本人且此刻仍是成员
func (h *GroupMessageHandler) Edit(c *gin.Context) {
	messageID, ok := paramID(c, "mid")
	if !ok {
		return
	}
	var req messageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	if err := h.svc.Edit(c.Request.Context(), actorFromCtx(c), messageID, req.Content); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// Delete 删消息，作者、版主或管理员
func (h *GroupMessageHandler) Delete(c *gin.Context) {
	messageID, ok := paramID(c, "mid")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), actorFromCtx(c), messageID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// List 群消息列表
func (h *GroupMessageHandler) List(c *gin.Context) {
	groupID, ok := paramID(c, "id")
	if !ok {
		return
	}
	page, size := pageQuery(c)
	rows, err := h.svc.ListByGroup(c.Request.Context(), groupID, page, size)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": rows})
}
