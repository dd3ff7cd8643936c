package handler

import (
	"net/http"

	"Micro_Social/internal/repository/mysql"
	"Micro_Social/internal/service"

	"github.com/gin-gonic/gin"
)

type GroupHandler struct {
	svc *service.GroupService
}

func NewGroupHandler() *GroupHandler {
	return &GroupHandler{svc: service.NewGroupService(mysql.DB)}
}

type groupReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// Create 建群，创建者即版主
func (h *GroupHandler) Create(c *gin.Context) {
	var req groupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	group, err := h.svc.CreateGroup(c.Request.Context(), userIDFromCtx(c), req.Name, req.Description)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"group": group})
}

// Join 申请入群
func (h *GroupHandler) Join(c *gin.Context) {
	groupID, ok := paramID(c, "id")
	if !ok {
		return
	}
	changed, err := h.svc.RequestJoin(c.Request.Context(), userIDFromCtx(c), groupID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"changed": changed})
}

// Accept 版主审批通过入群申请
func (h *GroupHandler) Accept(c *gin.Context) {
	groupID, ok := paramID(c, "id")
	if !ok {
		return
	}
	membershipID, ok := paramID(c, "mid")
	if !ok {
		return
	}
	if err := h.svc.Accept(c.Request.Context(), userIDFromCtx(c), groupID, membershipID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// Reject 版主拒绝入群申请
func (h *GroupHandler) Reject(c *gin.Context) {
	groupID, ok := paramID(c, "id")
	if !ok {
		return
	}
	membershipID, ok := paramID(c, "mid")
	if !ok {
		return
	}
	if err := h.svc.Reject(c.Request.Context(), userIDFromCtx(c), groupID, membershipID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// Leave 退群；版主不能退
func (h *GroupHandler) Leave(c *gin.Context) {
	groupID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Leave(c.Request.Context(), userIDFromCtx(c), groupID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// RemoveMember 版主移除成员
func (h *GroupHandler) RemoveMember(c *gin.Context) {
	groupID, ok := paramID(c, "id")
	if !ok {
		return
	}
	membershipID, ok := paramID(c, "mid")
	if !ok {
		return
	}
	if err := h.svc.RemoveMember(c.Request.Context(), userIDFromCtx(c), groupID, membershipID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// Delete 删群，版主或管理员
func (h *GroupHandler) Delete(c *gin.Context) {
	groupID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteGroup(c.Request.Context(), actorFromCtx(c), groupID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// Update 改群资料，仅版主
func (h *GroupHandler) Update(c *gin.Context) {
	groupID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req groupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	if err := h.svc.UpdateGroup(c.Request.Context(), userIDFromCtx(c), groupID, req.Name, req.Description); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// List 群列表
func (h *GroupHandler) List(c *gin.Context) {
	page, size := pageQuery(c)
	rows, err := h.svc.ListGroups(c.Request.Context(), page, size)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": rows})
}

// Detail 群详情 + 自己的成员状态
func (h *GroupHandler) Detail(c *gin.Context) {
	groupID, ok := paramID(c, "id")
	if !ok {
		return
	}
	group, err := h.svc.GetGroup(c.Request.Context(), groupID)
	if err != nil {
		fail(c, err)
		return
	}
	status, err := h.svc.MembershipStatus(c.Request.Context(), userIDFromCtx(c), groupID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"group": group, "my_status": status})
}

// Members 已接受成员列表
func (h *GroupHandler) Members(c *gin.Context) {
	groupID, ok := paramID(c, "id")
	if !ok {
		return
	}
	rows, err := h.svc.ListMembers(c.Request.Context(), groupID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": rows})
}

// Pending 待审批列表，仅版主可见
func (h *GroupHandler) Pending(c *gin.Context) {
	groupID, ok := paramID(c, "id")
	if !ok {
		return
	}
	rows, err := h.svc.ListPendingRequests(c.Request.Context(), userIDFromCtx(c), groupID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": rows})
}
