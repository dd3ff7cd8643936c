package handler

import (
	"net/http"
	"strconv"

	"Micro_Social/internal/pkg"
	"Micro_Social/internal/repository/mysql"
	"Micro_Social/internal/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	userSvc    *service.UserService
	postSvc    *service.PostService
	visibility *service.VisibilityService
}

func NewProfileHandler(emailSvc *service.EmailService, moderation *service.ModerationService, storage *pkg.FileStorage) *ProfileHandler {
	return &ProfileHandler{
		userSvc:    service.NewUserService(mysql.DB, emailSvc, storage),
		postSvc:    service.NewPostService(mysql.DB, moderation, storage),
		visibility: service.NewVisibilityService(mysql.DB),
	}
}

// Show 资料页。私密号对非粉丝只给最小字段，不带帖子等关联集合
func (h *ProfileHandler) Show(c *gin.Context) {
	targetID, ok := paramID(c, "id")
	if !ok {
		return
	}
	user, err := h.userSvc.GetActive(targetID)
	if err != nil {
		fail(c, err)
		return
	}

	viewerID := userIDFromCtx(c)
	full, err := h.visibility.CanViewFullProfile(c.Request.Context(), viewerID, user)
	if err != nil {
		fail(c, err)
		return
	}

	if !full {
		c.JSON(http.StatusOK, gin.H{
			"profile": gin.H{
				"id":          user.ID,
				"username":    user.Username,
				"avatar_path": user.AvatarPath,
				"is_private":  true,
			},
			"restricted": true,
		})
		return
	}

	page, size := pageQuery(c)
	posts, err := h.postSvc.ListByAuthor(c.Request.Context(), targetID, page, size)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"profile": gin.H{
			"id":              user.ID,
			"username":        user.Username,
			"first_name":      user.FirstName,
			"last_name":       user.LastName,
			"bio":             user.Bio,
			"avatar_path":     user.AvatarPath,
			"is_private":      user.IsPrivate,
			"follower_count":  user.FollowerCount,
			"following_count": user.FollowingCount,
		},
		"posts":      posts,
		"restricted": false,
	})
}

// Edit 资料编辑，multipart：文本字段 + 可选头像
func (h *ProfileHandler) Edit(c *gin.Context) {
	isPrivate, _ := strconv.ParseBool(c.PostForm("is_private"))
	removeAvatar, _ := strconv.ParseBool(c.PostForm("remove_avatar"))
	avatar, _ := c.FormFile("avatar")

	update := service.ProfileUpdate{
		FirstName:    c.PostForm("first_name"),
		LastName:     c.PostForm("last_name"),
		Bio:          c.PostForm("bio"),
		IsPrivate:    isPrivate,
		RemoveAvatar: removeAvatar,
	}
	if err := h.userSvc.UpdateProfile(c.Request.Context(), userIDFromCtx(c), update, avatar); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// Search 按名字搜用户
func (h *ProfileHandler) Search(c *gin.Context) {
	page, size := pageQuery(c)
	rows, err := h.userSvc.Search(c.Query("q"), page, size)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": rows})
}
