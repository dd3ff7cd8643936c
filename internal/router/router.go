package router

import (
	"os"

	"Micro_Social/internal/handler"
	"Micro_Social/internal/middleware"
	"Micro_Social/internal/pkg"
	"Micro_Social/internal/repository/mysql"
	"Micro_Social/internal/repository/redis"
	"Micro_Social/internal/service"

	"github.com/gin-gonic/gin"
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func InitRouter() *gin.Engine {
	r := gin.Default()

	// 配置邮件环境
	emailCfg := pkg.SMTPConfig{
		Host:     envOr("SMTP_HOST", "smtp.example.com"),
		Port:     587,
		Username: envOr("SMTP_USER", "no-reply@example.com"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     envOr("SMTP_FROM", "NoReply <no-reply@example.com>"),
	}
	storage := &pkg.FileStorage{Root: envOr("UPLOAD_ROOT", "./uploads")}

	emailSvc := service.NewEmailService(emailCfg)
	moderation := service.NewModerationService(
		mysql.DB,
		service.NewOpenAIModerationClient(os.Getenv("OPENAI_API_KEY")),
	)

	user := handler.NewUserHandler(emailSvc, storage)
	email := handler.NewEmailHandler(emailSvc)
	profile := handler.NewProfileHandler(emailSvc, moderation, storage)
	follow := handler.NewFollowHandler()
	group := handler.NewGroupHandler()
	message := handler.NewGroupMessageHandler(moderation)
	post := handler.NewPostHandler(moderation, storage)
	comment := handler.NewCommentHandler(moderation)
	reaction := handler.NewReactionHandler(redis.NewReactionCacheRepository())
	feed := handler.NewFeedHandler()

	// 邮件相关接口
	emailGroup := r.Group("/api/email")
	{
		emailGroup.POST("/:scope/code", email.SendCode)
	}

	// 用户相关接口
	userGroup := r.Group("/api/user")
	{
		userGroup.POST("/register", user.Register)
		userGroup.POST("/login", user.Login)
		userGroup.POST("/reset", user.ResetPassword)
	}

	// token相关接口
	tokenGroup := r.Group("/api/token")
	{
		tokenGroup.POST("/refresh", user.TokenRefresh)
	}

	// 登录态接口
	authGroup := r.Group("/api/auth")
	authGroup.Use(middleware.AuthMiddleware())
	{
		authGroup.POST("/logout", user.Logout)
		authGroup.POST("/change-password", user.ChangePassword)
	}

	// 资料页：游客可看公开资料
	profileGroup := r.Group("/api/profile")
	{
		profileGroup.GET("/search", middleware.AuthMiddleware(), profile.Search)
		profileGroup.GET("/:id", middleware.OptionalAuth(), profile.Show)
		profileGroup.POST("/edit", middleware.AuthMiddleware(), profile.Edit)
	}

	// 用户关注相关接口
	followGroup := r.Group("/api/follow")
	followGroup.Use(middleware.AuthMiddleware())
	{
		followGroup.POST("/:id", follow.Request)
		followGroup.DELETE("/:id", follow.Unfollow)
		followGroup.POST("/requests/:id/accept", follow.Accept)
		followGroup.POST("/requests/:id/decline", follow.Decline)
		followGroup.DELETE("/followers/:id", follow.RemoveFollower)
		followGroup.GET("/requests", follow.ListPending)
		followGroup.GET("/followings", follow.ListFollowings)
		followGroup.GET("/followers", follow.ListFollowers)
		followGroup.GET("/relation", follow.Relation)
	}

	// 群组相关接口
	groupGroup := r.Group("/api/group")
	groupGroup.Use(middleware.AuthMiddleware())
	{
		groupGroup.POST("/create", group.Create)
		groupGroup.GET("/list", group.List)
		groupGroup.GET("/:id", group.Detail)
		groupGroup.PUT("/:id", group.Update)
		groupGroup.DELETE("/:id", group.Delete)
		groupGroup.POST("/:id/join", group.Join)
		groupGroup.POST("/:id/leave", group.Leave)
		groupGroup.GET("/:id/members", group.Members)
		groupGroup.GET("/:id/requests", group.Pending)
		groupGroup.POST("/:id/requests/:mid/accept", group.Accept)
		groupGroup.POST("/:id/requests/:mid/reject", group.Reject)
		groupGroup.DELETE("/:id/members/:mid", group.RemoveMember)

		groupGroup.POST("/:id/messages", message.Post)
		groupGroup.GET("/:id/messages", message.List)
		groupGroup.PUT("/messages/:mid", message.Edit)
		groupGroup.DELETE("/messages/:mid", message.Delete)
	}

	// 帖子相关接口
	postGroup := r.Group("/api/post")
	{
		postGroup.POST("/create", middleware.AuthMiddleware(), post.Create)
		postGroup.GET("/:id", middleware.OptionalAuth(), post.Show)
		postGroup.PUT("/:id", middleware.AuthMiddleware(), post.Edit)
		postGroup.DELETE("/:id", middleware.AuthMiddleware(), post.Delete)

		postGroup.POST("/:id/comments", middleware.AuthMiddleware(), comment.Create)
		postGroup.GET("/:id/comments", middleware.OptionalAuth(), comment.List)
		postGroup.DELETE("/comments/:cid", middleware.AuthMiddleware(), comment.Delete)

		postGroup.POST("/:id/reactions", middleware.AuthMiddleware(), reaction.React)
		postGroup.GET("/:id/reactions", middleware.OptionalAuth(), reaction.Counts)
	}

	// 时间线接口，游客可访问
	feedGroup := r.Group("/api/feed")
	feedGroup.Use(middleware.OptionalAuth())
	{
		feedGroup.GET("/discover", feed.Discover)
		feedGroup.GET("/following", feed.Following)
	}

	// 管理员接口
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.AuthMiddleware(), middleware.AdminOnly())
	{
		adminGroup.POST("/users/:id/deactivate", user.Deactivate)
		adminGroup.POST("/users/:id/reactivate", user.Reactivate)
	}

	return r
}
