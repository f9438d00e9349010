package router

import (
	"net/http"
	"time"

	"social-system/internal/handler"
	"social-system/internal/repository"
	"social-system/internal/service"
	dbPkg "social-system/pkg/db"
	"social-system/pkg/logger"
	"social-system/pkg/metrics"
	"social-system/pkg/response"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handlers 全部HTTP处理器
type Handlers struct {
	User          *handler.UserHandler
	Profile       *handler.ProfileHandler
	Post          *handler.PostHandler
	Follow        *handler.FollowHandler
	Like          *handler.LikeHandler
	FollowRequest *handler.FollowRequestHandler
}

// NewHandlers 组装 仓储 -> 服务 -> 处理器
func NewHandlers(db *gorm.DB, m *metrics.Metrics) *Handlers {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	followRepo := repository.NewFollowRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	requestRepo := repository.NewFollowRequestRepository(db)

	userSvc := service.NewUserService(userRepo, postRepo, followRepo)
	postSvc := service.NewPostService(postRepo, userRepo, likeRepo)
	followSvc := service.NewFollowService(followRepo)
	likeSvc := service.NewLikeService(likeRepo)
	requestSvc := service.NewFollowRequestService(requestRepo, followRepo)

	return &Handlers{
		User:          handler.NewUserHandler(userSvc, m),
		Profile:       handler.NewProfileHandler(userSvc),
		Post:          handler.NewPostHandler(postSvc, m),
		Follow:        handler.NewFollowHandler(followSvc, m),
		Like:          handler.NewLikeHandler(likeSvc, m),
		FollowRequest: handler.NewFollowRequestHandler(requestSvc, m),
	}
}

// Options 路由选项
type Options struct {
	DB          *gorm.DB
	Metrics     *metrics.Metrics // nil 表示不启用指标
	MetricsPath string
}

// New 创建Gin路由
func New(opts Options) *gin.Engine {
	h := NewHandlers(opts.DB, opts.Metrics)

	router := gin.New()
	router.Use(logger.RequestLogger())        // 请求日志
	router.Use(logger.ErrorLoggerMiddleware()) // panic 恢复
	router.Use(CORS())
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware())
	}

	setupBasicRoutes(router, opts)

	api := router.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("", h.User.Register)
			users.GET("/:id", h.User.GetUser)
			users.PUT("/:id", h.User.UpdateUser)
			users.GET("/handle/:id", h.User.HandleInUse)
		}

		profile := api.Group("/profile")
		{
			profile.GET("/:id", h.Profile.GetProfile)
			profile.GET("/counts/:id", h.Profile.GetCounts)
		}

		posts := api.Group("/posts")
		{
			posts.POST("", h.Post.CreatePost)
			posts.GET("/user/:id", h.Post.GetUserPosts)
			posts.GET("/single/:id", h.Post.GetPost)
			posts.GET("/random", h.Post.GetRandomPost)
			posts.DELETE("/:id", h.Post.DeletePost)
		}

		follow := api.Group("/follow")
		{
			follow.GET("", h.Follow.ListFollows)
			follow.POST("", h.Follow.AddFollow)
			follow.GET("/status", h.Follow.FollowStatus)
			follow.DELETE("", h.Follow.RemoveFollow)
		}

		likes := api.Group("/likes")
		{
			likes.GET("", h.Like.ListLikes)
			likes.POST("", h.Like.AddLike)
			likes.GET("/status", h.Like.LikeStatus)
			likes.GET("/count/:id", h.Like.CountLikes)
			likes.DELETE("", h.Like.RemoveLike)
		}

		requests := api.Group("/followrequests")
		{
			requests.POST("", h.FollowRequest.AddFollowRequest)
			requests.GET("/user/:id", h.FollowRequest.GetRequestsForUser)
			requests.GET("/status", h.FollowRequest.FollowRequestStatus)
			requests.GET("/approve/:id", h.FollowRequest.Approve)
			requests.DELETE("", h.FollowRequest.RemoveFollowRequest)
		}
	}

	return router
}

// setupBasicRoutes 根路径、健康检查、指标
func setupBasicRoutes(router *gin.Engine, opts Options) {
	router.GET("/", func(c *gin.Context) {
		response.Message(c, "API is listening.")
	})

	router.GET("/health", func(c *gin.Context) {
		if err := dbPkg.HealthCheck(c.Request.Context(), opts.DB); err != nil {
			response.InternalError(c, "Database is unavailable.", err)
			return
		}
		response.Success(c, "ok", gin.H{"time": time.Now().Format(time.RFC3339)})
	})

	if opts.Metrics != nil {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		router.GET(path, gin.WrapH(opts.Metrics.Handler()))
	}
}

// CORS 允许任意来源的跨域请求，预检请求直接返回 204
func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:          12 * time.Hour,
	})
}
