package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"Mergington-App/internal/application"
	"Mergington-App/internal/handler"
	"Mergington-App/internal/logger"
	"Mergington-App/internal/middleware"
)

// IndexPath ルートアクセス時のリダイレクト先
const IndexPath = "/static/index.html"

// Dependencies ルーター構築に必要な依存関係
type Dependencies struct {
	ServiceName       string
	ActivitiesService application.ActivitiesService
	Logger            logger.Logger
	StaticFS          http.FileSystem
}

// New Ginエンジンを構築してルートを登録する
func New(deps Dependencies) *gin.Engine {
	r := gin.New()
	// 活動名に含まれる%2Fをパス区切りとして扱わない
	r.UseRawPath = true

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger.Named("http")))

	activitiesHandler := handler.NewActivitiesHandler(deps.ActivitiesService)
	healthHandler := handler.NewHealthHandler(deps.ServiceName, deps.ActivitiesService)

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusTemporaryRedirect, IndexPath)
	})
	if deps.StaticFS != nil {
		r.StaticFS("/static", deps.StaticFS)
	}

	activities := r.Group("/activities")
	{
		activities.GET("", activitiesHandler.GetActivities)
		activities.POST("/:name/signup", activitiesHandler.SignUp)
		activities.DELETE("/:name/unregister", activitiesHandler.Unregister)
	}

	api := r.Group("/api")
	{
		api.GET("/health", healthHandler.GetHealth)
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
