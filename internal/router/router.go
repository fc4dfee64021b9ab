package router

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sectioncms/internal/handler"
	"github.com/sectioncms/internal/storage"
	"github.com/sectioncms/internal/upload"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Options 是构造路由所需的依赖
type Options struct {
	DB            *gorm.DB
	Storage       storage.Storage
	Logger        *logrus.Logger
	SessionSecret string
	SecureCookie  bool
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), handler.RequestLogger(opts.Logger))

	secret := opts.SessionSecret
	if secret == "" {
		secret = "sectioncms-dev-secret"
	}
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   opts.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("sectioncms_session", store))

	// 本地存储的上传文件以静态文件方式提供，S3 直接返回对象地址
	if local, ok := opts.Storage.(*storage.LocalStorage); ok {
		r.Static(local.URLPath(), local.Root())
	}

	api := handler.NewAPI(opts.DB, opts.Storage, opts.Logger)

	r.GET("/api/health", api.HealthCheck)

	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/login", api.Login)
		authGroup.POST("/logout", api.Logout)
	}

	protected := r.Group("/api")
	protected.Use(handler.AuthRequired())
	{
		registerSections(protected.Group("/cms"), api)

		for _, kind := range upload.Kinds() {
			constraint, _ := upload.ConstraintFor(kind)
			protected.POST(trimAPIPrefix(constraint.Path()), api.UploadHandler(kind))
		}
	}

	return r
}

func registerSections(cms *gin.RouterGroup, api *handler.API) {
	sections := api.Sections()
	logger := api.Logger()

	home := cms.Group("/home")
	handler.NewSectionHandler(sections.HeroBanners, logger, "横幅").Register(home, "/hero-banners")

	about := cms.Group("/about")
	handler.NewSectionHandler(sections.CoreValues, logger, "核心价值").Register(about, "/core-values")
	handler.NewSectionHandler(sections.Leadership, logger, "管理层简介").Register(about, "/leadership")

	investors := cms.Group("/investors")
	handler.NewSectionHandler(sections.StatBlocks, logger, "数据块").Register(investors, "/stat-blocks")
	handler.NewSectionHandler(sections.Committees, logger, "委员会").Register(investors, "/committees")
	handler.NewSectionHandler(sections.Regulations, logger, "监管文件").Register(investors, "/regulations")
	investors.GET("/stock-quote", api.GetStockQuote)
	investors.PUT("/stock-quote", api.UpdateStockQuote)
}

func trimAPIPrefix(path string) string {
	return strings.TrimPrefix(path, "/api")
}
