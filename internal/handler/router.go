package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/mybookshelf/backend/internal/config"
	"github.com/mybookshelf/backend/internal/service"
)

// NewRouter wires middleware and routes. Everything under /api sits
// behind the auth gate; the auth endpoints themselves do not.
func NewRouter(
	cfg config.Config,
	logger *slog.Logger,
	tokens *service.TokenManager,
	authSvc *service.AuthService,
	bookSvc *service.BookService,
	citatSvc *service.CitatService,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(logger))
	router.Use(CORSMiddleware(cfg.CORS.AllowedOrigins))

	router.GET("/", Root)
	router.GET("/ping", Ping)

	auth := NewAuthHandler(authSvc)
	router.POST("/auth/register", auth.Register)
	router.POST("/auth/login", auth.Login)

	api := router.Group("/api")
	api.Use(AuthMiddleware(tokens))

	books := NewBookHandler(bookSvc)
	api.GET("/books", books.List)
	api.POST("/books", books.Create)
	api.GET("/books/:id", books.Get)
	api.PUT("/books/:id", books.Update)
	api.DELETE("/books/:id", books.Delete)

	citats := NewCitatHandler(citatSvc)
	api.GET("/citat", citats.List)
	api.GET("/citat/top5", citats.Top)
	api.GET("/citat/:id", citats.Get)
	api.POST("/citat", citats.Create)
	api.PUT("/citat/:id", citats.Update)
	api.DELETE("/citat/:id", citats.Delete)

	return router
}
