package daemon

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"teamboard/internal/common/logger"
)

// SetupRoutes configures the board API routes
func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.GET("/healthz", handler.Health)

	api := router.Group(APIPrefix)

	boards := api.Group("/boards")
	{
		boards.GET("", handler.ListBoards)
		boards.POST("", handler.CreateBoard)
		boards.GET("/:boardId", handler.GetBoard)
		boards.DELETE("/:boardId", handler.DeleteBoard)
		boards.POST("/:boardId/lists", handler.CreateList)
		boards.PUT("/:boardId/lists/order", handler.ReorderLists)
	}

	lists := api.Group("/lists")
	{
		lists.PUT("/:listId", handler.UpdateList)
		lists.DELETE("/:listId", handler.DeleteList)
		lists.POST("/:listId/cards", handler.CreateCard)
	}

	cards := api.Group("/cards")
	{
		cards.POST("/move", handler.MoveCards)
		cards.PUT("/:cardId", handler.UpdateCard)
		cards.DELETE("/:cardId", handler.DeleteCard)
	}
}

// RequestLogger logs every request at debug level
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := uuid.New().String()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		c.Next()

		log.Debug("request completed",
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", requestID),
		)
	}
}

// NewRouter builds the gin engine with middleware and routes
func NewRouter(handler *Handler, log *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))
	SetupRoutes(router, handler)
	return router
}
