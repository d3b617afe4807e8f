package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"cafehopper/cafes"
	"cafehopper/config"
	"cafehopper/database"
	"cafehopper/handlers"
	"cafehopper/middleware"
	"cafehopper/social"
	"cafehopper/store/mongodb"
	"cafehopper/websocket"
)

func main() {
	config.Load()

	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to document store: %v", err)
	}
	defer database.Close()

	if err := database.EnsureIndexes(context.Background()); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	cafeStore, err := cafes.New(config.Cfg.CafesDBPath)
	if err != nil {
		log.Fatalf("Failed to open cafe snapshot: %v", err)
	}
	defer cafeStore.Close()

	if err := os.MkdirAll(config.Cfg.UploadDir, 0755); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	websocket.InitHub()

	users := mongodb.NewUserStore(database.DB)
	requests := mongodb.NewRequestStore(database.DB)
	graph := mongodb.NewGraph(database.Client, database.DB)
	reviews := mongodb.NewReviewStore(database.DB)

	svc := social.NewService(users, requests, graph)
	h := handlers.New(svc, cafeStore, reviews, websocket.HubInstance)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", middleware.AuthMiddleware(), h.Logout)
		auth.POST("/refresh", middleware.AuthMiddleware(), h.RefreshToken)
	}

	userRoutes := r.Group("/api/users")
	userRoutes.Use(middleware.AuthMiddleware())
	{
		userRoutes.GET("/me", h.GetCurrentUser)
		userRoutes.PUT("/me", h.UpdateCurrentUser)
		userRoutes.POST("/me/avatar", h.UploadAvatar)
		userRoutes.GET("/search", h.SearchUsers)
		userRoutes.GET("/:id", h.GetUser)
		userRoutes.GET("/:id/reviews", h.GetUserReviews)
	}

	friends := r.Group("/api/friends")
	friends.Use(middleware.AuthMiddleware())
	{
		friends.GET("", h.GetFriends)
		friends.GET("/requests", h.GetFriendRequests)
		friends.GET("/requests/sent", h.GetSentFriendRequests)
		friends.POST("/requests", h.SendFriendRequest)
		friends.DELETE("/requests/:id", h.CancelFriendRequest)
		friends.POST("/requests/:id/accept", h.AcceptFriendRequest)
		friends.DELETE("/:user_id", h.RemoveFriend)
	}

	presence := r.Group("/api/presence")
	presence.Use(middleware.AuthMiddleware())
	{
		presence.POST("/checkin", h.CheckIn)
		presence.POST("/checkout", h.CheckOut)
	}

	cafesGroup := r.Group("/api/cafes")
	cafesGroup.Use(middleware.AuthMiddleware())
	{
		cafesGroup.GET("", h.GetCafes)
		cafesGroup.GET("/nearby", h.GetNearbyCafes)
		cafesGroup.GET("/:id", h.GetCafe)
		cafesGroup.GET("/:id/here", h.GetCafeUsers)
		cafesGroup.GET("/:id/reviews", h.GetCafeReviews)
		cafesGroup.POST("/:id/reviews", h.CreateReview)
	}

	r.GET("/files/:filename", h.ServeFile)

	r.GET("/ws", websocket.HandleWebSocket)

	log.Printf("Server starting on %s", config.Cfg.ServerAddr)
	if err := r.Run(config.Cfg.ServerAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
