package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"taubit/internal/auth"
	"taubit/internal/handler"
	"taubit/internal/middleware"
	"taubit/internal/repository"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthHandler        *handler.AuthHandler
	TripHandler        *handler.TripHandler
	LineHandler        *handler.LineHandler
	UserHandler        *handler.UserHandler
	RewardHandler      *handler.RewardHandler
	FriendHandler      *handler.FriendHandler
	LeaderboardHandler *handler.LeaderboardHandler
	TokenManager       *auth.TokenManager
	SessionRepo        repository.SessionRepository
	RedisClient        *redis.Client
	NewRelicApp        *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	requireAuth := middleware.RequireAuth(deps.TokenManager, deps.SessionRepo)
	idempotency := middleware.IdempotencyMiddleware(deps.RedisClient)

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Auth routes.
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/signup", deps.AuthHandler.Signup)
			authGroup.POST("/login", deps.AuthHandler.Login)
			authGroup.POST("/logout", requireAuth, deps.AuthHandler.Logout)
		}

		// Transit routes. Idempotency runs after auth so cached
		// responses are scoped per user.
		transit := v1.Group("/transit", requireAuth, idempotency)
		{
			transit.POST("/trip/start", deps.TripHandler.StartTrip)
			transit.POST("/trip/end", deps.TripHandler.EndTrip)
			transit.GET("/trips", deps.TripHandler.ListTrips)
			transit.GET("/lines", deps.LineHandler.ListLines)
			transit.GET("/lines/:id", deps.LineHandler.GetLine)
			transit.POST("/lines/:id/rate", deps.LineHandler.RateLine)
		}

		// Account routes.
		users := v1.Group("/users", requireAuth)
		{
			users.GET("/me/stats", deps.UserHandler.GetStats)
			users.PUT("/me", deps.UserHandler.UpdateProfile)
			users.POST("/me/premium", deps.UserHandler.UpgradePremium)
			users.DELETE("/me/premium", deps.UserHandler.CancelPremium)
		}

		// Reward routes.
		rewardsGroup := v1.Group("/rewards", requireAuth, idempotency)
		{
			rewardsGroup.GET("", deps.RewardHandler.ListRewards)
			rewardsGroup.GET("/redeemed", deps.RewardHandler.ListRedeemed)
			rewardsGroup.POST("/:id/redeem", deps.RewardHandler.RedeemReward)
		}

		// Friend routes.
		friends := v1.Group("/friends", requireAuth)
		{
			friends.GET("", deps.FriendHandler.ListFriends)
			friends.GET("/pending", deps.FriendHandler.ListPending)
			friends.POST("/:id/request", deps.FriendHandler.RequestFriend)
			friends.POST("/:id/accept", deps.FriendHandler.AcceptFriend)
		}

		// Leaderboard routes.
		leaderboard := v1.Group("/leaderboard", requireAuth)
		{
			leaderboard.GET("/weekly", deps.LeaderboardHandler.Weekly)
		}
	}

	return router
}
