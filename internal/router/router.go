package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"budgetmate/internal/handler"
	"budgetmate/internal/middleware"
	"budgetmate/internal/service"
)

// Services are the dependencies the HTTP layer is built from.
type Services struct {
	Auth          *service.AuthService
	Posts         *service.PostService
	Notifications *service.NotificationService
	Expenses      *service.ExpenseService
	Earnings      *service.EarningService
	Goals         *service.GoalService
	Budget        *service.BudgetService
	Articles      *service.ArticleService
	Jobs          *service.JobService
}

// New builds the engine. A nil registry leaves out /metrics and the metrics middleware.
func New(svc Services, log *slog.Logger, reg *prometheus.Registry) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))
	if reg != nil {
		r.Use(middleware.NewMetrics(reg).Handler())
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "API is running")
	})

	auth := handler.NewAuthHandler(svc.Auth, log)
	post := handler.NewPostHandler(svc.Posts, log)
	notification := handler.NewNotificationHandler(svc.Notifications, log)
	expense := handler.NewExpenseHandler(svc.Expenses, log)
	earning := handler.NewEarningHandler(svc.Earnings, log)
	goal := handler.NewGoalHandler(svc.Goals, log)
	budget := handler.NewBudgetHandler(svc.Budget, log)
	article := handler.NewArticleHandler(svc.Articles, log)
	job := handler.NewJobHandler(svc.Jobs, log)

	withMsg := middleware.Auth(svc.Auth, "msg")
	withMessage := middleware.Auth(svc.Auth, "message")
	admin := middleware.RequireAdmin()

	api := r.Group("/api")

	// accounts
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", auth.Signup)
		authGroup.POST("/login", auth.Login)
		authGroup.POST("/google", auth.Google)
		authGroup.POST("/logout", withMessage, auth.Logout)
		authGroup.GET("/me", withMessage, auth.Me)
		authGroup.PUT("/update-profile", withMessage, auth.UpdateProfile)
		authGroup.PUT("/change-password", withMessage, auth.ChangePassword)
		authGroup.POST("/admin/create", withMessage, admin, auth.CreateAdmin)
	}
	api.POST("/token/refresh", auth.TokenRefresh)

	// community feed
	postGroup := api.Group("/posts")
	{
		postGroup.GET("", post.List)
		postGroup.POST("", withMsg, post.Create)
		postGroup.PUT("/:id", withMsg, post.Update)
		postGroup.DELETE("/:id", withMsg, post.Delete)
		postGroup.POST("/:id/like", withMsg, post.Like)
		postGroup.POST("/:id/comment", withMsg, post.AddComment)
		postGroup.PUT("/:id/comment/:commentId", withMsg, post.UpdateComment)
		postGroup.DELETE("/:id/comment/:commentId", withMsg, post.DeleteComment)
	}
	api.GET("/notifications", withMsg, notification.List)

	// ledger
	expenseGroup := api.Group("/expenses", withMsg)
	{
		expenseGroup.GET("", expense.List)
		expenseGroup.GET("/summary", expense.Summary)
		expenseGroup.POST("", expense.Create)
		expenseGroup.PUT("/:id", expense.Update)
		expenseGroup.DELETE("/:id", expense.Delete)
	}
	earningGroup := api.Group("/earnings", withMsg)
	{
		earningGroup.GET("", earning.List)
		earningGroup.POST("", earning.Create)
		earningGroup.DELETE("/:id", earning.Delete)
	}
	goalGroup := api.Group("/goals", withMsg)
	{
		goalGroup.GET("", goal.List)
		goalGroup.POST("", goal.Create)
		goalGroup.PUT("/:id", goal.Update)
		goalGroup.POST("/:id/contribute", goal.Contribute)
		goalGroup.DELETE("/:id", goal.Delete)
	}
	budgetGroup := api.Group("/budget", withMessage)
	{
		budgetGroup.GET("", budget.Get)
		budgetGroup.PUT("", budget.Update)
		budgetGroup.POST("", budget.Update)
	}

	// catalog
	articleGroup := api.Group("/articles")
	{
		articleGroup.GET("", article.List)
		articleGroup.POST("", withMessage, admin, article.Create)
		articleGroup.PUT("/:id", withMessage, admin, article.Update)
		articleGroup.DELETE("/:id", withMessage, admin, article.Delete)
	}
	jobGroup := api.Group("/jobs")
	{
		jobGroup.GET("", job.List)
		jobGroup.POST("", withMessage, admin, job.Create)
		jobGroup.PUT("/:id", withMessage, admin, job.Update)
		jobGroup.DELETE("/:id", withMessage, admin, job.Delete)
	}

	return r
}
