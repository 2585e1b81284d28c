package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yigit/uniconnect/internal/app/controllers"
	"github.com/yigit/uniconnect/internal/middleware"
	"github.com/yigit/uniconnect/internal/pkg/websocket"
)

// Controllers groups everything the router dispatches to
type Controllers struct {
	Auth          *controllers.AuthController
	User          *controllers.UserController
	Event         *controllers.EventController
	Accommodation *controllers.AccommodationController
	Comment       *controllers.CommentController
	UI            *controllers.UIController
	Chat          *controllers.ChatController
	Page          *controllers.PageController
	ChatSocket    *websocket.Handler
}

// SetupRouter configures all shell routes
func SetupRouter(
	router *gin.Engine,
	ctrl Controllers,
	authMiddleware *middleware.AuthMiddleware,
	metrics prometheus.Gatherer,
) {
	// --- Public routes ---
	router.GET("/healthz", ctrl.Page.Healthz)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics, promhttp.HandlerOpts{})))

	for _, page := range []string{"about", "careers", "reviews", "help", "contact"} {
		router.GET("/"+page, ctrl.Page.Static(page))
	}
	router.POST("/contact", ctrl.Page.SubmitContact)
	router.POST("/feedback", ctrl.Page.SubmitFeedback)

	// --- Auth flow, bounced to the dashboard once logged in ---
	guest := router.Group("")
	guest.Use(authMiddleware.RedirectIfAuthenticated())
	{
		guest.GET("/login", ctrl.Auth.ShowLogin)
		guest.POST("/login", ctrl.Auth.Login)
		guest.GET("/signup", ctrl.Auth.ShowSignup)
		guest.POST("/signup", ctrl.Auth.Signup)
	}
	router.GET("/otp", ctrl.Auth.ShowOtp)
	router.POST("/otp", ctrl.Auth.VerifyOtp)

	// --- Authenticated routes ---
	authenticated := router.Group("")
	authenticated.Use(authMiddleware.RequireAuth())
	{
		authenticated.GET("/", ctrl.User.Dashboard)
		authenticated.GET("/profile", ctrl.User.GetProfile)
		authenticated.PUT("/profile", ctrl.User.UpdateProfile)
		authenticated.POST("/logout", ctrl.Auth.Logout)

		events := authenticated.Group("/events")
		{
			events.GET("", ctrl.Event.ListEvents)
			events.POST("", ctrl.Event.CreateEvent)
			events.DELETE("/:id", ctrl.Event.DeleteEvent)
			events.POST("/:id/participants", ctrl.Event.JoinEvent)
		}

		accommodations := authenticated.Group("/accommodations")
		{
			accommodations.GET("", ctrl.Accommodation.ListAccommodations)
			accommodations.POST("", ctrl.Accommodation.CreateAccommodation)
			accommodations.DELETE("/:id", ctrl.Accommodation.DeleteAccommodation)
			accommodations.POST("/:id/bookings", ctrl.Accommodation.BookAccommodation)
		}
		authenticated.GET("/bookings", ctrl.Accommodation.ListBookings)

		authenticated.GET("/comments", ctrl.Comment.ListComments)
		authenticated.POST("/comments", ctrl.Comment.CreateComment)
		authenticated.GET("/media", ctrl.Comment.ListMedia)
		authenticated.POST("/media", ctrl.Comment.UploadMedia)

		ui := authenticated.Group("/ui")
		{
			ui.GET("", ctrl.UI.State)
			ui.POST("/dark-mode", ctrl.UI.ToggleDarkMode)
			ui.POST("/dialog", ctrl.UI.OpenDialog)
			ui.DELETE("/dialog", ctrl.UI.CloseDialog)
			ui.POST("/snackbar", ctrl.UI.ShowSnackbar)
		}

		chat := authenticated.Group("/chat")
		{
			chat.GET("/peers", ctrl.Chat.Peers)
			chat.GET("/conversations/:peerId", ctrl.Chat.Conversation)
			chat.GET("/ws", ctrl.ChatSocket.HandleConnection)
		}
	}

	router.NoRoute(middleware.NotFound())
}
