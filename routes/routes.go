package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"heaven-palace/controllers"
	"heaven-palace/middleware"
)

// Handlers bundles every controller the router mounts.
type Handlers struct {
	Auth       *controllers.AuthController
	Booking    *controllers.BookingController
	Profile    *controllers.ProfileController
	Room       *controllers.RoomController
	AddOn      *controllers.AddOnController
	Reward     *controllers.RewardController
	Offer      *controllers.OfferController
	Review     *controllers.ReviewController
	Subscriber *controllers.SubscriberController
	Template   *controllers.EmailTemplateController
	Admin      *controllers.AdminController
}

type Options struct {
	CORSOrigins []string
	UploadDir   string
	Identifier  middleware.Identifier
}

func corsConfig(origins []string) cors.Config {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}
}

func SetupRouter(opts Options, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())
	if opts.UploadDir != "" {
		r.Static("/uploads", opts.UploadDir)
	}
	r.Use(cors.New(corsConfig(opts.CORSOrigins)))
	r.Use(middleware.Identity(opts.Identifier))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", h.Auth.Signup)
			auth.POST("/login", h.Auth.Login)
		}

		// Public catalog
		api.GET("/rooms", h.Room.GetRooms(true))
		api.GET("/rooms/:id", h.Room.GetRoom)
		api.GET("/addons", h.AddOn.GetAddOns)
		api.GET("/offers", h.Offer.GetOffers)
		api.GET("/rewards", h.Reward.GetRewards(true))
		api.GET("/reviews", h.Review.GetApproved)
		api.GET("/settings", h.Admin.GetSettings)

		api.POST("/reviews", h.Review.Submit)
		api.POST("/subscribers", h.Subscriber.Subscribe)
		api.POST("/contact", h.Subscriber.Contact)

		// The wizard is open to anonymous guests; confirm answers 401
		// itself so the draft survives sign-in.
		wizard := api.Group("/booking/wizard")
		{
			wizard.POST("", h.Booking.StartWizard)
			wizard.GET("/:id", h.Booking.GetWizard)
			wizard.PATCH("/:id", h.Booking.UpdateDraft)
			wizard.POST("/:id/next", h.Booking.Next)
			wizard.POST("/:id/back", h.Booking.Back)
			wizard.POST("/:id/confirm", h.Booking.Confirm)
		}

		signedIn := api.Group("", middleware.RequireAuth())
		{
			signedIn.GET("/profile", h.Profile.GetProfile)
			signedIn.PUT("/profile", h.Profile.UpdateProfile)
			signedIn.POST("/profile/avatar", h.Profile.UploadAvatar)
			signedIn.GET("/profile/bookings", h.Profile.GetBookings)
			signedIn.GET("/profile/loyalty", h.Profile.GetLoyalty)
			signedIn.POST("/rewards/:id/redeem", h.Profile.Redeem)
		}

		admin := api.Group("/admin", middleware.RequireAdmin())
		{
			admin.GET("/dashboard", h.Admin.Dashboard)
			admin.GET("/guests", h.Admin.GetGuests)
			admin.GET("/guests/:id", h.Admin.GetGuest)
			admin.PUT("/settings", h.Admin.UpdateSettings)

			bookings := admin.Group("/bookings")
			{
				bookings.GET("", h.Booking.GetBookings)
				bookings.GET("/:id", h.Booking.GetBookingDetails)
				bookings.PATCH("/:id/status", h.Booking.UpdateStatus)
			}

			rooms := admin.Group("/rooms")
			{
				rooms.GET("", h.Room.GetRooms(false))
				rooms.POST("", h.Room.CreateRoom)
				rooms.PUT("/:id", h.Room.UpdateRoom)
				rooms.DELETE("/:id", h.Room.DeleteRoom)
			}

			addons := admin.Group("/addons")
			{
				addons.POST("", h.AddOn.CreateAddOn)
				addons.PUT("/:id", h.AddOn.UpdateAddOn)
				addons.DELETE("/:id", h.AddOn.DeleteAddOn)
			}

			rewards := admin.Group("/rewards")
			{
				rewards.GET("", h.Reward.GetRewards(false))
				rewards.POST("", h.Reward.CreateReward)
				rewards.PUT("/:id", h.Reward.UpdateReward)
				rewards.DELETE("/:id", h.Reward.DeleteReward)
			}

			offers := admin.Group("/offers")
			{
				offers.POST("", h.Offer.CreateOffer)
				offers.PUT("/:id", h.Offer.UpdateOffer)
				offers.DELETE("/:id", h.Offer.DeleteOffer)
				offers.POST("/:id/image", h.Offer.UploadImage)
				offers.POST("/:id/share", h.Offer.ShareOffer)
			}

			reviews := admin.Group("/reviews")
			{
				reviews.GET("", h.Review.GetAll)
				reviews.PATCH("/:id/status", h.Review.Moderate)
				reviews.POST("/:id/reply", h.Review.Reply)
			}

			admin.GET("/subscribers", h.Subscriber.GetAll)

			templates := admin.Group("/email-templates")
			{
				templates.GET("", h.Template.GetAll)
				templates.GET("/:key", h.Template.GetByKey)
				templates.PUT("/:key", h.Template.Save)
				templates.DELETE("/:key", h.Template.Delete)
				templates.POST("/:key/preview", h.Template.Preview)
			}
		}
	}

	return r
}
