package router

import (
	"net/http"

	annsvc "kitab-backend/internal/application/announcements"
	authsvc "kitab-backend/internal/application/auth"
	booksvc "kitab-backend/internal/application/books"
	cursvc "kitab-backend/internal/application/curriculum"
	emailsvc "kitab-backend/internal/application/emails"
	healthsvc "kitab-backend/internal/application/health"
	msgsvc "kitab-backend/internal/application/messages"
	notifsvc "kitab-backend/internal/application/notifications"
	ratingsvc "kitab-backend/internal/application/ratings"
	usersvc "kitab-backend/internal/application/users"
	wishsvc "kitab-backend/internal/application/wishlist"
	"kitab-backend/internal/config"
	"kitab-backend/internal/infrastructure/database"
	"kitab-backend/internal/infrastructure/googlebooks"
	annhandler "kitab-backend/internal/interfaces/handlers/announcements"
	authhandler "kitab-backend/internal/interfaces/handlers/auth"
	bookhandler "kitab-backend/internal/interfaces/handlers/books"
	curhandler "kitab-backend/internal/interfaces/handlers/curriculum"
	healthhandler "kitab-backend/internal/interfaces/handlers/health"
	msghandler "kitab-backend/internal/interfaces/handlers/messages"
	notifhandler "kitab-backend/internal/interfaces/handlers/notifications"
	ratinghandler "kitab-backend/internal/interfaces/handlers/ratings"
	userhandler "kitab-backend/internal/interfaces/handlers/users"
	wishhandler "kitab-backend/internal/interfaces/handlers/wishlist"
	"kitab-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opts)
		app.Use(middleware.HealthMarker(rdb))
	}
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	hs := &healthsvc.Service{Rdb: rdb}
	hh := &healthhandler.Handlers{Service: hs, HealthAdminKey: cfg.HealthAdminKey}
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"service": "kitab-api", "status": "ok"})
	})
	app.Get("/health/json", hh.JSON)
	app.Get("/health/reset", hh.Reset)

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var errDB error
		db, errDB = database.Open(cfg.DatabaseURL)
		if errDB != nil {
			return nil, nil, nil, errDB
		}
		hs.DB = &gormDBPinger{db: db}
	}

	if db != nil && rdb != nil {
		requireAuth := middleware.RequireAuth(rdb)

		var emailSender emailsvc.Sender
		if cfg.SendinblueAPIKey != "" {
			emailSender = &emailsvc.BrevoClient{APIKey: cfg.SendinblueAPIKey, MailFrom: cfg.MailFrom}
		}
		ns := &notifsvc.Service{DB: db, Emails: emailSender}

		// Auth
		as := &authsvc.Service{DB: db, Rdb: rdb}
		ah := &authhandler.Handlers{Service: as}
		ag := app.Group("/api/auth")
		ag.Post("/register", ah.Register)
		ag.Post("/login", ah.Login)
		ag.Get("/me", requireAuth, ah.Me)
		ag.Delete("/logout", requireAuth, ah.Logout)

		// Books + announcements under /api/books
		bs := &booksvc.Service{
			DB: db,
			Lookup: &googlebooks.HTTPClient{
				BaseURL: cfg.GoogleBooksAPIURL,
				APIKey:  cfg.GoogleBooksAPIKey,
			},
			DefaultLanguage: cfg.DefaultBookLanguage,
		}
		bh := &bookhandler.Handlers{Service: bs}
		anns := &annsvc.Service{DB: db, Books: bs}
		annh := &annhandler.Handlers{Service: anns}

		bg := app.Group("/api/books")
		bg.Get("/categories", bh.Categories)
		bg.Get("/isbn/:isbn", bh.LookupISBN)
		bg.Post("/announcements", requireAuth, annh.Create)
		bg.Get("/announcements", annh.List)
		bg.Get("/announcements/search", annh.Search)
		bg.Get("/my-announcements", requireAuth, annh.Mine)
		bg.Get("/announcements/:id", annh.GetByID)
		bg.Put("/announcements/:id", requireAuth, annh.Update)
		bg.Delete("/announcements/:id", requireAuth, annh.Delete)
		bg.Get("/:id", bh.GetByID)

		// Ratings
		rs := &ratingsvc.Service{DB: db, Notifications: ns}
		rh := &ratinghandler.Handlers{Service: rs}
		rg := app.Group("/api/ratings")
		rg.Post("/", requireAuth, rh.Create)
		rg.Get("/seller/:id", rh.ListForSeller)
		rg.Get("/seller/:id/summary", rh.Summary)

		// Wishlist
		ws := &wishsvc.Service{DB: db}
		wh := &wishhandler.Handlers{Service: ws}
		wg := app.Group("/api/wishlist", requireAuth)
		wg.Post("/", wh.Add)
		wg.Get("/", wh.List)
		wg.Delete("/:announcement_id", wh.Remove)

		// Messages
		ms := &msgsvc.Service{DB: db, Notifications: ns}
		mh := &msghandler.Handlers{Service: ms}
		mg := app.Group("/api/messages", requireAuth)
		mg.Post("/", mh.Send)
		mg.Get("/conversations", mh.Conversations)
		mg.Get("/announcement/:id/with/:user_id", mh.Thread)
		mg.Patch("/:id/read", mh.MarkRead)

		// Notifications
		nh := &notifhandler.Handlers{Service: ns}
		ng := app.Group("/api/notifications", requireAuth)
		ng.Get("/", nh.List)
		ng.Get("/preferences", nh.GetPreferences)
		ng.Put("/preferences", nh.UpdatePreferences)
		ng.Post("/read-all", nh.MarkAllRead)
		ng.Patch("/:id/read", nh.MarkRead)

		// Curriculum
		cs := &cursvc.Service{DB: db}
		ch := &curhandler.Handlers{Service: cs}
		cg := app.Group("/api/curriculum")
		cg.Get("/", ch.List)
		cg.Get("/badges/book/:book_id", ch.BadgesForBook)
		cg.Get("/:id/announcements", ch.Announcements)
		cg.Get("/:id", ch.Get)

		// Users
		us := &usersvc.Service{DB: db}
		uh := &userhandler.Handlers{Service: us}
		app.Get("/api/public/users", uh.ListPublic)
		app.Put("/api/users/profile", requireAuth, uh.UpdateProfile)
	}

	return app, db, rdb, nil
}

func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
