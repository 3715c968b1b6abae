package app

import (
	"fmt"
	"sync"

	"github.com/Govind-619/ebook-store/config"
	"github.com/Govind-619/ebook-store/services"
	"github.com/Govind-619/ebook-store/utils"
	"gorm.io/gorm"
)

// App wires configuration, the database and the services used by handlers
type App struct {
	Config *config.Config
	DB     *gorm.DB

	Auth       *services.AuthService
	Users      *services.UserService
	Books      *services.BookService
	Categories *services.CategoryService
	Orders     *services.OrderService
	Uploads    *services.UploadService
	Stats      *services.StatsService

	done      chan struct{}
	closeOnce sync.Once
}

// Open connects to the configured database, migrates it and builds the App
func Open(cfg *config.Config) (*App, error) {
	db, err := config.OpenDB(cfg)
	if err != nil {
		return nil, err
	}
	if err := config.Migrate(db); err != nil {
		_ = config.CloseDB(db)
		return nil, err
	}
	utils.LogInfo("Connected to %s database", cfg.DBDriver)
	return New(cfg, db), nil
}

// New builds the App around an already opened database
func New(cfg *config.Config, db *gorm.DB) *App {
	books := services.NewBookService(db)

	var notifier services.StatusNotifier = services.LogNotifier{}
	if cfg.MailEnabled() {
		notifier = services.NewMailer(services.MailConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		})
	}

	return &App{
		Config: cfg,
		DB:     db,
		Auth: services.NewAuthService(db, services.AuthConfig{
			Secret:                 cfg.JWTSecret,
			Expiration:             cfg.JWTExpiration,
			AllowAdminRegistration: cfg.AllowAdminRegistration,
			BcryptCost:             cfg.BcryptCost,
		}),
		Users:      services.NewUserService(db, cfg.BcryptCost),
		Books:      books,
		Categories: services.NewCategoryService(db),
		Orders:     services.NewOrderService(db, books, notifier),
		Uploads: services.NewUploadService(services.UploadConfig{
			Dir:           cfg.UploadDir,
			PublicBaseURL: cfg.PublicBaseURL,
		}),
		Stats: services.NewStatsService(db),
		done:  make(chan struct{}),
	}
}

// Done is closed by Close. Background workers stop on it.
func (a *App) Done() <-chan struct{} {
	return a.done
}

// Close stops background workers and releases the database connection
func (a *App) Close() error {
	a.closeOnce.Do(func() { close(a.done) })
	if err := config.CloseDB(a.DB); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
