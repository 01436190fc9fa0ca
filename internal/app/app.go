package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/gosignin/internal/pkg/clock"
	"github.com/shandysiswandi/gosignin/internal/pkg/codestore"
	"github.com/shandysiswandi/gosignin/internal/pkg/config"
	"github.com/shandysiswandi/gosignin/internal/pkg/instrument"
	"github.com/shandysiswandi/gosignin/internal/pkg/jwt"
	"github.com/shandysiswandi/gosignin/internal/pkg/mail"
	"github.com/shandysiswandi/gosignin/internal/pkg/messaging"
	"github.com/shandysiswandi/gosignin/internal/pkg/otp"
	"github.com/shandysiswandi/gosignin/internal/pkg/router"
	"github.com/shandysiswandi/gosignin/internal/pkg/sms"
	"github.com/shandysiswandi/gosignin/internal/pkg/uid"
	"github.com/shandysiswandi/gosignin/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	validator validator.Validator
	clock     clock.Clocker
	uuid      uid.StringID
	otp       otp.Generator
	jwt       jwt.JWT

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	codeStore codestore.Store
	mail      mail.Mail
	sms       sms.Sender
	messaging messaging.Messaging

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initSMS()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
