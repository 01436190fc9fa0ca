package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/gosignin/internal/auth"
)

func (a *App) initModules() {
	if err := auth.New(auth.Dependency{
		DBConn:     a.dbConn,
		CodeStore:  a.codeStore,
		Router:     a.router,
		Messaging:  a.messaging,
		Mail:       a.mail,
		SMS:        a.sms,
		Config:     a.config,
		Instrument: a.ins,
		UUID:       a.uuid,
		Clock:      a.clock,
		Generator:  a.otp,
		Validator:  a.validator,
		JWT:        a.jwt,
	}); err != nil {
		slog.Error("failed to init module auth", "error", err)
		os.Exit(1)
	}
}
