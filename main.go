package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/shandysiswandi/gosignin/internal/app"
)

// @title           GoSignin API
// @version         1.0
// @description     GoSignin issues one-time verification codes over SMS and email and exchanges them for a session.
// @license.name    MIT
// @license.url     https://mit-license.org/
// @server          http://localhost:8080
// @securityDefinitions.apikey  BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT.
func main() {
	if err := app.New().Run(10 * time.Second); err != nil {
		slog.Error("application stopped with error", "error", err)
		os.Exit(1)
	}
}
