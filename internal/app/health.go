package app

import (
	"context"
	"time"

	"github.com/shandysiswandi/gosignin/internal/pkg/goerror"
	"github.com/shandysiswandi/gosignin/internal/pkg/router"
)

type healthResponse struct {
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

func (healthResponse) Message() string { return "service is healthy" }

func (a *App) health(r *router.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{Database: "ok", Cache: "memory"}

	if err := a.dbConn.Ping(ctx); err != nil {
		return nil, goerror.NewServer(err)
	}

	if a.cacheConn != nil {
		if err := a.cacheConn.Ping(ctx).Err(); err != nil {
			return nil, goerror.NewServer(err)
		}
		resp.Cache = "ok"
	}

	return resp, nil
}
