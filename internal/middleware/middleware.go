package middleware

import (
	"github.com/jobreach/jobreach/internal/config"
	"github.com/jobreach/jobreach/internal/database"
	"github.com/jobreach/jobreach/internal/logger"
)

// Middleware holds all HTTP middleware
type Middleware struct {
	rdb           *database.Redis
	log           *logger.Logger
	cfg           *config.Config
	sessionSecret []byte
}

// New creates a new Middleware instance. sessionSecret signs session cookies.
func New(rdb *database.Redis, log *logger.Logger, cfg *config.Config, sessionSecret []byte) *Middleware {
	return &Middleware{
		rdb:           rdb,
		log:           log,
		cfg:           cfg,
		sessionSecret: sessionSecret,
	}
}
