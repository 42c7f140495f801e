package handler

import (
	"github.com/jobreach/jobreach/internal/config"
	"github.com/jobreach/jobreach/internal/database"
	"github.com/jobreach/jobreach/internal/logger"
	"github.com/jobreach/jobreach/internal/service"
)

// Handler holds all HTTP handlers
type Handler struct {
	db         *database.Postgres
	rdb        *database.Redis
	log        *logger.Logger
	cfg        *config.Config
	oauthSvc   *service.OAuthService
	profileSvc *service.ProfileService
	sendSvc    *service.SendService
	genSvc     *service.GenerateService
}

// New creates a new Handler instance
func New(db *database.Postgres, rdb *database.Redis, log *logger.Logger, cfg *config.Config, oauthSvc *service.OAuthService, profileSvc *service.ProfileService, sendSvc *service.SendService, genSvc *service.GenerateService) *Handler {
	return &Handler{
		db:         db,
		rdb:        rdb,
		log:        log,
		cfg:        cfg,
		oauthSvc:   oauthSvc,
		profileSvc: profileSvc,
		sendSvc:    sendSvc,
		genSvc:     genSvc,
	}
}
