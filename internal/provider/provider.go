package provider

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/ferdiebergado/hireloop/internal/config"
	"github.com/ferdiebergado/hireloop/internal/pkg/security"
	"github.com/ferdiebergado/hireloop/internal/pkg/web"
	"github.com/ferdiebergado/hireloop/internal/platform/db"
	"github.com/ferdiebergado/hireloop/internal/platform/email"
	"github.com/ferdiebergado/hireloop/internal/platform/hash"
	"github.com/ferdiebergado/hireloop/internal/platform/jwt"
	"github.com/ferdiebergado/hireloop/internal/platform/metrics"
	"github.com/ferdiebergado/hireloop/internal/platform/router"
	"github.com/ferdiebergado/hireloop/internal/platform/validation"
)

// Provider bundles the platform services shared by every module.
type Provider struct {
	Cfg         *config.Config
	DB          *sql.DB
	Signer      jwt.Signer
	Mailer      email.Mailer
	Validator   validation.Validator
	Hasher      hash.Hasher
	Router      router.Router
	TxMgr       db.TxManager
	ShortHasher security.ShortHasher
	Baker       web.Baker
	Metrics     *metrics.Registry
}

func New(cfg *config.Config, dbConn *sql.DB) (*Provider, error) {
	if cfg == nil || dbConn == nil {
		return nil, errors.New("config and dbconn should not be nil")
	}

	securityKey := cfg.App.Key
	signer, err := jwt.NewGolangJWTSigner(cfg.JWT, securityKey)
	if err != nil {
		return nil, fmt.Errorf("new jwt signer: %w", err)
	}

	mailer, err := email.NewSMTPMailer(cfg.SMTP, cfg.Email)
	if err != nil {
		return nil, fmt.Errorf("new mailer: %w", err)
	}

	hasher, err := hash.NewArgon2Hasher(cfg.Argon2, securityKey)
	if err != nil {
		return nil, fmt.Errorf("new hasher: %w", err)
	}

	return &Provider{
		Cfg:         cfg,
		DB:          dbConn,
		Signer:      signer,
		Mailer:      mailer,
		Validator:   validation.NewGoPlaygroundValidator(),
		Hasher:      hasher,
		Router:      router.NewGoexpressRouter(),
		TxMgr:       db.NewSQLTxManager(dbConn),
		ShortHasher: security.NewSHA256Hasher(securityKey),
		Baker:       security.NewCSRFCookieBaker(cfg.CSRF, securityKey),
		Metrics:     metrics.NewRegistry(),
	}, nil
}
