package cmd

import (
	"github.com/getlawrence/antiplag/internal/config"
	"github.com/getlawrence/antiplag/internal/languages"
	"github.com/getlawrence/antiplag/internal/logger"
)

// AppConfig holds all the shared configuration and dependencies
type AppConfig struct {
	Config   *config.Config
	Registry *languages.LanguageRegistry
	Logger   logger.Logger
}

// NewAppConfig creates a new configuration instance
func NewAppConfig(cfg *config.Config, registry *languages.LanguageRegistry, logger logger.Logger) *AppConfig {
	return &AppConfig{
		Config:   cfg,
		Registry: registry,
		Logger:   logger,
	}
}
