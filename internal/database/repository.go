package database

import (
	"github.com/execwatch/execwatch/internal/database/models"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// Repository provides access to all database models.
type Repository struct {
	admin     *models.AdminModel
	ban       *models.BanModel
	whitelist *models.WhitelistModel
	execution *models.ExecutionModel
}

// NewRepository creates a new repository instance with all models.
func NewRepository(db *bun.DB, logger *zap.Logger) *Repository {
	return &Repository{
		admin:     models.NewAdmin(db, logger),
		ban:       models.NewBan(db, logger),
		whitelist: models.NewWhitelist(db, logger),
		execution: models.NewExecution(db, logger),
	}
}

// Admin returns the admin model repository.
func (r *Repository) Admin() *models.AdminModel {
	return r.admin
}

// Ban returns the ban model repository.
func (r *Repository) Ban() *models.BanModel {
	return r.ban
}

// Whitelist returns the whitelist model repository.
func (r *Repository) Whitelist() *models.WhitelistModel {
	return r.whitelist
}

// Execution returns the execution model repository.
func (r *Repository) Execution() *models.ExecutionModel {
	return r.execution
}
