package api

import (
	"database/sql"

	"github.com/pmarks/vocabflash/internal/services"
)

// Server holds the HTTP handler dependencies.
type Server struct {
	DB              *sql.DB
	LearnerService  services.LearnerService
	WordService     services.WordService
	ProgressService services.ProgressService
	SessionService  services.SessionService
	StatsService    services.StatsService
	ImportService   services.ImportService
}
