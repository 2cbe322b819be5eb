package repositories

import (
	"github.com/coursescope/coursescope/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	CatalogRepository     *CatalogRepository
	DetailCacheRepository *DetailCacheRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		CatalogRepository:     NewCatalogRepository(database),
		DetailCacheRepository: NewDetailCacheRepository(database),
	}
}
