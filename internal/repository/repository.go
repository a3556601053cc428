package repository

import "ontix/internal/database"

type Repositories struct {
	Archive *ArchiveRepository
}

func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		Archive: NewArchiveRepository(db),
	}
}
