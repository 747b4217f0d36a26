// exposes a Store interface that is passed to the pipeline and admin API
package db

import (
	"github.com/jmoiron/sqlx"

	"github.com/Nixie-Tech-LLC/athan/internal/model"
)

type Store interface {
	RecordRun(run model.GenerationRun) (model.GenerationRun, error)
	LatestRun(year int) (*model.GenerationRun, error)
	ListRuns(year int, limit int) ([]model.GenerationRun, error)
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(conn *sqlx.DB) Store {
	return &pgStore{db: conn}
}
