package repository

import (
	"context"
	"database/sql"
	"time"

	"heater_relay/internal/models"
)

type StateRepo interface {
	Save(ctx context.Context, s models.HeaterState) error
	Load(ctx context.Context) (models.HeaterState, error)
}

type EventRepo interface {
	Append(ctx context.Context, e models.HeaterEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.HeaterEvent, error)
}

type Repository struct {
	StateRepo StateRepo
	EventRepo EventRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		StateRepo: NewStateSQLite(db),
		EventRepo: NewEventSQLite(db),
	}
}
