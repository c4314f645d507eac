package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"heater_relay/internal/models"
)

type StateSQLite struct {
	db *sql.DB
}

func NewStateSQLite(db *sql.DB) *StateSQLite {
	return &StateSQLite{db: db}
}

const (
	heaterStateRowID = 1

	upsertStateSQL = `
		INSERT INTO heater_state (id, mode, heater_on, temp_c, humidity, reading_valid, threshold_c, poll_count, actuator_fault, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			mode=excluded.mode,
			heater_on=excluded.heater_on,
			temp_c=excluded.temp_c,
			humidity=excluded.humidity,
			reading_valid=excluded.reading_valid,
			threshold_c=excluded.threshold_c,
			poll_count=excluded.poll_count,
			actuator_fault=excluded.actuator_fault,
			updated_at=excluded.updated_at
	`

	selectStateSQL = `
		SELECT id, mode, heater_on, temp_c, humidity, reading_valid, threshold_c, poll_count, actuator_fault, updated_at
		FROM heater_state WHERE id=?
	`
)

// Save upserts the heater_state row (id always 1).
func (r *StateSQLite) Save(ctx context.Context, state models.HeaterState) error {
	ts := state.UpdatedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	} else {
		ts = ts.UTC()
	}

	_, err := r.db.ExecContext(ctx, upsertStateSQL,
		heaterStateRowID,
		string(state.Mode),
		state.HeaterOn,
		state.Reading.TemperatureC,
		state.Reading.Humidity,
		state.Reading.Valid,
		state.ThresholdC,
		int64(state.PollCount),
		state.ActuatorFault,
		ts,
	)
	if err != nil {
		return fmt.Errorf("upsert heater state: %w", err)
	}
	return nil
}

// Load fetches the heater_state row. A missing row yields the zero state.
func (r *StateSQLite) Load(ctx context.Context) (models.HeaterState, error) {
	row := r.db.QueryRowContext(ctx, selectStateSQL, heaterStateRowID)

	var (
		s         models.HeaterState
		mode      string
		pollCount int64
		fault     sql.NullString
	)
	if err := row.Scan(
		&s.ID,
		&mode,
		&s.HeaterOn,
		&s.Reading.TemperatureC,
		&s.Reading.Humidity,
		&s.Reading.Valid,
		&s.ThresholdC,
		&pollCount,
		&fault,
		&s.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.HeaterState{}, nil
		}
		return models.HeaterState{}, fmt.Errorf("select heater state: %w", err)
	}

	s.Mode = models.Mode(mode)
	if pollCount > 0 {
		s.PollCount = uint64(pollCount)
	}
	s.ActuatorFault = fault.String
	s.UpdatedAt = s.UpdatedAt.UTC()
	return s, nil
}
