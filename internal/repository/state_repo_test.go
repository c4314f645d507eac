package repository_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"reflect"
	"regexp"
	"testing"
	"time"

	"heater_relay/internal/models"
	"heater_relay/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
)

var stateCols = []string{"id", "mode", "heater_on", "temp_c", "humidity", "reading_valid", "threshold_c", "poll_count", "actuator_fault", "updated_at"}

func newStateRepo(t *testing.T) (*repository.StateSQLite, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return repository.NewStateSQLite(db), mock
}

func TestStateSQLite_Save_SetsUTCWhenTimeZero(t *testing.T) {
	repo, mock := newStateRepo(t)

	state := models.HeaterState{
		Mode:       models.ModeAuto,
		HeaterOn:   true,
		Reading:    models.SensorReading{TemperatureC: 24, Humidity: 41.5, Valid: true},
		ThresholdC: 26,
		PollCount:  12,
	}

	isUTCRecent := sqlmockArgumentFunc(func(v driver.Value) bool {
		tm, ok := v.(time.Time)
		if !ok || tm.Location() != time.UTC {
			return false
		}
		now := time.Now().UTC()
		return !tm.Before(now.Add(-5*time.Second)) && !tm.After(now.Add(5*time.Second))
	})

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO heater_state")).
		WithArgs(1, "AUTO", true, 24.0, 41.5, true, 26.0, int64(12), "", isUTCRecent).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Save(context.Background(), state); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStateSQLite_Save_ConvertsGivenTimeToUTC(t *testing.T) {
	repo, mock := newStateRepo(t)

	loc, _ := time.LoadLocation("Europe/Berlin")
	original := time.Date(2024, 1, 15, 7, 30, 0, 0, loc)
	expected := original.UTC()

	isExactUTC := sqlmockArgumentFunc(func(v driver.Value) bool {
		tm, ok := v.(time.Time)
		return ok && tm.Equal(expected) && tm.Location() == time.UTC
	})

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO heater_state")).
		WithArgs(1, "MANUAL_OFF", false, 0.0, 0.0, false, 26.0, int64(1), "relay line busy", isExactUTC).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Save(context.Background(), models.HeaterState{
		Mode:          models.ModeManualOff,
		ThresholdC:    26,
		PollCount:     1,
		ActuatorFault: "relay line busy",
		UpdatedAt:     original,
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStateSQLite_Save_ExecErrorIsWrapped(t *testing.T) {
	repo, mock := newStateRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO heater_state")).
		WillReturnError(errors.New("db down"))

	err := repo.Save(context.Background(), models.HeaterState{Mode: models.ModeAuto})
	if err == nil {
		t.Fatalf("Save() expected error, got nil")
	}
	if !regexp.MustCompile("upsert heater state").MatchString(err.Error()) {
		t.Fatalf("unexpected error text: %v", err)
	}
}

func TestStateSQLite_Load_NoRowsReturnsZeroValue(t *testing.T) {
	repo, mock := newStateRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, mode, heater_on")).
		WithArgs(1).
		WillReturnError(sql.ErrNoRows)

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, models.HeaterState{}) {
		t.Fatalf("Load() expected zero state, got: %+v", got)
	}
}

func TestStateSQLite_Load_HappyPath(t *testing.T) {
	repo, mock := newStateRepo(t)

	locNY, _ := time.LoadLocation("America/New_York")
	nonUTC := time.Date(2024, 2, 1, 8, 30, 0, 0, locNY)

	rows := sqlmock.NewRows(stateCols).
		AddRow(1, "MANUAL_ON", true, 19.5, 55.0, true, 26.0, int64(40), nil, nonUTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, mode, heater_on")).
		WithArgs(1).
		WillReturnRows(rows)

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	want := models.HeaterState{
		ID:         1,
		Mode:       models.ModeManualOn,
		HeaterOn:   true,
		Reading:    models.SensorReading{TemperatureC: 19.5, Humidity: 55, Valid: true},
		ThresholdC: 26,
		PollCount:  40,
		UpdatedAt:  nonUTC.UTC(),
	}
	if got.UpdatedAt.Location() != time.UTC {
		t.Fatalf("Load() UpdatedAt not UTC: %v", got.UpdatedAt.Location())
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Load() = %+v, want %+v", got, want)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStateSQLite_Load_QueryError(t *testing.T) {
	repo, mock := newStateRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, mode, heater_on")).
		WithArgs(1).
		WillReturnError(errors.New("disk I/O error"))

	if _, err := repo.Load(context.Background()); err == nil {
		t.Fatalf("Load() expected error, got nil")
	}
}

type sqlmockArgumentFunc func(v driver.Value) bool

func (f sqlmockArgumentFunc) Match(v driver.Value) bool {
	return f(v)
}
