package repositories

import (
	"context"
	"testing"
	"time"

	gormModels "fleet-experiment/tarmac/internal/models/gorm"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Setup test database
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Auto migrate
	if err := db.AutoMigrate(&gormModels.ScenarioRun{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

func newRun(flights int) gormModels.ScenarioRun {
	return gormModels.ScenarioRun{
		ID:              uuid.New().String(),
		Seed:            42,
		NumAirports:     300,
		NumAircraft:     500,
		LegsPerAircraft: 10,
		FlightCount:     flights,
		Trigger:         "api",
		DurationMs:      12,
		CreatedAt:       time.Now().UTC(),
	}
}

func TestRunRepository_InsertAndFind(t *testing.T) {
	repo := NewRunRepository(setupTestDB(t))
	ctx := context.Background()

	run := newRun(5000)
	if err := repo.Insert(ctx, &run); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	found, err := repo.FindByID(ctx, run.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if found == nil {
		t.Fatal("Expected run, got nil")
	}
	if found.FlightCount != 5000 || found.Seed != 42 {
		t.Errorf("Run round-trip mismatch: %+v", found)
	}
}

func TestRunRepository_FindByID_NotFound(t *testing.T) {
	repo := NewRunRepository(setupTestDB(t))

	found, err := repo.FindByID(context.Background(), uuid.New().String())
	if err != nil {
		t.Fatalf("Expected no error for missing run, got %v", err)
	}
	if found != nil {
		t.Errorf("Expected nil for missing run, got %+v", found)
	}
}

func TestRunRepository_ListRecent(t *testing.T) {
	repo := NewRunRepository(setupTestDB(t))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		run := newRun(100 * (i + 1))
		run.CreatedAt = time.Now().UTC().Add(time.Duration(i) * time.Minute)
		if err := repo.Insert(ctx, &run); err != nil {
			t.Fatalf("Insert %d failed: %v", i, err)
		}
	}

	runs, err := repo.ListRecent(ctx, 3)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}
	if runs[0].FlightCount != 500 {
		t.Errorf("Expected newest run first (500 flights), got %d", runs[0].FlightCount)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 5 {
		t.Errorf("Expected 5 runs total, got %d", count)
	}
}

func TestRunRepository_BatchInsert(t *testing.T) {
	repo := NewRunRepository(setupTestDB(t))
	ctx := context.Background()

	runs := []gormModels.ScenarioRun{newRun(10), newRun(20), newRun(30)}
	if err := repo.BatchInsert(ctx, runs); err != nil {
		t.Fatalf("BatchInsert failed: %v", err)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 runs, got %d", count)
	}
}
