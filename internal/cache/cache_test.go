package cache

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/applywise/applywise-cli/pkg/models"
	_ "github.com/mattn/go-sqlite3"
)

// createTestDB creates a temporary cache database
func createTestDB(t *testing.T) *sql.DB {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

// setupTest sets up a test database and returns a cleanup function
func setupTest(t *testing.T) func() {
	db := createTestDB(t)
	oldDB := DB
	DB = db

	return func() {
		DB = oldDB
		db.Close()
	}
}

func TestSaveHistoryUpserts(t *testing.T) {
	cleanup := setupTest(t)
	defer cleanup()

	entries := []models.HistoryEntry{
		{ID: "h1", JobTitle: "Engineer", Company: "Acme", Status: models.StatusPending, CreatedAt: time.Now()},
		{ID: "h2", JobTitle: "Developer", Company: "Beta", Status: models.StatusSubmitted, CreatedAt: time.Now().Add(-time.Hour)},
	}
	if err := SaveHistory(entries); err != nil {
		t.Fatalf("failed to save history: %v", err)
	}

	// Re-saving with a changed status updates in place.
	entries[0].Status = models.StatusSubmitted
	if err := SaveHistory(entries[:1]); err != nil {
		t.Fatalf("failed to re-save history: %v", err)
	}

	got, err := ListHistory(10)
	if err != nil {
		t.Fatalf("failed to list history: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].ID != "h1" {
		t.Errorf("expected newest entry first, got %s", got[0].ID)
	}
	if got[0].Status != models.StatusSubmitted {
		t.Errorf("expected updated status, got %s", got[0].Status)
	}
}

func TestListHistoryLimit(t *testing.T) {
	cleanup := setupTest(t)
	defer cleanup()

	var entries []models.HistoryEntry
	for i := 0; i < 5; i++ {
		entries = append(entries, models.HistoryEntry{
			ID:        fmt.Sprintf("h%d", i),
			JobTitle:  "Engineer",
			Company:   "Acme",
			Status:    models.StatusSubmitted,
			CreatedAt: time.Now().Add(time.Duration(-i) * time.Hour),
		})
	}
	if err := SaveHistory(entries); err != nil {
		t.Fatalf("failed to save history: %v", err)
	}

	got, err := ListHistory(3)
	if err != nil {
		t.Fatalf("failed to list history: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected 3 entries, got %d", len(got))
	}
}

func TestSaveAndListApplications(t *testing.T) {
	cleanup := setupTest(t)
	defer cleanup()

	app := &models.Application{
		ID:        "app_1",
		JobTitle:  "Engineer",
		Company:   "Acme",
		ResumeID:  "res_1",
		Status:    models.StatusPending,
		CreatedAt: time.Now(),
	}
	if err := SaveApplication(app); err != nil {
		t.Fatalf("failed to save application: %v", err)
	}

	apps, err := ListApplications()
	if err != nil {
		t.Fatalf("failed to list applications: %v", err)
	}
	if len(apps) != 1 {
		t.Fatalf("expected 1 application, got %d", len(apps))
	}
	if apps[0].JobTitle != "Engineer" || apps[0].ResumeID != "res_1" {
		t.Errorf("unexpected application row: %+v", apps[0])
	}
}

func TestCountHistoryByStatus(t *testing.T) {
	cleanup := setupTest(t)
	defer cleanup()

	entries := []models.HistoryEntry{
		{ID: "h1", JobTitle: "A", Company: "X", Status: models.StatusSubmitted, CreatedAt: time.Now()},
		{ID: "h2", JobTitle: "B", Company: "X", Status: models.StatusSubmitted, CreatedAt: time.Now()},
		{ID: "h3", JobTitle: "C", Company: "X", Status: models.StatusFailed, CreatedAt: time.Now()},
	}
	if err := SaveHistory(entries); err != nil {
		t.Fatalf("failed to save history: %v", err)
	}

	counts, err := CountHistoryByStatus()
	if err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	if counts[models.StatusSubmitted] != 2 || counts[models.StatusFailed] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}
}
