package repo

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/donhackett/go-resume-site/internal/domain"
)

func newRepoDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:repo_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func TestCreateResumeRequest_Error_NoTable(t *testing.T) {
	db := newRepoDB(t /* no migrations */)
	r, err := CreateResumeRequest(context.Background(), db, "Jane", "jane@example.com", "1.2.3.4")
	if err == nil || r != nil {
		t.Fatalf("expected error without table, got r=%v err=%v", r, err)
	}
	// Rollback contract: nothing persisted even after the table appears.
	if err := db.AutoMigrate(&domain.ResumeRequest{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	total, err := CountResumeRequests(context.Background(), db)
	if err != nil || total != 0 {
		t.Fatalf("expected empty table after failed create, total=%d err=%v", total, err)
	}
}

func TestCreateResumeRequest_RoundTrip(t *testing.T) {
	db := newRepoDB(t, &domain.ResumeRequest{})

	start := time.Now().UTC().Add(-time.Minute)
	r, err := CreateResumeRequest(context.Background(), db, "Jane Doe", "jane@example.com", "10.0.0.1")
	if err != nil {
		t.Fatalf("CreateResumeRequest: %v", err)
	}
	if r.ID == 0 || r.Name != "Jane Doe" || r.Email != "jane@example.com" || r.IPAddress != "10.0.0.1" {
		t.Fatalf("unexpected fields: %+v", r)
	}
	if r.CreatedAt.Before(start) {
		t.Fatalf("CreatedAt seems unset: %v", r.CreatedAt)
	}

	got, err := FindResumeRequestByEmail(context.Background(), db, "jane@example.com")
	if err != nil {
		t.Fatalf("FindResumeRequestByEmail: %v", err)
	}
	if got.Name != r.Name || got.Email != r.Email || got.IPAddress != r.IPAddress {
		t.Fatalf("round-trip mismatch: %+v vs %+v", got, r)
	}
	if d := got.CreatedAt.Sub(r.CreatedAt); d > time.Second || d < -time.Second {
		t.Fatalf("timestamp drift: %v vs %v", got.CreatedAt, r.CreatedAt)
	}
}

func TestFindResumeRequestByEmail_NotFound(t *testing.T) {
	db := newRepoDB(t, &domain.ResumeRequest{})
	_, err := FindResumeRequestByEmail(context.Background(), db, "nobody@example.com")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFindResumeRequestByEmail_FirstMatchWins(t *testing.T) {
	db := newRepoDB(t, &domain.ResumeRequest{})

	// Email is not a uniqueness key: two rows may exist under a race. The
	// lookup must deterministically return the first (lowest id).
	for _, name := range []string{"First", "Second"} {
		if _, err := CreateResumeRequest(context.Background(), db, name, "dup@example.com", ""); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}
	got, err := FindResumeRequestByEmail(context.Background(), db, "dup@example.com")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Name != "First" {
		t.Fatalf("expected first row, got %+v", got)
	}
}

func TestListResumeRequests_NewestFirst(t *testing.T) {
	db := newRepoDB(t, &domain.ResumeRequest{})

	for i := 1; i <= 3; i++ {
		if _, err := CreateResumeRequest(context.Background(), db, fmt.Sprintf("u%d", i), fmt.Sprintf("u%d@example.com", i), ""); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}
	list, err := ListResumeRequests(context.Background(), db)
	if err != nil {
		t.Fatalf("ListResumeRequests: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(list))
	}
	if list[0].Name != "u3" || list[2].Name != "u1" {
		t.Fatalf("unexpected order: %#v", list)
	}
}

func TestListResumeRequestsPage(t *testing.T) {
	db := newRepoDB(t, &domain.ResumeRequest{})

	for i := 1; i <= 5; i++ {
		if _, err := CreateResumeRequest(context.Background(), db, fmt.Sprintf("u%d", i), fmt.Sprintf("u%d@example.com", i), ""); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}
	page, err := ListResumeRequestsPage(context.Background(), db, 2, 2)
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if len(page) != 2 || page[0].Name != "u3" || page[1].Name != "u2" {
		t.Fatalf("unexpected page: %#v", page)
	}
}

func TestCountResumeRequests_Error_NoTable(t *testing.T) {
	db := newRepoDB(t /* no migrations */)
	if _, err := CountResumeRequests(context.Background(), db); err == nil {
		t.Fatalf("expected error when table missing")
	}
}
