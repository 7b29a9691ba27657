package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"bmitrack/internal/domain"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	dir, err := os.MkdirTemp("", "bmitrack-test-*")
	if err != nil {
		t.Fatalf("create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	db, err := Open(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUsers(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		id, err := db.CreateUser(ctx, "Alice", "1990-04-01")
		if err != nil {
			t.Fatalf("CreateUser: %v", err)
		}
		u, err := db.GetUser(ctx, id)
		if err != nil {
			t.Fatalf("GetUser: %v", err)
		}
		if u.Name != "Alice" || u.DOB != "1990-04-01" {
			t.Errorf("unexpected user: %+v", u)
		}
	})

	t.Run("duplicate name is case-insensitive", func(t *testing.T) {
		if _, err := db.CreateUser(ctx, "ALICE", ""); !errors.Is(err, domain.ErrDuplicateUser) {
			t.Errorf("expected ErrDuplicateUser, got %v", err)
		}
	})

	t.Run("empty dob reads back empty", func(t *testing.T) {
		id, err := db.CreateUser(ctx, "Bob", "")
		if err != nil {
			t.Fatalf("CreateUser: %v", err)
		}
		u, err := db.GetUser(ctx, id)
		if err != nil {
			t.Fatalf("GetUser: %v", err)
		}
		if u.DOB != "" {
			t.Errorf("expected empty dob, got %q", u.DOB)
		}
	})

	t.Run("list ordered case-insensitively", func(t *testing.T) {
		if _, err := db.CreateUser(ctx, "carol", ""); err != nil {
			t.Fatalf("CreateUser: %v", err)
		}
		users, err := db.ListUsers(ctx)
		if err != nil {
			t.Fatalf("ListUsers: %v", err)
		}
		var names []string
		for _, u := range users {
			names = append(names, u.Name)
		}
		want := []string{"Alice", "Bob", "carol"}
		if len(names) != len(want) {
			t.Fatalf("expected %d users, got %v", len(want), names)
		}
		for i := range want {
			if names[i] != want[i] {
				t.Errorf("names[%d] = %q; want %q", i, names[i], want[i])
			}
		}
	})

	t.Run("get unknown", func(t *testing.T) {
		if _, err := db.GetUser(ctx, 9999); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestRename(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	aliceID, _ := db.CreateUser(ctx, "Alice", "")
	if _, err := db.CreateUser(ctx, "Bob", ""); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if err := db.RenameUser(ctx, aliceID, "Alice"); err != nil {
		t.Errorf("rename to self should succeed: %v", err)
	}
	if err := db.RenameUser(ctx, aliceID, "bob"); !errors.Is(err, domain.ErrDuplicateUser) {
		t.Errorf("expected ErrDuplicateUser, got %v", err)
	}
	if err := db.RenameUser(ctx, 9999, "Zed"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := db.RenameUser(ctx, aliceID, "Alicia"); err != nil {
		t.Fatalf("RenameUser: %v", err)
	}
	u, _ := db.GetUser(ctx, aliceID)
	if u.Name != "Alicia" {
		t.Errorf("expected Alicia, got %q", u.Name)
	}
}

func addTestReading(t *testing.T, db *DB, userID int64, ts time.Time) int64 {
	t.Helper()
	id, err := db.AddReading(context.Background(), domain.Reading{
		UserID:    userID,
		Timestamp: ts,
		Weight:    70,
		Height:    175,
		Unit:      domain.Metric,
		BMI:       22.86,
		Category:  domain.Normal,
	})
	if err != nil {
		t.Fatalf("AddReading: %v", err)
	}
	return id
}

func TestReadings(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	userID, _ := db.CreateUser(ctx, "Alice", "")

	t.Run("owner must exist", func(t *testing.T) {
		_, err := db.AddReading(ctx, domain.Reading{UserID: 9999, Timestamp: time.Now(), Unit: domain.Metric, Category: domain.Normal, Weight: 70, Height: 175, BMI: 22.86})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("round trip preserves fields", func(t *testing.T) {
		ts := time.Date(2026, 6, 1, 12, 30, 45, 123456789, time.UTC)
		id, err := db.AddReading(ctx, domain.Reading{
			UserID: userID, Timestamp: ts,
			Weight: 72.4, Height: 175, Unit: domain.Metric,
			BMI: 23.64, Category: domain.Normal, Notes: "after run",
		})
		if err != nil {
			t.Fatalf("AddReading: %v", err)
		}
		readings, err := db.ListReadings(ctx, userID)
		if err != nil {
			t.Fatalf("ListReadings: %v", err)
		}
		if len(readings) != 1 {
			t.Fatalf("expected 1 reading, got %d", len(readings))
		}
		r := readings[0]
		if r.ID != id || r.UserID != userID {
			t.Errorf("unexpected ids: %+v", r)
		}
		if !r.Timestamp.Equal(ts) {
			t.Errorf("timestamp = %v; want %v", r.Timestamp, ts)
		}
		if r.Weight != 72.4 || r.Height != 175 || r.Unit != domain.Metric {
			t.Errorf("unexpected measurement: %+v", r)
		}
		if r.BMI != 23.64 || r.Category != domain.Normal || r.Notes != "after run" {
			t.Errorf("unexpected derived fields: %+v", r)
		}
		if err := db.DeleteReading(ctx, id); err != nil {
			t.Fatalf("DeleteReading: %v", err)
		}
	})

	t.Run("ordered by timestamp then id", func(t *testing.T) {
		base := time.Date(2026, 6, 2, 8, 0, 0, 0, time.UTC)
		late := addTestReading(t, db, userID, base.Add(time.Hour))
		tie1 := addTestReading(t, db, userID, base)
		tie2 := addTestReading(t, db, userID, base)

		readings, err := db.ListReadings(ctx, userID)
		if err != nil {
			t.Fatalf("ListReadings: %v", err)
		}
		want := []int64{tie1, tie2, late}
		if len(readings) != len(want) {
			t.Fatalf("expected %d readings, got %d", len(want), len(readings))
		}
		for i, r := range readings {
			if r.ID != want[i] {
				t.Errorf("readings[%d].ID = %d; want %d", i, r.ID, want[i])
			}
		}
	})

	t.Run("delete unknown reading", func(t *testing.T) {
		if err := db.DeleteReading(ctx, 9999); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list for unknown user", func(t *testing.T) {
		if _, err := db.ListReadings(ctx, 9999); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestDeleteUserCascades(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	aliceID, _ := db.CreateUser(ctx, "Alice", "")
	bobID, _ := db.CreateUser(ctx, "Bob", "")

	now := time.Now().UTC()
	for i := 0; i < 3; i++ {
		addTestReading(t, db, aliceID, now.Add(time.Duration(i)*time.Minute))
	}
	bobReading := addTestReading(t, db, bobID, now)

	n, err := db.DeleteUser(ctx, aliceID)
	if err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 cascaded readings, got %d", n)
	}
	if _, err := db.GetUser(ctx, aliceID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected user gone, got %v", err)
	}
	if _, err := db.ListReadings(ctx, aliceID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	readings, err := db.ListReadings(ctx, bobID)
	if err != nil {
		t.Fatalf("ListReadings: %v", err)
	}
	if len(readings) != 1 || readings[0].ID != bobReading {
		t.Errorf("Bob's reading should survive, got %+v", readings)
	}

	if _, err := db.DeleteUser(ctx, aliceID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound on double delete, got %v", err)
	}
}
