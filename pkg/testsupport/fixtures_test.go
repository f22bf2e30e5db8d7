package testsupport

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-fpl-sync/domain"
)

func TestFixturePath(t *testing.T) {
	got := FixturePath("sample.json")
	want := filepath.Join("testdata", "sample.json")
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestLoadFixtureJSON(t *testing.T) {
	var payload struct {
		ID        int64  `json:"id"`
		Name      string `json:"name"`
		ShortName string `json:"short_name"`
	}
	LoadFixtureJSON(t, FixturePath("sample.json"), &payload)

	if payload.ID != 1 || payload.Name != "Arsenal" || payload.ShortName != "ARS" {
		t.Errorf("unexpected fixture contents: %+v", payload)
	}
}

func TestOpenDBCreatesEntityTables(t *testing.T) {
	db := OpenDB(t)
	ctx := context.Background()

	team := domain.Team{ID: 1, Code: 3, Name: "Arsenal", ShortName: "ARS"}
	if _, err := db.NewInsert().Model(&team).Exec(ctx); err != nil {
		t.Fatalf("expected teams table to exist, got %v", err)
	}

	count, err := db.NewSelect().Model((*domain.Team)(nil)).Count(ctx)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 row, got %d", count)
	}
}
