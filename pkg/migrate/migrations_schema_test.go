package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/inspectai/inspectai-backend/pkg/migrate"
)

func TestMigrationsDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("ValidateDir failed: %v", err)
	}
}

func TestFindingsMigrationDeclaresOptionalSourceLinks(t *testing.T) {
	content := readMigration(t, "*_create_findings.sql")

	for _, fragment := range []string{
		"photo_id uuid REFERENCES photos(id) ON DELETE SET NULL",
		"voice_note_id uuid REFERENCES voice_notes(id) ON DELETE SET NULL",
		"status finding_status NOT NULL DEFAULT 'active'",
	} {
		if !strings.Contains(content, fragment) {
			t.Fatalf("findings migration missing %q", fragment)
		}
	}
}

func TestInspectionsMigrationCascades(t *testing.T) {
	content := readMigration(t, "*_create_inspections.sql")
	if !strings.Contains(content, "REFERENCES profiles(id) ON DELETE CASCADE") {
		t.Fatal("inspections migration should cascade from profiles")
	}
	if !strings.Contains(content, "status inspection_status NOT NULL DEFAULT 'draft'") {
		t.Fatal("inspections migration should default status to draft")
	}
}

func TestMediaMigrationCascadesFromInspections(t *testing.T) {
	content := readMigration(t, "*_create_media_tables.sql")
	if strings.Count(content, "REFERENCES inspections(id) ON DELETE CASCADE") != 2 {
		t.Fatal("photos and voice_notes should both cascade from inspections")
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %s", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	return string(data)
}
