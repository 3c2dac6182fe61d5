package adapter

import (
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/afero"

	m "cpm.dev/pkg/cpm/internal/model"
)

func TestReportStore_SaveAndLoad(t *testing.T) {
	fsys := afero.NewMemMapFs()
	store := NewReportStore(fsys)

	report := m.RenameReport{
		Operation: m.RenameOperation{
			OldName:    "foo",
			NewName:    "bar",
			WorkingDir: "/proj/src",
		},
		RenamedDirectory: true,
		RenamedSource:    true,
		RenamedHeader:    true,
		ModuleDir:        "/proj/src/bar",
		SourceRoot:       "/proj/src",
		SourceRootFound:  true,
		UpdatedFiles:     []m.Path{"main.c", "net/socket.c"},
	}

	if err := store.SaveRenameReport("/report.yaml", report); err != nil {
		t.Fatalf("SaveRenameReport() error = %v", err)
	}

	raw, err := afero.ReadFile(fsys, "/report.yaml")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(raw), "old_name: foo") {
		t.Fatalf("report missing operation fields:\n%s", raw)
	}

	loaded, err := store.LoadRenameReport("/report.yaml")
	if err != nil {
		t.Fatalf("LoadRenameReport() error = %v", err)
	}

	if !reflect.DeepEqual(loaded, report) {
		t.Fatalf("LoadRenameReport() = %+v, want %+v", loaded, report)
	}
}

func TestReportStore_LoadMissing(t *testing.T) {
	store := NewReportStore(afero.NewMemMapFs())

	if _, err := store.LoadRenameReport("/missing.yaml"); err == nil {
		t.Fatalf("LoadRenameReport() expected error for missing file")
	}
}
