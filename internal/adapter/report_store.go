package adapter

import (
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	m "cpm.dev/pkg/cpm/internal/model"
)

// ReportStore persists rename reports as YAML documents.
type ReportStore interface {
	SaveRenameReport(path m.Path, report m.RenameReport) error
	LoadRenameReport(path m.Path) (m.RenameReport, error)
}

type reportStore struct {
	fs afero.Fs
}

// NewReportStore constructs a ReportStore writing through fsys.
func NewReportStore(fsys afero.Fs) ReportStore {
	return &reportStore{fs: fsys}
}

func (s *reportStore) SaveRenameReport(path m.Path, report m.RenameReport) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if err := afero.WriteFile(s.fs, string(path), data, 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}

	return nil
}

func (s *reportStore) LoadRenameReport(path m.Path) (m.RenameReport, error) {
	var report m.RenameReport

	data, err := afero.ReadFile(s.fs, string(path))
	if err != nil {
		return report, fmt.Errorf("failed to read report %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &report); err != nil {
		return report, fmt.Errorf("failed to decode report %s: %w", path, err)
	}

	return report, nil
}
