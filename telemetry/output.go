package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/pthm-cable/leaves/config"
)

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir       string
	statsFile *os.File
	perfFile  *os.File

	// Track if headers have been written
	statsHeaderWritten bool
	perfHeaderWritten  bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "stats.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating stats.csv: %w", err)
	}
	om.statsFile = f

	f, err = os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		om.statsFile.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	return om, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteStats writes a window stats record to stats.csv.
func (om *OutputManager) WriteStats(stats WindowStats) error {
	if om == nil {
		return nil
	}
	if err := writeRecords(om.statsFile, []WindowStats{stats}, &om.statsHeaderWritten); err != nil {
		return fmt.Errorf("writing stats: %w", err)
	}
	return nil
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd time.Duration, fps float64) error {
	if om == nil {
		return nil
	}
	records := []PerfStatsCSV{stats.ToCSV(windowEnd, fps)}
	if err := writeRecords(om.perfFile, records, &om.perfHeaderWritten); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// writeRecords emits the CSV header only on the first write to f.
func writeRecords(f *os.File, records any, headerWritten *bool) error {
	if *headerWritten {
		return gocsv.MarshalWithoutHeaders(records, f)
	}
	if err := gocsv.Marshal(records, f); err != nil {
		return err
	}
	*headerWritten = true
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, f := range []*os.File{om.statsFile, om.perfFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
