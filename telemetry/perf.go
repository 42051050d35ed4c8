package telemetry

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase names for one animation frame.
const (
	PhaseInput     = "input"
	PhaseStep      = "step"
	PhaseApply     = "apply"
	PhaseTelemetry = "telemetry"
)

var phaseOrder = []string{PhaseInput, PhaseStep, PhaseApply, PhaseTelemetry}

// PerfSample holds timing data for a single frame.
type PerfSample struct {
	FrameDuration time.Duration
	Phases        map[string]time.Duration
}

// PerfCollector tracks frame timings over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	frameStart    time.Time
	phaseStart    time.Time
	lastPhase     string

	now func() time.Time
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of frames to aggregate over (e.g., 120 for 2 seconds at 60fps).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
		now:           time.Now,
	}
}

// StartFrame begins timing a new frame.
func (p *PerfCollector) StartFrame() {
	p.frameStart = p.now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase, ending the previous one.
func (p *PerfCollector) StartPhase(phase string) {
	now := p.now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndFrame finishes timing the current frame and records the sample.
func (p *PerfCollector) EndFrame() {
	now := p.now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		FrameDuration: now.Sub(p.frameStart),
		Phases:        p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
	p.lastPhase = ""
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgFrame    time.Duration
	StdDevFrame time.Duration
	MaxFrame    time.Duration
	PhaseAvg    map[string]time.Duration
	PhasePct    map[string]float64
	Frames      int
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	if p.sampleCount == 0 {
		return PerfStats{
			PhaseAvg: make(map[string]time.Duration),
			PhasePct: make(map[string]float64),
		}
	}

	durations := make([]float64, p.sampleCount)
	var maxFrame time.Duration
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		durations[i] = float64(s.FrameDuration)
		if s.FrameDuration > maxFrame {
			maxFrame = s.FrameDuration
		}
		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	mean, std := stat.MeanStdDev(durations, nil)
	if p.sampleCount < 2 {
		std = 0
	}
	avg := time.Duration(mean)

	phaseAvg := make(map[string]time.Duration, len(phaseSum))
	phasePct := make(map[string]float64, len(phaseSum))
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avg > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avg) * 100
		}
	}

	return PerfStats{
		AvgFrame:    avg,
		StdDevFrame: time.Duration(std),
		MaxFrame:    maxFrame,
		PhaseAvg:    phaseAvg,
		PhasePct:    phasePct,
		Frames:      p.sampleCount,
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_frame_us", s.AvgFrame.Microseconds()),
		slog.Int64("std_frame_us", s.StdDevFrame.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrame.Microseconds()),
	}
	for _, phase := range phaseOrder {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd    float64 `csv:"window_end"`
	FPS          float64 `csv:"fps"`
	AvgFrameUS   int64   `csv:"avg_frame_us"`
	StdFrameUS   int64   `csv:"std_frame_us"`
	MaxFrameUS   int64   `csv:"max_frame_us"`
	InputPct     float64 `csv:"input_pct"`
	StepPct      float64 `csv:"step_pct"`
	ApplyPct     float64 `csv:"apply_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd time.Duration, fps float64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd.Seconds(),
		FPS:          fps,
		AvgFrameUS:   s.AvgFrame.Microseconds(),
		StdFrameUS:   s.StdDevFrame.Microseconds(),
		MaxFrameUS:   s.MaxFrame.Microseconds(),
		InputPct:     s.PhasePct[PhaseInput],
		StepPct:      s.PhasePct[PhaseStep],
		ApplyPct:     s.PhasePct[PhaseApply],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
