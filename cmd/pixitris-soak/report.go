package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/pixitris/ecs"
)

type Report struct {
	// Configuration
	Duration time.Duration
	MaxTicks int64
	MaxGames int
	Seed     uint64
	Width    int
	Height   int
	Store    string

	// Results
	Games      int
	TotalTicks int64
	TotalTime  time.Duration
	Pieces     int
	Lines      int
	Tetrises   int
	BestScore  int
	HighScore  int
	TickTime   Stats
	Systems    []ecs.SystemStats

	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// RecordGame folds a finished game into the totals.
func (r *Report) RecordGame(score, pieces, lines, tetrises int) {
	r.Games++
	r.Pieces += pieces
	r.Lines += lines
	r.Tetrises += tetrises
	r.BestScore = max(r.BestScore, score)
}

const reportTemplate = `
# pixitris Soak Report

## Configuration
- **Run Duration:** {{.Duration}}
- **Tick Limit:** {{if .MaxTicks}}{{.MaxTicks}}{{else}}none{{end}}
- **Game Limit:** {{if .MaxGames}}{{.MaxGames}}{{else}}none{{end}}
- **Seed:** {{.Seed}}
- **Field:** {{.Width}}x{{.Height}}
- **Store:** {{.Store}}

## Play
- **Games Finished:** {{.Games}}
- **Pieces Locked:** {{.Pieces}}
- **Lines Cleared:** {{.Lines}} ({{.Tetrises}} tetrises)
- **Best Score:** {{.BestScore}}
- **Stored High Score:** {{.HighScore}}

## Performance Results
- **Total Ticks:** {{.TotalTicks}}
- **Total Test Time:** {{.TotalTime}}
- **Tick Time:**
  - **Avg:** {{.TickTime.Avg}}
  - **Min:** {{.TickTime.Min}}
  - **Max:** {{.TickTime.Max}}
{{range .Systems}}
- {{.Name}}: {{.ExecutionCount}} runs, avg {{.AvgDuration}}, max {{.MaxDuration}}{{end}}

## Memory Usage
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} MB (start) -> {{mb .MemStatsEnd.HeapAlloc}} MB (end)
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}`

func (r *Report) Generate(w io.Writer) error {
	fm := template.FuncMap{
		"mb": func(v uint64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
