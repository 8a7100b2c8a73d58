// Package report renders run results and ships them to lab automation.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hoppxi/hkcheck/internal/hotkey"
	"github.com/hoppxi/hkcheck/pkg/miscinfo"
)

// Summary is one hkcheck run.
type Summary struct {
	RunID   string              `json:"run_id" yaml:"run_id"`
	Host    string              `json:"host" yaml:"host"`
	System  miscinfo.SystemInfo `json:"system" yaml:"system"`
	Started time.Time           `json:"started" yaml:"started"`
	Passed  bool                `json:"passed" yaml:"passed"`
	Results []hotkey.Result     `json:"results" yaml:"results"`
	Counts  map[string]int      `json:"counts" yaml:"counts"`
}

func NewSummary(runID string, sys miscinfo.SystemInfo, started time.Time, results []hotkey.Result) Summary {
	counts := make(map[string]int)
	for _, r := range results {
		counts[string(r.Outcome)]++
	}
	return Summary{
		RunID:   runID,
		Host:    sys.Host,
		System:  sys,
		Started: started.UTC(),
		Passed:  hotkey.Passed(results),
		Results: results,
		Counts:  counts,
	}
}

// Render writes s in format: "text", "json" or "yaml".
func Render(w io.Writer, s Summary, format string) error {
	switch strings.ToLower(format) {
	case "", "text":
		return renderText(w, s)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

func renderText(w io.Writer, s Summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TEST\tRESULT\tTIME\tDETAIL")
	for _, r := range s.Results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Name, strings.ToUpper(string(r.Outcome)), r.Duration.Round(time.Millisecond), r.Detail)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	verdict := "PASS"
	if !s.Passed {
		verdict = "FAIL"
	}
	if _, err := fmt.Fprintf(w, "\n%s (run %s on %s)\n", verdict, s.RunID, s.Host); err != nil {
		return err
	}
	if s.System.Product != "" {
		_, err := fmt.Fprintf(w, "%s %s, BIOS %s, kernel %s\n", s.System.Vendor, s.System.Product, s.System.BIOS, s.System.Kernel)
		return err
	}
	return nil
}
