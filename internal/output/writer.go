package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/xuri/excelize/v2"

	"github.com/August26/ipintel-go/internal/model"
)

// PrintResultsTable prints a human-readable table of per-target rows.
// The table shows the compact failure class; full error text goes to
// the file writers.
func PrintResultsTable(w io.Writer, results []model.CheckResult) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)

	// header
	fmt.Fprintln(tw, "IP\tOK\tSCORE\tRISK\tBAD\tCOUNTRY\tCITY\tISP\tLAT(ms)\tSTATUS\tERROR")

	for _, r := range results {
		ok := "no"
		if r.OK {
			ok = "yes"
		}

		lat := "-"
		if r.LatencyMs > 0 {
			lat = strconv.FormatInt(r.LatencyMs, 10)
		}

		status := "-"
		if r.StatusCode > 0 {
			status = strconv.Itoa(r.StatusCode)
		}

		errText := "-"
		if r.ErrorKind != "" {
			errText = r.ErrorKind
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Input.IP,
			ok,
			dashIfEmpty(r.Score),
			dashIfEmpty(r.RiskLabel),
			boolToYN(r.BadIP),
			dashIfEmpty(r.Country),
			dashIfEmpty(r.City),
			dashIfEmpty(r.ISP),
			lat,
			status,
			errText,
		)
	}

	tw.Flush()
}

// PrintSummary prints the aggregated run stats.
func PrintSummary(w io.Writer, stats model.BatchStats) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Summary:")
	fmt.Fprintf(w, "  Total targets:          %s\n", humanize.Comma(int64(stats.TotalTargets)))
	fmt.Fprintf(w, "  Unique targets:         %s\n", humanize.Comma(int64(stats.UniqueTargets)))
	fmt.Fprintf(w, "  Succeeded:              %s\n", humanize.Comma(int64(stats.Succeeded)))
	fmt.Fprintf(w, "  Transport failures:     %s\n", humanize.Comma(int64(stats.TransportFailures)))
	fmt.Fprintf(w, "  Service failures:       %s\n", humanize.Comma(int64(stats.ServiceFailures)))
	fmt.Fprintf(w, "  High risk:              %s\n", humanize.Comma(int64(stats.HighRisk)))
	fmt.Fprintf(w, "  Avg score (succeeded):  %.4f\n", stats.AvgScore)
	fmt.Fprintf(w, "  Avg latency:            %.1f ms\n", stats.AvgLatencyMs)
	fmt.Fprintf(w, "  Success rate:           %.1f%%\n", stats.SuccessRatePct)
	fmt.Fprintf(w, "  Batch time:             %.2f s\n", float64(stats.TotalProcessingTimeMs)/1000.0)
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func boolToYN(b bool) string {
	if b {
		return "y"
	}
	return "n"
}

// WriteFile writes all results + summary stats to a file in json, csv
// or xlsx format.
func WriteFile(path string, format string, results []model.CheckResult, stats model.BatchStats) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch format {
	case "json":
		return writeJSON(f, results, stats)
	case "csv":
		return writeCSV(f, results)
	case "xlsx":
		return writeXLSX(f, results, stats)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// writeJSON writes an object with "results" and "summary".
func writeJSON(w io.Writer, results []model.CheckResult, stats model.BatchStats) error {
	payload := struct {
		Results []model.CheckResult `json:"results"`
		Summary model.BatchStats    `json:"summary"`
	}{
		Results: results,
		Summary: stats,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

var fileHeader = []string{
	"ip",
	"flags",
	"ok",
	"score",
	"risk_label",
	"bad_ip",
	"country",
	"city",
	"isp",
	"latency_ms",
	"status_code",
	"error_kind",
	"error",
}

func fileRow(r model.CheckResult) []string {
	return []string{
		r.Input.IP,
		r.Input.Flags,
		boolToYN(r.OK),
		r.Score,
		r.RiskLabel,
		boolToYN(r.BadIP),
		r.Country,
		r.City,
		r.ISP,
		strconv.FormatInt(r.LatencyMs, 10),
		strconv.Itoa(r.StatusCode),
		r.ErrorKind,
		r.Error,
	}
}

// writeCSV writes a CSV with per-target rows (summary is not included
// in CSV).
func writeCSV(w io.Writer, results []model.CheckResult) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(fileHeader); err != nil {
		return err
	}
	for _, r := range results {
		if err := cw.Write(fileRow(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeXLSX writes a workbook with a Results sheet and a Summary
// sheet.
func writeXLSX(w io.Writer, results []model.CheckResult, stats model.BatchStats) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Results"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	for i, h := range fileHeader {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for rowIdx, r := range results {
		for colIdx, v := range fileRow(r) {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	if _, err := f.NewSheet("Summary"); err != nil {
		return err
	}
	summary := []struct {
		name  string
		value any
	}{
		{"total_targets", stats.TotalTargets},
		{"unique_targets", stats.UniqueTargets},
		{"succeeded", stats.Succeeded},
		{"transport_failures", stats.TransportFailures},
		{"service_failures", stats.ServiceFailures},
		{"high_risk", stats.HighRisk},
		{"avg_score", stats.AvgScore},
		{"avg_latency_ms", stats.AvgLatencyMs},
		{"success_rate_pct", stats.SuccessRatePct},
		{"total_processing_time_ms", stats.TotalProcessingTimeMs},
	}
	for i, kv := range summary {
		if err := f.SetCellValue("Summary", fmt.Sprintf("A%d", i+1), kv.name); err != nil {
			return err
		}
		if err := f.SetCellValue("Summary", fmt.Sprintf("B%d", i+1), kv.value); err != nil {
			return err
		}
	}

	_, err := f.WriteTo(w)
	return err
}
