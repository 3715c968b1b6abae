package commands

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

const requestCompleted = "Request completed"

// logEntry is one line written by the JSON logger
type logEntry struct {
	Level    string  `json:"level"`
	Message  string  `json:"message"`
	Method   string  `json:"method"`
	Path     string  `json:"path"`
	ClientIP string  `json:"client_ip"`
	Status   int     `json:"status"`
	Duration float64 `json:"duration"`
}

type pathStats struct {
	Count   int
	TotalMs float64
	MaxMs   float64
}

// LogStats summarizes a JSON log stream
type LogStats struct {
	Lines         int
	Skipped       int
	Requests      int
	StatusClasses map[string]int
	FailedLogins  int
	Unauthorized  int
	Forbidden     int
	RateLimited   int
	Errors        int
	Warnings      int
	Paths         map[string]*pathStats
	ClientIPs     map[string]int
	ErrorMessages map[string]int
}

func newAnalyzeLogsCmd() *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:   "analyze-logs [file...]",
		Short: "Summarize JSON request logs (LOG_FORMAT=json), reading stdin when no file is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats := newLogStats()
			if len(args) == 0 {
				if err := stats.Read(cmd.InOrStdin()); err != nil {
					return err
				}
			}
			for _, name := range args {
				if err := readLogFile(stats, name); err != nil {
					return err
				}
			}
			return stats.Report(cmd.OutOrStdout(), top)
		},
	}
	cmd.Flags().IntVar(&top, "top", 5, "rows shown in the top paths, clients and errors tables")
	return cmd
}

func readLogFile(stats *LogStats, name string) error {
	file, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("open log file %s: %w", name, err)
	}
	defer file.Close()
	return stats.Read(file)
}

func newLogStats() *LogStats {
	return &LogStats{
		StatusClasses: make(map[string]int),
		Paths:         make(map[string]*pathStats),
		ClientIPs:     make(map[string]int),
		ErrorMessages: make(map[string]int),
	}
}

// Read consumes log lines from r. Lines that are not JSON objects are counted
// as skipped.
func (s *LogStats) Read(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		s.Lines++

		var entry logEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			s.Skipped++
			continue
		}
		s.add(entry)
	}
	return scanner.Err()
}

func (s *LogStats) add(e logEntry) {
	switch e.Level {
	case "error", "fatal", "panic":
		s.Errors++
		s.ErrorMessages[e.Message]++
	case "warn":
		s.Warnings++
		s.ErrorMessages[e.Message]++
	}

	if e.Message != requestCompleted || e.Status == 0 {
		return
	}
	s.Requests++
	s.StatusClasses[strconv.Itoa(e.Status/100)+"xx"]++
	s.ClientIPs[e.ClientIP]++

	switch e.Status {
	case 401:
		s.Unauthorized++
	case 403:
		s.Forbidden++
	case 429:
		s.RateLimited++
	}
	if e.Method == "POST" && e.Path == "/api/users/login" && e.Status == 400 {
		s.FailedLogins++
	}

	key := e.Method + " " + e.Path
	p, ok := s.Paths[key]
	if !ok {
		p = &pathStats{}
		s.Paths[key] = p
	}
	p.Count++
	p.TotalMs += e.Duration
	if e.Duration > p.MaxMs {
		p.MaxMs = e.Duration
	}
}

// Report prints the summary tables
func (s *LogStats) Report(w io.Writer, top int) error {
	fmt.Fprintln(w, "=== Log Analysis Report ===")
	fmt.Fprintf(w, "Lines: %d (skipped %d)\n\n", s.Lines, s.Skipped)

	summary := [][]string{
		{"Requests", strconv.Itoa(s.Requests)},
		{"2xx", strconv.Itoa(s.StatusClasses["2xx"])},
		{"4xx", strconv.Itoa(s.StatusClasses["4xx"])},
		{"5xx", strconv.Itoa(s.StatusClasses["5xx"])},
		{"Failed logins", strconv.Itoa(s.FailedLogins)},
		{"Unauthorized", strconv.Itoa(s.Unauthorized)},
		{"Forbidden", strconv.Itoa(s.Forbidden)},
		{"Rate limited", strconv.Itoa(s.RateLimited)},
		{"Errors logged", strconv.Itoa(s.Errors)},
		{"Warnings logged", strconv.Itoa(s.Warnings)},
	}
	if err := renderTable(w, []string{"Metric", "Value"}, summary); err != nil {
		return err
	}

	var paths [][]string
	for _, key := range topKeys(s.Paths, func(p *pathStats) int { return p.Count }, top) {
		p := s.Paths[key]
		paths = append(paths, []string{
			key,
			strconv.Itoa(p.Count),
			fmt.Sprintf("%.2f", p.TotalMs/float64(p.Count)),
			fmt.Sprintf("%.2f", p.MaxMs),
		})
	}
	fmt.Fprintln(w, "\nBusiest paths:")
	if err := renderTable(w, []string{"Route", "Requests", "Avg ms", "Max ms"}, paths); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nMost active clients:")
	if err := renderCounts(w, "Client IP", s.ClientIPs, top); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nMost common errors and warnings:")
	return renderCounts(w, "Message", s.ErrorMessages, top)
}

func renderCounts(w io.Writer, label string, counts map[string]int, top int) error {
	var rows [][]string
	for _, key := range topKeys(counts, func(n int) int { return n }, top) {
		rows = append(rows, []string{key, strconv.Itoa(counts[key])})
	}
	return renderTable(w, []string{label, "Count"}, rows)
}

func renderTable(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Options(tablewriter.WithHeader(header))
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("failed to append row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}

// topKeys returns up to n keys ordered by descending weight, ties by key
func topKeys[V any](m map[string]V, weight func(V) int, n int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		wi, wj := weight(m[keys[i]]), weight(m[keys[j]])
		if wi != wj {
			return wi > wj
		}
		return keys[i] < keys[j]
	})
	if n > 0 && len(keys) > n {
		keys = keys[:n]
	}
	return keys
}
