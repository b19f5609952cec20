// Command nominas runs the timesheet engine offline: it reads the same
// JSON envelope the HTTP endpoint accepts and writes the computed result,
// without needing a running server.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Gandalltf/prueba-productividad/api"
	"github.com/Gandalltf/prueba-productividad/nomina"
	"github.com/Gandalltf/prueba-productividad/report"
)

var (
	inputPath  string
	outputPath string
	htmlDir    string
)

var rootCmd = &cobra.Command{
	Use:   "nominas",
	Short: "Compute compliant monthly timesheets from raw hour records",
	Long: `Nominas redistributes productivity hours over clock-in days so each
worked day reaches 7h and each week has at most 6 worked days, without ever
altering real clock-in data.`,
}

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process a JSON request file and print or write the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return err
		}

		var req api.ProcessRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return fmt.Errorf("invalid JSON in %s: %w", inputPath, err)
		}

		result, err := nomina.Process(req.ToInput())
		if err != nil {
			return err
		}

		if htmlDir != "" {
			if err := writeHTMLReports(result, htmlDir); err != nil {
				return err
			}
		}

		out, err := json.MarshalIndent(api.ToResponse(result), "", "  ")
		if err != nil {
			return err
		}
		if outputPath == "" {
			fmt.Println(string(out))
			return nil
		}
		return os.WriteFile(outputPath, out, 0o644)
	},
}

func writeHTMLReports(result *nomina.Result, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, w := range result.Workers {
		html, err := report.WorkerHTML(w)
		if err != nil {
			return err
		}
		name := safeFileName(w.Worker) + ".html"
		if err := os.WriteFile(filepath.Join(dir, name), []byte(html), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func safeFileName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "worker"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '_'
		}
		return r
	}, s)
}

func init() {
	processCmd.Flags().StringVarP(&inputPath, "input", "i", "", "JSON request file (required)")
	processCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write result JSON here instead of stdout")
	processCmd.Flags().StringVar(&htmlDir, "html", "", "also write one HTML report per worker into this directory")
	_ = processCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(processCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
