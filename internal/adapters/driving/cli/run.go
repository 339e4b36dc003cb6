package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mindsonic-labs/mindsonic/internal/core/ports/driving"
)

// requestFile is consulted for the research query when --query is not
// given.
const requestFile = "request.txt"

var (
	flagQuery string
	flagReset bool
)

var (
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	headerStyle = lipgloss.NewStyle().Bold(true)
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process the knowledge tree",
	Long: `Scans the knowledge directory, ingests every supported file into the
store, archives processed files, and finishes with a research answer
and a closing poem when a language model is configured.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "research query (default: contents of request.txt)")
	runCmd.Flags().BoolVar(&flagReset, "reset", false, "reset the collection before ingesting")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	p, err := buildPipeline(settings)
	if err != nil {
		return err
	}
	defer p.close()

	ctx := cmd.Context()

	if flagReset {
		if err := p.store.Reset(ctx); err != nil {
			return fmt.Errorf("reset collection: %w", err)
		}
		cmd.Println("Collection reset.")
	}

	query := resolveQuery(flagQuery)

	report, err := p.runner.Run(ctx, query)
	if err != nil {
		return err
	}

	printReport(cmd, report)

	if report.Answer != "" {
		if err := saveArtefacts(settings.OutputDir, report); err != nil {
			return fmt.Errorf("save outputs: %w", err)
		}
	}
	return nil
}

// resolveQuery prefers the flag, then a request file in the working
// directory. An empty result skips the research step.
func resolveQuery(flag string) string {
	if flag != "" {
		return flag
	}
	data, err := os.ReadFile(requestFile)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func printReport(cmd *cobra.Command, report *driving.RunReport) {
	totalOK, totalFailed := 0, 0

	for _, bucket := range report.Buckets {
		cmd.Println(headerStyle.Render(fmt.Sprintf("%s (%d files)", bucket.Type, len(bucket.Statuses))))
		for _, status := range bucket.Statuses {
			if status.OK() {
				cmd.Printf("  %s %s\n", okStyle.Render("ok"), status.Record.RelPath)
			} else {
				cmd.Printf("  %s %s: %v\n", failedStyle.Render("failed"), status.Record.RelPath, status.Err)
			}
		}
		totalOK += bucket.Processed()
		totalFailed += bucket.Failed()
	}

	if totalOK+totalFailed == 0 {
		cmd.Println("Nothing to process.")
	} else {
		cmd.Printf("\n%d processed, %d failed\n", totalOK, totalFailed)
	}

	if report.Answer != "" {
		cmd.Println()
		cmd.Println(headerStyle.Render("Answer"))
		cmd.Println(report.Answer)
	}
	if report.Poem != "" {
		cmd.Println()
		cmd.Println(headerStyle.Render("Poem"))
		cmd.Println(report.Poem)
	}
}

// saveArtefacts writes the answer and poem under the output directory.
func saveArtefacts(outputDir string, report *driving.RunReport) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outputDir, "answer.md"), []byte(report.Answer+"\n"), 0o644); err != nil {
		return err
	}
	if report.Poem != "" {
		return os.WriteFile(filepath.Join(outputDir, "poem.md"), []byte(report.Poem+"\n"), 0o644)
	}
	return nil
}
