package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	configfile "github.com/octotext/octotext/internal/adapters/driven/config/file"
	"github.com/octotext/octotext/internal/core/domain"
	"github.com/octotext/octotext/internal/format"
)

var (
	extractOutput string
	extractFormat string
	extractRaw    bool
	extractDepth  int
	extractTypes  string
)

var extractCmd = &cobra.Command{
	Use:   "extract [url]",
	Short: "Extract a GitHub issue or pull request",
	Long: `Fetches the rendered page for a GitHub issue or pull request URL
and prints its structured content. With --depth greater than zero,
references discovered in the text (issues, PRs, commits) are followed
breadth-first and included as related items; each distinct reference
is fetched at most once, and a failed related fetch leaves the item
listed without content rather than failing the run.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "write output to file instead of stdout")
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "", "output format: json or markdown (default json)")
	extractCmd.Flags().BoolVarP(&extractRaw, "raw", "r", false, "output the raw extracted record without LLM reshaping")
	extractCmd.Flags().IntVarP(&extractDepth, "depth", "d", 0, "maximum depth for related-item traversal (0 = none)")
	extractCmd.Flags().StringVarP(&extractTypes, "types", "t", "", "related item kinds to expand: issue,pull_request,commit (default all)")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	if extractService == nil {
		return errors.New("extract service not configured")
	}

	ref, err := domain.ParseURL(args[0])
	if err != nil {
		return err
	}

	if extractDepth < 0 {
		return fmt.Errorf("%w: depth must be >= 0", domain.ErrInvalidInput)
	}
	include, err := domain.ParseKindSet(extractTypes)
	if err != nil {
		return err
	}
	outKind, err := resolveFormat()
	if err != nil {
		return err
	}

	ctx := context.Background()

	progress(cmd, "Extracting %s (depth %d, kinds %s)...", ref, extractDepth, include)

	var content *domain.ExtractedContent
	if extractDepth > 0 {
		content, err = extractService.ExtractWithRelated(ctx, ref, domain.Options{
			MaxDepth: extractDepth,
			Include:  include,
		})
	} else {
		content, err = extractService.Extract(ctx, ref)
	}
	if err != nil {
		return err
	}

	var rendered []byte
	if extractRaw {
		rendered, err = format.Raw(content)
	} else {
		rendered, err = format.Render(content, outKind)
	}
	if err != nil {
		return fmt.Errorf("render output: %w", err)
	}

	if extractOutput != "" {
		if err := os.WriteFile(extractOutput, rendered, 0644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		progress(cmd, "Output written to %s", extractOutput)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(rendered))
	return nil
}

// resolveFormat picks the output format: flag, then configured
// default, then JSON.
func resolveFormat() (format.Kind, error) {
	name := extractFormat
	if name == "" && configStore != nil {
		name = configStore.GetString(configfile.KeyDefaultFormat)
	}
	if name == "" {
		return format.KindJSON, nil
	}
	return format.ParseKind(name)
}

// progress prints a status line to stderr, but only when stderr is a
// terminal: redirected runs get clean output.
func progress(cmd *cobra.Command, msg string, args ...any) {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), msg+"\n", args...)
}
