package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marcus/disclosure-assistant/internal/genclient"
	"github.com/marcus/disclosure-assistant/internal/observability"
	"github.com/marcus/disclosure-assistant/internal/orchestrator"
	"github.com/marcus/disclosure-assistant/internal/session"
	"github.com/marcus/disclosure-assistant/internal/types"
	"github.com/marcus/disclosure-assistant/internal/wizard"
)

var (
	runServer      string
	runFormPath    string
	runTool        string
	runUserAgent   string
	runRegenerate  string
	runRegenLetter bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the generation lifecycle against a server",
	Long: `Load a wizard form from a JSON file, run the generation flow (with its
silent retry and persistence), then load and print the results. Useful for
exercising the full lifecycle without a browser.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runServer, "server", "http://localhost:8080", "Generation API base URL")
	runCmd.Flags().StringVar(&runFormPath, "form", "", "Path to a wizard form JSON file (required)")
	runCmd.Flags().StringVar(&runTool, "tool", string(types.ToolBoth), "Tool selection: narrative, responseLetter or both")
	runCmd.Flags().StringVar(&runUserAgent, "user-agent", "", "User agent used to pick the request timeout")
	runCmd.Flags().StringVar(&runRegenerate, "regenerate-narrative", "", "After generation, regenerate one narrative type")
	runCmd.Flags().BoolVar(&runRegenLetter, "regenerate-letter", false, "After generation, regenerate the letter")
	_ = runCmd.MarkFlagRequired("form")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	tool := types.ToolType(runTool)
	if !tool.Valid() {
		return fmt.Errorf("invalid tool %q", runTool)
	}

	data, err := os.ReadFile(runFormPath)
	if err != nil {
		return fmt.Errorf("failed to read form file: %w", err)
	}
	form := types.NewFormState()
	if err := json.Unmarshal(data, &form); err != nil {
		return fmt.Errorf("failed to parse form file: %w", err)
	}
	if err := form.Validate(); err != nil {
		return fmt.Errorf("invalid form: %w", err)
	}

	store := session.NewStore(session.NewMemoryBackend())
	forms := wizard.NewFormStore(store)
	results := wizard.NewResultStore(store)
	counts := wizard.NewCountStore(store)

	if err := forms.Save(tool, form); err != nil {
		// Storage failures are never fatal; continue without persistence.
		fmt.Fprintf(os.Stderr, "Warning: form persistence failed: %v\n", err)
	}

	client := genclient.New(runServer)
	timeout := genclient.TimeoutFor(runUserAgent)
	ctx := context.Background()

	gen := orchestrator.NewGeneration(client, forms, results, timeout)
	outcome := gen.Run(ctx)
	switch outcome.Outcome {
	case orchestrator.OutcomeRedirectForm:
		return fmt.Errorf("no form data available")
	case orchestrator.OutcomeError:
		return fmt.Errorf("generation failed (%s): %s", outcome.Kind, outcome.Message)
	}

	loader := orchestrator.NewResultsLoader(results, counts)
	loaded, ok := loader.Load()
	if !ok {
		return fmt.Errorf("generated results could not be loaded")
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	fmt.Fprintf(cmd.OutOrStdout(), "Session %s, default tab: %s\n\n", loaded.Results.SessionID, loaded.ActiveTab)
	printer.PrintResult(&loaded.Results.Result)

	if runRegenerate == "" && !runRegenLetter {
		return nil
	}

	regen := orchestrator.NewRegeneration(client, forms, results, counts, loaded, timeout)
	if runRegenerate != "" {
		typ := types.NarrativeType(runRegenerate)
		if !typ.Valid() {
			return fmt.Errorf("invalid narrative type %q", runRegenerate)
		}
		if !wizard.CanRegenerateNarrative(loaded.Counts, typ) {
			return fmt.Errorf("regeneration limit reached for %s", typ)
		}
		if err := regen.RegenerateNarrative(ctx, typ); err != nil {
			return fmt.Errorf("regeneration failed: %w", err)
		}
	}
	if runRegenLetter {
		if !wizard.CanRegenerateLetter(loaded.Counts) {
			return fmt.Errorf("regeneration limit reached for the letter")
		}
		if err := regen.RegenerateLetter(ctx); err != nil {
			return fmt.Errorf("letter regeneration failed: %w", err)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), "After regeneration:")
	printer.PrintResult(regen.Result())
	return nil
}
