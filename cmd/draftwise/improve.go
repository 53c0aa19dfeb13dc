package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/draftwise/draftwise/core"
	"github.com/draftwise/draftwise/enhance"
	"github.com/draftwise/draftwise/provider"
)

var improveCmd = &cobra.Command{
	Use:   "improve [file]",
	Short: "Rewrite a rough draft using your memory banks",
	Long: `improve sends your draft to the selected chat model along with the most
similar examples from your memory banks, and prints the polished script.
Reads the draft from the given file, or from stdin when no file (or "-")
is given.

The response streams to stderr as it arrives; the final script goes to
stdout or, with -o, to a file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		focusFlag, _ := cmd.Flags().GetString("focus")
		sourceFlag, _ := cmd.Flags().GetString("source")
		creators, _ := cmd.Flags().GetStringSlice("creators")
		modelFlag, _ := cmd.Flags().GetString("model")
		outPath, _ := cmd.Flags().GetString("output")
		quiet, _ := cmd.Flags().GetBool("quiet")

		focus, err := core.ParseFocusArea(focusFlag)
		if err != nil {
			return err
		}
		source, err := core.ParseInspirationSource(sourceFlag)
		if err != nil {
			return err
		}

		draft, err := readBody(args)
		if err != nil {
			return err
		}

		providers := buildProviders()
		model, err := resolveModel(modelFlag, providers)
		if err != nil {
			return err
		}

		embedder, cleanup, err := newEmbedder()
		if err != nil {
			return err
		}
		defer cleanup()

		lib, err := openLibrary(embedder)
		if err != nil {
			return err
		}
		defer lib.Close()

		opts := enhance.Options{
			Source:   source,
			Focus:    focus,
			Creators: creators,
			Model:    model.DisplayName,
		}
		if !quiet {
			fmt.Fprintf(os.Stderr, "Improving your script with %s (focus: %s)...\n\n",
				model.DisplayName, strings.ToLower(focus.Phrase()))
			opts.OnChunk = func(chunk string) { fmt.Fprint(os.Stderr, chunk) }
		}

		enhancer := enhance.New(lib, providers)
		result, err := enhancer.Improve(cmd.Context(), draft, opts)
		if err != nil {
			return err
		}
		if !quiet {
			fmt.Fprintln(os.Stderr)
		}

		if outPath != "" {
			if err := os.WriteFile(outPath, []byte(result.Text), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", outPath, err)
			}
			fmt.Fprintf(os.Stderr, "\nSaved improved script to %s (in=%d out=%d tokens)\n",
				outPath, result.Usage.InputTokens, result.Usage.OutputTokens)
			return nil
		}

		fmt.Println(result.Text)
		return nil
	},
}

func init() {
	improveCmd.Flags().String("focus", "", "focus area: "+strings.Join(core.FocusAreaNames(), ", "))
	improveCmd.Flags().String("source", "", "inspiration source: style, creators or both (default)")
	improveCmd.Flags().StringSlice("creators", nil, "restrict creator examples to these names")
	improveCmd.Flags().String("model", "", "model: "+strings.Join(provider.ModelNames(), ", "))
	improveCmd.Flags().StringP("output", "o", "", "write the improved script to a file")
	improveCmd.Flags().Bool("quiet", false, "suppress streaming output on stderr")

	rootCmd.AddCommand(improveCmd)
}
