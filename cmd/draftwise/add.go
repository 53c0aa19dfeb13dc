package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var addStyleCmd = &cobra.Command{
	Use:   "add-style [file]",
	Short: "Store one of your own scripts in the style bank",
	Long: `add-style stores an example of your successful content so future
improvements can match your voice. Reads the script from the given file,
or from stdin when no file (or "-") is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		notes, _ := cmd.Flags().GetString("notes")

		body, err := readBody(args)
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

		entry, err := lib.AddStyle(cmd.Context(), title, body, notes)
		if err != nil {
			return err
		}
		fmt.Printf("Saved style example %q (%s)\n", entry.Title, entry.ID)
		return nil
	},
}

var addCreatorCmd = &cobra.Command{
	Use:   "add-creator [file]",
	Short: "Store a clip from a creator you admire",
	Long: `add-creator stores a script or transcript from another creator so its
techniques can inspire your rewrites. Reads the content from the given
file, or from stdin when no file (or "-") is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		creator, _ := cmd.Flags().GetString("creator")
		title, _ := cmd.Flags().GetString("title")
		notes, _ := cmd.Flags().GetString("notes")

		body, err := readBody(args)
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

		entry, err := lib.AddCreator(cmd.Context(), creator, title, body, notes)
		if err != nil {
			return err
		}
		fmt.Printf("Saved content from %s: %q (%s)\n", entry.Creator, entry.Title, entry.ID)
		return nil
	},
}

func init() {
	addStyleCmd.Flags().String("title", "", "content title or topic (required)")
	addStyleCmd.Flags().String("notes", "", "style notes, e.g. \"casual tone, uses humor\"")
	addStyleCmd.MarkFlagRequired("title")

	addCreatorCmd.Flags().String("creator", "", "creator name (required)")
	addCreatorCmd.Flags().String("title", "", "video or content title (required)")
	addCreatorCmd.Flags().String("notes", "", "what you like about this content")
	addCreatorCmd.MarkFlagRequired("creator")
	addCreatorCmd.MarkFlagRequired("title")

	rootCmd.AddCommand(addStyleCmd)
	rootCmd.AddCommand(addCreatorCmd)
}
