package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kerrian/replymd/internal/config"
	"github.com/kerrian/replymd/internal/render"
	"github.com/kerrian/replymd/internal/snippets"
	"github.com/kerrian/replymd/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "0.2.1"

var rootCmd = &cobra.Command{
	Use:   "replymd [file]",
	Short: "Render markdown replies in the terminal",
	Long: `Terminal renderer for markdown-formatted text, built for AI chat replies.

Reads a file (or stdin), renders headers, lists, emphasis and fenced
code blocks with syntax highlighting, and prints the result. With
--pager the document opens in an interactive scrollable view; --watch
re-renders whenever the source file changes.

Malformed markdown never fails: unrecognized syntax renders literally.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

var snippetsCmd = &cobra.Command{
	Use:   "snippets [file]",
	Short: "Extract fenced code blocks from a document",
	Long: `Extracts every fenced code block from the document, in order.

By default all blocks are printed. Use --index to pick one (1-based),
--lang to keep only blocks with a matching fence language, and --copy
to send the result to the clipboard instead of stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSnippets,
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available code highlighting themes",
	Args:  cobra.NoArgs,
	RunE:  runThemes,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(snippetsCmd)
	rootCmd.AddCommand(themesCmd)

	rootCmd.PersistentFlags().IntP("width", "w", 0, "Render width (default from config)")
	rootCmd.PersistentFlags().StringP("theme", "t", "", "Code highlighting theme")
	rootCmd.Flags().Bool("wrap", true, "Word-wrap paragraphs")
	rootCmd.Flags().Bool("plain", false, "Disable colors and highlighting")
	rootCmd.Flags().BoolP("pager", "p", false, "Open in the interactive pager")
	rootCmd.Flags().Bool("watch", false, "Reload on file change (implies --pager)")

	snippetsCmd.Flags().IntP("index", "i", 0, "Pick a single code block (1-based)")
	snippetsCmd.Flags().StringP("lang", "l", "", "Keep only blocks with this fence language")
	snippetsCmd.Flags().BoolP("copy", "c", false, "Copy to clipboard instead of printing")

	viper.BindPFlag("pager", rootCmd.Flags().Lookup("pager"))
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
	}
}

// readDocument loads the document from the file argument or stdin.
// Returns the text and the source path ("" for stdin).
func readDocument(args []string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), "", nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), args[0], nil
}

// applyFlagOverrides copies explicitly set flags into the runtime config
func applyFlagOverrides(cmd *cobra.Command) {
	if cmd.Flags().Changed("width") {
		if w, _ := cmd.Flags().GetInt("width"); w > 0 {
			config.SetWidth(w)
		}
	}
	if cmd.Flags().Changed("theme") {
		if theme, _ := cmd.Flags().GetString("theme"); theme != "" {
			config.SetTheme(theme)
		}
	}
	if cmd.Flags().Changed("wrap") {
		wrap, _ := cmd.Flags().GetBool("wrap")
		config.SetWrap(wrap)
	}
}

func runRender(cmd *cobra.Command, args []string) error {
	doc, path, err := readDocument(args)
	if err != nil {
		return err
	}

	applyFlagOverrides(cmd)

	plain, _ := cmd.Flags().GetBool("plain")
	watch, _ := cmd.Flags().GetBool("watch")
	pager := config.GetPager() || watch

	if watch && path == "" {
		return fmt.Errorf("--watch requires a file argument")
	}

	if pager {
		return ui.Run(doc, path, plain, watch)
	}

	render.RefreshStyles()
	fmt.Println(render.New().WithPlain(plain).Document(doc))
	return nil
}

func runSnippets(cmd *cobra.Command, args []string) error {
	doc, path, err := readDocument(args)
	if err != nil {
		return err
	}

	lang, _ := cmd.Flags().GetString("lang")
	index, _ := cmd.Flags().GetInt("index")
	copyMode, _ := cmd.Flags().GetBool("copy")

	snips := snippets.FilterLang(snippets.Extract(doc), lang)
	if len(snips) == 0 {
		source := path
		if source == "" {
			source = "stdin"
		}
		return fmt.Errorf("no code blocks found in %s", source)
	}

	mode := snippets.OutputPrint
	if copyMode {
		mode = snippets.OutputCopy
	}
	writer := snippets.NewWriter()

	if index > 0 {
		if index > len(snips) {
			return fmt.Errorf("snippet index %d out of range: %d found", index, len(snips))
		}
		return writer.Output(snips[index-1], mode)
	}

	if copyMode {
		// Copy everything as one clipboard entry rather than clobbering
		// the clipboard once per block
		var codes []string
		for _, s := range snips {
			codes = append(codes, s.Code)
		}
		return writer.Output(snippets.Snippet{Code: strings.Join(codes, "\n\n")}, mode)
	}

	for i, s := range snips {
		if i > 0 {
			fmt.Println()
		}
		if err := writer.Output(s, mode); err != nil {
			return err
		}
	}
	return nil
}

func runThemes(cmd *cobra.Command, args []string) error {
	for _, name := range render.ThemeNames() {
		fmt.Println(name)
	}
	return nil
}

func main() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
