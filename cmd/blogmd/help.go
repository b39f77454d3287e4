package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: blogmd <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render markdown to HTML or PDF")
	fmt.Fprintln(w, "  article    List, show, create, edit and delete articles")
	fmt.Fprintln(w, "  category   List, create and delete categories")
	fmt.Fprintln(w, "  draft      List, save, publish and delete drafts")
	fmt.Fprintln(w, "  stats      Show blog totals")
	fmt.Fprintln(w, "  export     Export articles to HTML and/or PDF")
	fmt.Fprintln(w, "  themes     List themes, engines and highlight styles")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'blogmd help <command>' for details on a specific command.")
}

// runHelp prints the usage of a command, or the main usage.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}
	usages := map[string]func(io.Writer){
		"render":   printRenderUsage,
		"article":  printArticleUsage,
		"category": printCategoryUsage,
		"draft":    printDraftUsage,
		"stats":    printStatsUsage,
		"export":   printExportUsage,
		"themes":   printThemesUsage,
	}
	usage, ok := usages[args[0]]
	if !ok {
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
	}
	usage(env.Stdout)
	return nil
}

func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --store <path>        Article store file")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w, "  -h, --help                Show this help")
}

func printConverterFlags(w io.Writer) {
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --theme <name>        Theme name, CSS file, or \"custom\"")
	fmt.Fprintln(w, "      --css <path>          Extra CSS applied after the theme")
	fmt.Fprintln(w, "      --engine <name>       Markdown engine: lite, commonmark")
	fmt.Fprintln(w, "      --highlight <style>   Code highlight style (commonmark)")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom styles/templates directory")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (e.g., 30s, 2m)")
}

func printPageFlags(w io.Writer) {
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0.25-3.0)")
}

func printArticleFields(w io.Writer) {
	fmt.Fprintln(w, "Fields:")
	fmt.Fprintln(w, "      --title <s>           Title")
	fmt.Fprintln(w, "      --excerpt <s>         Summary (\"\" = first words of the content)")
	fmt.Fprintln(w, "      --author <s>          Author (default: article.defaultAuthor)")
	fmt.Fprintln(w, "      --date <s>            YYYY-MM-DD, or \"today\"")
	fmt.Fprintln(w, "      --category <s>        Category name or ID")
	fmt.Fprintln(w, "      --read-time <s>       e.g. \"5 min\" (\"\" = estimated)")
	fmt.Fprintln(w, "  -f, --file <path>         Markdown content (- for stdin)")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: blogmd render [file|-] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render markdown to an HTML fragment, a themed page, or a PDF.")
	fmt.Fprintln(w, "Reads stdin when no file is given.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default: stdout)")
	fmt.Fprintln(w, "      --page                Wrap the fragment in a themed page")
	fmt.Fprintln(w, "      --pdf                 Write a PDF (requires -o)")
	fmt.Fprintln(w)
	printConverterFlags(w)
	fmt.Fprintln(w)
	printPageFlags(w)
	fmt.Fprintln(w)
	printCommonFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  blogmd render post.md")
	fmt.Fprintln(w, "  echo '# Hi' | blogmd render")
	fmt.Fprintln(w, "  blogmd render post.md --page --theme dark -o post.html")
	fmt.Fprintln(w, "  blogmd render post.md --pdf -p a4 -o post.pdf")
}

// printArticleUsage prints usage for the article commands.
func printArticleUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: blogmd article <list|show|create|edit|delete> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Subcommands:")
	fmt.Fprintln(w, "  list                      List articles")
	fmt.Fprintln(w, "  show <id>                 Show an article")
	fmt.Fprintln(w, "  create                    Create an article from flags")
	fmt.Fprintln(w, "  edit <id>                 Change the fields given as flags")
	fmt.Fprintln(w, "  delete <id>               Delete an article")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "IDs may be abbreviated to a unique prefix of 4 or more characters.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List:")
	fmt.Fprintln(w, "  -s, --search <s>          Search titles and excerpts")
	fmt.Fprintln(w, "      --category <name>     Only this category")
	fmt.Fprintln(w, "      --sort <s>            date-newest, date-oldest, name-asc, name-desc")
	fmt.Fprintln(w, "      --json                Print JSON (list, show)")
	fmt.Fprintln(w)
	printArticleFields(w)
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printCategoryUsage prints usage for the category commands.
func printCategoryUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: blogmd category <list|create|delete> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Subcommands:")
	fmt.Fprintln(w, "  list                      List categories and article counts")
	fmt.Fprintln(w, "  create <name>             Create a category")
	fmt.Fprintln(w, "  delete <name|id>          Delete an unused category")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Create:")
	fmt.Fprintln(w, "      --description <s>     Description")
	fmt.Fprintln(w, "      --color <s>           Palette name or #rrggbb (default: Blue)")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printDraftUsage prints usage for the draft commands.
func printDraftUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: blogmd draft <list|save|publish|delete> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Subcommands:")
	fmt.Fprintln(w, "  list                      List drafts")
	fmt.Fprintln(w, "  save                      Create a draft, or update one with --id")
	fmt.Fprintln(w, "  publish <id>              Publish a draft as an article")
	fmt.Fprintln(w, "  delete <id>               Delete a draft")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Save:")
	fmt.Fprintln(w, "      --id <id>             Draft to update")
	fmt.Fprintln(w)
	printArticleFields(w)
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printStatsUsage prints usage for the stats command.
func printStatsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: blogmd stats [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Show article, category, read time and draft totals.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --json                Print JSON")
	printCommonFlags(w)
}

// printExportUsage prints usage for the export command.
func printExportUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: blogmd export [id...] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export articles (all when no ID is given) to themed HTML pages and/or PDFs.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: output.defaultDir or .)")
	fmt.Fprintln(w, "      --format <s>          html, pdf, both (default: html)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	printConverterFlags(w)
	fmt.Fprintln(w)
	printPageFlags(w)
	fmt.Fprintln(w)
	printCommonFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  BLOGMD_CONFIG, BLOGMD_STORE, BLOGMD_THEME, BLOGMD_TIMEOUT, BLOGMD_OUTPUT_DIR,")
	fmt.Fprintln(w, "  BLOGMD_FORMAT, BLOGMD_AUTHOR, BLOGMD_ENGINE, BLOGMD_ASSET_PATH,")
	fmt.Fprintln(w, "  BLOGMD_PAGE_SIZE, BLOGMD_DATE_FORMAT, BLOGMD_LANG, BLOGMD_WORKERS")
}

// printThemesUsage prints usage for the themes command.
func printThemesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: blogmd themes [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List themes and engines.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --css <name>          Print the CSS of a theme")
	fmt.Fprintln(w, "      --styles              List code highlight styles")
	fmt.Fprintln(w, "      --highlight <style>   Print the CSS of a highlight style")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom styles directory")
	fmt.Fprintln(w)
	printCommonFlags(w)
}
