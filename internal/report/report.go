// Package report renders archive progress and the final summary.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"

	"github.com/azuyamat/mia/internal/archiver"
	"github.com/azuyamat/mia/internal/filetype"
)

// Reporter writes human-readable output for an archive run. It implements
// archiver.Observer for verbose per-entry lines.
type Reporter struct {
	w        io.Writer
	renderer *lipgloss.Renderer
	styles   Styles
}

var _ archiver.Observer = (*Reporter)(nil)

// Option configures a Reporter.
type Option func(*Reporter)

// WithColor enables or disables styling. Color is otherwise detected from
// the writer.
func WithColor(enabled bool) Option {
	return func(r *Reporter) {
		if !enabled {
			r.renderer.SetColorProfile(termenv.Ascii)
		}
	}
}

// New creates a Reporter writing to w.
func New(w io.Writer, opts ...Option) *Reporter {
	r := &Reporter{
		w:        w,
		renderer: lipgloss.NewRenderer(w),
	}

	for _, opt := range opts {
		opt(r)
	}
	r.styles = NewStyles(r.renderer)

	return r
}

// Start prints the run header. Verbose jobs also list their include and
// exclude overrides.
func (r *Reporter) Start(job archiver.Job) {
	fmt.Fprintln(r.w, r.styles.Title.Render("Archiving "+job.Root))
	if !job.Verbose {
		return
	}
	r.field("Include", listOrNone(job.Include))
	r.field("Exclude", listOrNone(job.Exclude))
}

// OnDirectory prints a traversed directory.
func (r *Reporter) OnDirectory(relPath string) {
	fmt.Fprintf(r.w, "  %s %s\n", DirIndicator, r.styles.Dir.Render(relPath+"/"))
}

// OnFile prints an archived file with its language and size.
func (r *Reporter) OnFile(relPath string, lang filetype.Language, lines int, size int64) {
	detail := humanize.Bytes(uint64(size))
	if lang != filetype.Unclassified {
		detail = fmt.Sprintf("%s, %s lines, %s", lang, humanize.Comma(int64(lines)), detail)
	}
	fmt.Fprintf(r.w, "  %s %s %s\n", FileIndicator, relPath, r.styles.MutedText.Render("("+detail+")"))
}

// Summary prints the outcome of a run followed by the language table.
func (r *Reporter) Summary(s *archiver.Summary) {
	headline := fmt.Sprintf("%s Archived %s files (%s) in %dms",
		SuccessIndicator,
		humanize.Comma(int64(s.FilesWritten)),
		humanize.Bytes(uint64(s.BytesArchived)),
		s.Elapsed.Milliseconds())
	fmt.Fprintln(r.w, r.styles.SuccessText.Render(headline))

	r.field("Archive", fmt.Sprintf("%s (%s)", s.ArchivePath, humanize.Bytes(uint64(s.ArchiveSize))))
	if s.Checksum != "" {
		r.field("SHA-256", s.Checksum)
	}
	if s.Skipped > 0 {
		r.field("Skipped", strconv.Itoa(s.Skipped))
	}
	if s.OutputDirFellBack {
		fmt.Fprintln(r.w, r.styles.WarningText.Render(
			WarningIndicator+" Output directory unusable; archive written next to the source"))
	}

	if s.Tally.Classified() == 0 {
		return
	}
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, r.LanguageTable(s.Tally))
}

// LanguageTable renders the classified languages with line counts and their
// share of the classified total.
func (r *Reporter) LanguageTable(tally archiver.Tally) string {
	rows := tally.Sorted()

	data := make([][]string, 0, len(rows)+1)
	for _, row := range rows {
		data = append(data, []string{
			string(row.Language),
			humanize.Comma(int64(row.Lines)),
			fmt.Sprintf("%.1f%%", row.Percent),
		})
	}
	data = append(data, []string{"Total", humanize.Comma(int64(tally.Classified())), "100.0%"})
	footer := len(data) - 1

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.styles.TableBorder).
		Headers("Language", "Lines", "Share").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return r.styles.TableHeader
			case row == footer:
				return r.styles.TableFooter
			case col > 0:
				return r.styles.TableCell.Align(lipgloss.Right)
			default:
				return r.styles.TableCell
			}
		})

	return t.String()
}

func (r *Reporter) field(label, value string) {
	fmt.Fprintf(r.w, "  %s%s\n", r.styles.Label.Render(label+":"), r.styles.Value.Render(value))
}

func listOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}
