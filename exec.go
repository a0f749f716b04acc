package svgslice

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/esimov/svgslice/utils"
)

var (
	// ErrPipeTerminal is returned when stdin is requested as source but is attached to a terminal.
	ErrPipeTerminal = errors.New("`-` should be used with a pipe for stdin")
	// ErrUnsafeOutput is returned when cleaning would remove the working or root directory.
	ErrUnsafeOutput = errors.New("refusing to clean the output directory")
)

// Ops holds the options of a command line run.
type Ops struct {
	Src, Dst, PipeName string
	// Clean removes an existing output directory before extracting.
	Clean bool

	// Stdin, Stdout and Stderr default to the process streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Execute runs the extraction for the command line: it reads the source,
// cleans the output directory, reports the sheet layout and the progress
// of every icon, and prints the execution time.
func (s *Slicer) Execute(op *Ops) error {
	stdout, stderr := op.Stdout, op.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	tty := isTerminal(stderr)
	// stdout and stderr may be redirected independently.
	decorate, status := utils.Decorator(isTerminal(stdout)), utils.Decorator(tty)

	if err := s.validate(); err != nil {
		return err
	}

	fromPipe := op.PipeName != "" && op.Src == op.PipeName
	if !fromPipe {
		if _, err := os.Stat(op.Src); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				fmt.Fprintf(stdout, "%s %s not found!\n", decorate("❌ Error:", utils.ErrorMessage), op.Src)
				fmt.Fprintln(stdout, "Please run this command from the directory containing the sprite sheet")
				return fmt.Errorf("%w: %s", ErrSourceNotFound, op.Src)
			}
			return fmt.Errorf("failed to load the source file: %w", err)
		}
	}

	now := time.Now()

	var spinner *utils.Spinner
	if tty {
		spinner = utils.NewSpinner(stderr, fmt.Sprintf("%s %s",
			status("✂ SVGSLICE", utils.StatusMessage),
			status("⇢ reading the sprite sheet...", utils.DefaultMessage),
		), 80*time.Millisecond, true)
		spinner.Start()
	}
	doc, err := op.readSource()
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	// The sheet is decoded first, so a failed read never removes anything.
	if op.Clean {
		keep := op.Src
		if fromPipe {
			keep = ""
		}
		if err := cleanDir(op.Dst, keep); err != nil {
			return err
		}
	}

	grid, err := NewGrid(doc.ViewBox, s.Columns, s.Rows)
	if err != nil {
		return err
	}
	w, h := grid.CellSize()

	fmt.Fprintln(stdout, decorate("📊 SVG Analysis:", utils.StatusMessage))
	fmt.Fprintf(stdout, "   Total size: %s x %s\n", utils.FormatFloat(doc.ViewBox.W), utils.FormatFloat(doc.ViewBox.H))
	fmt.Fprintf(stdout, "   Grid: %d columns x %d rows = %d icons\n", grid.Columns, grid.Rows, grid.Len())
	fmt.Fprintf(stdout, "   Icon size: %s x %s\n", utils.FormatFloat(w), utils.FormatFloat(h))
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "🎨 Found %d path elements\n", len(doc.Paths))
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "✂️  Extracting icons...")

	run := *s
	run.Progress = func(ic *Icon) {
		fmt.Fprintf(stdout, "   %s %s (%d paths)\n", decorate("✓", utils.SuccessMessage), ic.Name(), len(ic.Paths))
		if s.Progress != nil {
			s.Progress(ic)
		}
	}
	res, err := run.ExtractDocument(doc, op.Dst)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "%s Successfully extracted %d icons to '%s/' directory!\n",
		decorate("✅", utils.SuccessMessage), len(res.Files), filepath.Clean(op.Dst))
	fmt.Fprintln(stdout, "📁 You can now use these individual icon files in your project!")
	if len(res.Previews) > 0 {
		fmt.Fprintf(stdout, "🖼  Rendered %d previews and %s\n", len(res.Previews)-1, ContactSheetName)
	}
	fmt.Fprintf(stderr, "\nExecution time: %s\n", status(utils.FormatTime(time.Since(now)), utils.SuccessMessage))

	return nil
}

// readSource decodes the sprite sheet from a file or from the stdin pipe.
func (op *Ops) readSource() (*Document, error) {
	if op.PipeName == "" || op.Src != op.PipeName {
		return ReadDocument(op.Src)
	}
	if op.Stdin != nil {
		return Decode(op.Stdin)
	}
	if utils.IsTerminal(os.Stdin) {
		return nil, ErrPipeTerminal
	}
	return Decode(os.Stdin)
}

// cleanDir removes the output directory left by a previous run.
// It refuses to remove a directory holding keep, the source sheet.
func cleanDir(dir, keep string) error {
	clean := filepath.Clean(dir)
	switch clean {
	case ".", "..", string(filepath.Separator), filepath.VolumeName(clean) + string(filepath.Separator):
		return fmt.Errorf("%w: %q", ErrUnsafeOutput, dir)
	}
	if keep != "" {
		inside, err := within(clean, keep)
		if err != nil {
			return err
		}
		if inside {
			return fmt.Errorf("%w: %q contains the source %q", ErrUnsafeOutput, dir, keep)
		}
	}
	if _, err := os.Stat(clean); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(clean); err != nil {
		return fmt.Errorf("unable to remove the output directory: %w", err)
	}
	return nil
}

// within reports whether path is dir itself or lies below it.
func within(dir, path string) (bool, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false, err
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, err
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false, nil
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && utils.IsTerminal(f)
}
