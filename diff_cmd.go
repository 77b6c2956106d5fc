package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"git.sr.ht/~spc/go-log"
	"github.com/briandowns/spinner"
	"github.com/urfave/cli/v2"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/capdb/capdiff/internal/baseline"
	"github.com/capdb/capdiff/internal/conf"
	"github.com/capdb/capdiff/internal/diff"
	"github.com/capdb/capdiff/internal/document"
	"github.com/capdb/capdiff/internal/l10n"
	"github.com/capdb/capdiff/internal/report"
)

// Exit codes of the diff command. Finding differences is not a failure.
const (
	exitInputError    = 1
	exitBaselineError = 2
)

// InputError reports that a document to compare could not be read.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("cannot read %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// diffOptions carries everything a comparison run needs.
type diffOptions struct {
	Left        string
	Right       string
	ResourceDir string
	CacheDir    string
	Sort        bool
	// Busy is called while a baseline is generated; the returned function
	// is called when generation ends. May be nil.
	Busy func(msg string) (done func())
}

// diffAction is the entry point of the diff command.
func diffAction(c *cli.Context) error {
	if c.NArg() < 1 || c.NArg() > 2 {
		return cli.Exit(l10n.T("usage: %s", c.Command.UsageText), 1)
	}

	opts := diffOptions{
		Left:        c.Args().Get(0),
		Right:       c.Args().Get(1),
		ResourceDir: c.String("resources"),
		CacheDir:    c.String("cache-dir"),
		Sort:        !c.Bool("no-sort"),
	}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		opts.Busy = startSpinner
	}

	sink := outputSink(c.App.Writer, conf.Configuration.MirrorJournal)

	err := runDiff(opts, sink)
	var inputErr *InputError
	var genErr *baseline.GenerationError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &inputErr):
		return cli.Exit(err, exitInputError)
	case errors.As(err, &genErr):
		return cli.Exit(err, exitBaselineError)
	default:
		return cli.Exit(err, 1)
	}
}

// runDiff loads both documents, compares them and renders the report to
// sink, finishing with the completion marker. Nothing is emitted when either
// document cannot be obtained.
func runDiff(opts diffOptions, sink report.Sink) error {
	var loadOpts []document.LoadOption
	if opts.Sort {
		loadOpts = append(loadOpts, document.WithSort())
	}

	left, err := loadInput(opts.Left, loadOpts)
	if err != nil {
		return err
	}

	rightPath := opts.Right
	if rightPath == "" || !exists(rightPath) {
		log.Infof("right file not set or invalid - creating right file from resources in %s", opts.ResourceDir)
		rightPath, err = synthesize(opts)
		if err != nil {
			return err
		}
		log.Debugf("baseline written to %s", rightPath)
	}

	right, err := loadInput(rightPath, loadOpts)
	if err != nil {
		return err
	}

	log.Debugf("comparing %s (%d sections) with %s (%d sections)", opts.Left, left.Len(), rightPath, right.Len())
	r := diff.Compare(left, right)
	report.Render(sink, r)
	sink.Emit(l10n.T("Diff done."))

	return nil
}

func loadInput(path string, opts []document.LoadOption) (*document.Map, error) {
	if err := unix.Access(path, unix.R_OK); err != nil {
		return nil, &InputError{Path: path, Err: err}
	}
	doc, err := document.Load(path, opts...)
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}
	return doc, nil
}

func synthesize(opts diffOptions) (string, error) {
	if opts.Busy != nil {
		done := opts.Busy(l10n.T("Generating baseline..."))
		defer done()
	}

	s := &baseline.Synthesizer{
		ResourceDir: opts.ResourceDir,
		CacheRoot:   opts.CacheDir,
	}
	return s.Synthesize()
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func startSpinner(msg string) func() {
	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + msg
	s.Start()
	return s.Stop
}
