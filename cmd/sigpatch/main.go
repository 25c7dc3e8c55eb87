// Command sigpatch applies byte-signature patches to a binary file.
//
// Usage:
//
//	sigpatch [flags] [target]
//
// Without -sigs the built-in signature set is used, and without a target
// argument the set's own target file is patched. The file is rewritten even
// if some signatures fail; a backup of the original is written only when
// every signature was applied.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/coregx/sigpatch"
	"github.com/coregx/sigpatch/internal/image"
	"github.com/coregx/sigpatch/search"
	"github.com/coregx/sigpatch/sigfile"
)

// Exit codes.
const (
	exitOK      = 0
	exitFatal   = 1
	exitPartial = 2
)

type options struct {
	sigs         string
	dryRun       bool
	check        bool
	backup       bool
	backupSuffix string
	pause        bool
	noPrefilter  bool
	noMmap       bool
	verbose      bool
	logFormat    string
	target       string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("sigpatch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	o := &options{}
	fs.StringVar(&o.sigs, "sigs", "", "read signatures from the given YAML file (built-in set if empty)")
	fs.BoolVar(&o.dryRun, "dry-run", false, "search and report, but do not write anything")
	fs.BoolVar(&o.check, "check", false, "report whether each signature is unpatched, patched or missing")
	fs.BoolVar(&o.backup, "backup", true, "back up the original file when every signature applied")
	fs.StringVar(&o.backupSuffix, "backup-suffix", ".bak", "suffix appended to the target name for the backup")
	fs.BoolVar(&o.pause, "pause", false, "wait for ENTER before exiting")
	fs.BoolVar(&o.noPrefilter, "no-prefilter", false, "disable the run prefilter (plain skip search)")
	fs.BoolVar(&o.noMmap, "no-mmap", false, "read the target into memory instead of mapping it")
	fs.BoolVar(&o.verbose, "v", false, "log debug details, including patched bytes")
	fs.StringVar(&o.logFormat, "log-format", "text", "log format: text or json")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags] [target]\n", fs.Name())
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 1 {
		return nil, fmt.Errorf("expected at most one target, got %d", fs.NArg())
	}
	o.target = fs.Arg(0)
	if o.logFormat != "text" && o.logFormat != "json" {
		return nil, fmt.Errorf("unknown log format %q", o.logFormat)
	}
	return o, nil
}

func newLogger(o *options, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	hopts := &slog.HandlerOptions{Level: level}
	if o.logFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, hopts))
	}
	return slog.New(slog.NewTextHandler(w, hopts))
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	o, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintln(stderr, "sigpatch:", err)
		return exitFatal
	}
	logger := newLogger(o, stderr)

	code := execute(o, logger)
	if o.pause {
		pressEnter(stdin, stdout)
	}
	return code
}

func execute(o *options, logger *slog.Logger) int {
	set := sigfile.Default()
	if o.sigs != "" {
		var err error
		if set, err = sigfile.Load(o.sigs); err != nil {
			logger.Error("cannot load signatures", "err", err)
			return exitFatal
		}
	}
	target := o.target
	if target == "" {
		target = set.Target
	}
	if target == "" {
		logger.Error("no target file given")
		return exitFatal
	}

	config := search.DefaultConfig()
	config.UsePrefilter = !o.noPrefilter

	img, err := image.Open(target, image.Options{NoMmap: o.noMmap})
	if err != nil {
		logger.Error("cannot read target", "err", err)
		return exitFatal
	}
	defer img.Close()
	logger.Info("file loaded", "path", target, "size", len(img.Data), "mapped", img.Mapped())

	sigs := set.Enabled()
	if o.check {
		return check(img.Data, sigs, config, logger)
	}

	buf := img.Data
	if o.dryRun {
		buf = append([]byte(nil), img.Data...)
	}
	report := apply(buf, sigs, config, logger)

	if o.dryRun {
		logger.Info("dry run, nothing written", "ok", report.OK())
		return exitCode(report)
	}

	if report.OK() && o.backup {
		bak, err := img.Backup(o.backupSuffix)
		if err != nil {
			logger.Error("cannot write backup", "err", err)
			return exitFatal
		}
		logger.Info("original backed up", "path", bak)
	}
	if err := img.Save(); err != nil {
		logger.Error("cannot write target", "err", err)
		return exitFatal
	}
	if report.OK() {
		logger.Info("patching complete", "path", target)
	} else {
		logger.Warn("file written with failed signatures", "failed", len(report.Failed()))
	}
	return exitCode(report)
}

// apply runs every signature over buf and logs each outcome.
func apply(buf []byte, sigs []sigpatch.Signature, config search.Config, logger *slog.Logger) sigpatch.Report {
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		for _, sig := range sigs {
			logPlan(buf, sig, config, logger)
		}
	}

	report := sigpatch.Run(buf, sigs, config)
	for i, res := range report.Results {
		if res.OK() {
			logger.Info("signature applied", "name", res.Name, "offset", hexOffset(res.Offset))
			continue
		}
		attrs := []any{"name", res.Name, "err", res.Err}
		if kind, ok := sigpatch.KindOf(res.Err); ok {
			attrs = append(attrs, "kind", kind.String())
			if kind == sigpatch.NotFound {
				attrs = append(attrs, alreadyPatched(buf, sigs[i], config)...)
			}
		}
		logger.Error("signature failed", attrs...)
	}
	return report
}

func logPlan(buf []byte, sig sigpatch.Signature, config search.Config, logger *slog.Logger) {
	p, err := sigpatch.CompileWithConfig(sig, config)
	if err != nil {
		return
	}
	ch, err := p.Plan(buf)
	if err != nil {
		return
	}
	logger.Debug("planned change", "name", sig.Name, "offset", hexOffset(ch.Offset),
		"before", fmt.Sprintf("% X", ch.Before), "after", fmt.Sprintf("% X", ch.After))
}

// alreadyPatched returns log attributes pointing at an earlier application
// of sig, if the patched form is present in buf.
func alreadyPatched(buf []byte, sig sigpatch.Signature, config search.Config) []any {
	p, err := sigpatch.CompileWithConfig(sig, config)
	if err != nil {
		return nil
	}
	if st, off := p.Status(buf); st == sigpatch.Patched {
		return []any{"already_patched_at", hexOffset(off)}
	}
	return nil
}

func check(buf []byte, sigs []sigpatch.Signature, config search.Config, logger *slog.Logger) int {
	code := exitOK
	for _, sig := range sigs {
		p, err := sigpatch.CompileWithConfig(sig, config)
		if err != nil {
			logger.Error("signature invalid", "name", sig.Name, "err", err)
			code = exitPartial
			continue
		}
		st, off := p.Status(buf)
		if st == sigpatch.Missing {
			logger.Warn("signature status", "name", sig.Name, "state", st.String())
			code = exitPartial
			continue
		}
		logger.Info("signature status", "name", sig.Name, "state", st.String(), "offset", hexOffset(off))
	}
	return code
}

func exitCode(r sigpatch.Report) int {
	if r.OK() {
		return exitOK
	}
	return exitPartial
}

func hexOffset(off int) string {
	return fmt.Sprintf("0x%X", off)
}

func pressEnter(stdin io.Reader, stdout io.Writer) {
	fmt.Fprint(stdout, "\nPress ENTER to continue...")
	_, _ = bufio.NewReader(stdin).ReadString('\n')
}
