package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/oxgen/pyexpr/cli"
	"github.com/oxgen/pyexpr/expr"
	"github.com/oxgen/pyexpr/internal/document"
	"github.com/oxgen/pyexpr/internal/telemetry"
	log "github.com/sirupsen/logrus"
	godiffpatch "github.com/sourcegraph/go-diff-patch"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	defaultOutputFile = ""
	defaultDiffFile   = ""
	defaultFold       = false
	defaultIndent     = 0
)

var (
	renderOut    string
	renderDiff   string
	renderFold   bool
	renderIndent int
)

var renderCmd = &cobra.Command{
	Use:   "render FILE...",
	Short: "render expression documents",
	Long:  "render every expression of the given documents as Python source, one \"name = source\" line per expression",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("fold") {
			conf.Fold = renderFold
		}
		if cmd.Flags().Changed("indent") {
			conf.Indent = renderIndent
		}
		if err := conf.Validate(); err != nil {
			return err
		}

		agent, err := startTelemetry()
		if err != nil {
			return err
		}
		defer agent.Shutdown(shutdownTimeout)

		txn := agent.StartTransaction("render")
		defer txn.End()

		out, err := Render(cmd.Context(), conf, txn, args)
		if err != nil {
			txn.NoticeError(err)
			return err
		}
		return writeOutput(cmd.OutOrStdout(), out, renderOut, renderDiff)
	},
}

// Render renders the documents at paths concurrently and returns the output
// in input order. When there is more than one document, each one is preceded
// by a comment line naming it. Every failing document is reported.
func Render(ctx context.Context, conf *cli.Config, txn *newrelic.Transaction, paths []string) (string, error) {
	results := make([][]string, len(paths))
	errs := make([]error, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(conf.Workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}

			gtxn := txn.NewGoroutine()
			defer gtxn.StartSegment("render " + filepath.Base(path)).End()

			doc, err := document.Load(path)
			if err != nil {
				errs[i] = err
				telemetry.RecordDocument(gtxn, path, 0, err)
				return nil
			}

			lines, err := doc.Render(expr.NewPrintContext(conf.Indent, conf.Indentation), conf.Fold)
			telemetry.RecordDocument(gtxn, path, len(doc.Entries), err)
			if err != nil {
				errs[i] = err
				return nil
			}
			results[i] = lines

			log.WithFields(log.Fields{"path": path, "entries": len(lines)}).Debug("pyexpr::cmd::Render; rendered document")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}
	if err := errors.Join(errs...); err != nil {
		return "", err
	}

	b := strings.Builder{}
	for i, lines := range results {
		if len(paths) > 1 {
			if i > 0 {
				b.WriteByte('\n')
			}
			fmt.Fprintf(&b, "# %s\n", paths[i])
		}
		for _, line := range lines {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}

// writeOutput writes content to outPath, or to w when outPath is empty. If
// diffPath is set, a patch from the previous content of outPath to content
// is written there first.
func writeOutput(w io.Writer, content, outPath, diffPath string) error {
	if diffPath != "" {
		previous := ""
		name := "stdout"
		if outPath != "" {
			name = filepath.Base(outPath)
			data, err := os.ReadFile(outPath)
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("error reading previous output %s: %w", outPath, err)
			}
			previous = string(data)
		}

		patch := godiffpatch.GeneratePatch(name, previous, content)
		if err := os.WriteFile(diffPath, []byte(patch), 0o644); err != nil {
			return fmt.Errorf("error writing diff %s: %w", diffPath, err)
		}
		log.WithFields(log.Fields{"path": diffPath}).Info("pyexpr::cmd::writeOutput; changes written to diff file")
	}

	if outPath == "" {
		_, err := io.WriteString(w, content)
		return err
	}
	if err := os.WriteFile(outPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("error writing output %s: %w", outPath, err)
	}
	log.WithFields(log.Fields{"path": outPath}).Info("pyexpr::cmd::writeOutput; output written")
	return nil
}

func init() {
	renderCmd.Flags().StringVar(&renderOut, "out", defaultOutputFile, "write the output to a file instead of stdout")
	renderCmd.Flags().StringVar(&renderDiff, "diff", defaultDiffFile, "write a patch from the previous output file to the new output")
	renderCmd.Flags().BoolVar(&renderFold, "fold", defaultFold, "fold constant sub-expressions before rendering")
	renderCmd.Flags().IntVar(&renderIndent, "indent", defaultIndent, "indentation level of every rendered line")
	cobra.MarkFlagFilename(renderCmd.Flags(), "diff", "diff", "patch") // for file completion

	rootCmd.AddCommand(renderCmd)
}
