package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oxgen/pyexpr/cli"
	"github.com/oxgen/pyexpr/expr"
	"github.com/oxgen/pyexpr/internal/codegen"
	"github.com/oxgen/pyexpr/internal/comment"
	"github.com/oxgen/pyexpr/internal/document"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	defaultGoOutputFile = ""
)

var (
	gogenPackage string
	gogenOut     string
)

var gogenCmd = &cobra.Command{
	Use:   "gogen FILE",
	Short: "generate Go code building the expressions of a document",
	Long:  "generate a Go file declaring one variable per expression of a document, built with the expr package",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("package") {
			conf.Package = strings.TrimSpace(gogenPackage)
		}
		if err := conf.Validate(); err != nil {
			return err
		}

		if debug {
			wd, _ := os.Getwd()
			comment.EnableConsolePrinter(wd)
			defer comment.WriteAll()
		}

		agent, err := startTelemetry()
		if err != nil {
			return err
		}
		defer agent.Shutdown(shutdownTimeout)

		txn := agent.StartTransaction("gogen")
		defer txn.End()

		out, err := Generate(conf, args[0], gogenOut)
		if err != nil {
			txn.NoticeError(err)
			return err
		}

		if gogenOut == "" {
			_, err = cmd.OutOrStdout().Write(out)
			return err
		}
		if err := os.WriteFile(gogenOut, out, 0o644); err != nil {
			return fmt.Errorf("error writing %s: %w", gogenOut, err)
		}
		log.WithFields(log.Fields{"path": gogenOut}).Info("pyexpr::cmd::gogen; generated file written")
		return nil
	},
}

// Generate returns the Go source declaring the expressions of the document
// at path. The output name is only used in errors.
func Generate(conf *cli.Config, path, outName string) ([]byte, error) {
	doc, err := document.Load(path)
	if err != nil {
		return nil, err
	}

	vars := make([]codegen.Var, 0, len(doc.Entries))
	for _, entry := range doc.Entries {
		e := entry.Expr
		if conf.Fold {
			if e, err = expr.Simplify(e); err != nil {
				return nil, fmt.Errorf("%s: entry %q: %w", path, entry.Name, err)
			}
		}
		vars = append(vars, codegen.Var{
			Name:     entry.Name,
			Expr:     e,
			Position: comment.Position(path, entry.Line, 0),
		})
	}

	file, err := codegen.File(conf.Package, vars)
	if err != nil {
		return nil, err
	}
	if outName == "" {
		outName = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".go"
	}
	return codegen.Print(outName, file)
}

func init() {
	gogenCmd.Flags().StringVar(&gogenPackage, "package", "", "package name of the generated file")
	gogenCmd.Flags().StringVar(&gogenOut, "out", defaultGoOutputFile, "write the generated file instead of printing it")
	cobra.MarkFlagFilename(gogenCmd.Flags(), "out", "go") // for file completion

	rootCmd.AddCommand(gogenCmd)
}
