package system

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/julianstephens/tempo/internal/cli"
	"github.com/julianstephens/tempo/internal/transfer"
)

type ExportCmd struct {
	File string `arg:"" help:"Output YAML file, or - for stdout." default:"-"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	doc, err := transfer.Build(ctx.Store, time.Now())
	if err != nil {
		return err
	}

	if c.File == "-" {
		return transfer.Write(os.Stdout, doc)
	}

	f, err := os.OpenFile(c.File, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := transfer.Write(f, doc); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	fmt.Printf("Exported %d context(s) and %d task(s) to %s\n", len(doc.Contexts), len(doc.Tasks), c.File)
	return nil
}

type ImportCmd struct {
	File       string `arg:"" help:"YAML file produced by export, or - for stdin."`
	Overwrite  bool   `help:"Replace records whose IDs already exist."`
	SkipConfig bool   `help:"Leave the stored time configuration untouched."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	var r io.Reader = os.Stdin
	if c.File != "-" {
		f, err := os.Open(c.File)
		if err != nil {
			return fmt.Errorf("failed to open import file: %w", err)
		}
		defer f.Close()
		r = f
	}

	doc, err := transfer.Read(r)
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	sum, err := transfer.Import(ctx.Store, doc, transfer.ImportOptions{
		Overwrite:             c.Overwrite,
		SkipTimeConfiguration: c.SkipConfig,
	}, time.Now())
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	fmt.Printf("Imported %s\n", sum)
	return nil
}
