package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/alexanderjulianmartinez/schemats/internal/config"
	"github.com/alexanderjulianmartinez/schemats/internal/emit"
	"github.com/alexanderjulianmartinez/schemats/internal/schema"
	"github.com/alexanderjulianmartinez/schemats/internal/source"
	_ "github.com/alexanderjulianmartinez/schemats/internal/source/all"
	"github.com/alexanderjulianmartinez/schemats/internal/typemap"
)

var errUsage = errors.New("schemats takes no arguments")

func main() {
	if err := run(context.Background(), os.Args, os.Getenv, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "schemats error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, getenv func(string) string, stdout, stderr io.Writer) error {
	if len(args) > 1 {
		switch args[1] {
		case "help", "--help", "-h":
			printUsage(stdout)
			return nil
		}
		printUsage(stderr)
		return errUsage
	}

	cfg, err := config.Load(getenv)
	if err != nil {
		var ce *source.ConnectionError
		if errors.As(err, &ce) {
			return err
		}
		return fmt.Errorf("config: %w", err)
	}

	logger := log.New(io.Discard, "schemats: ", 0)
	if cfg.Verbose {
		logger.SetOutput(stderr)
	}

	insp, err := source.Open(ctx, source.Config{URL: cfg.DatabaseURL, Schema: cfg.Schema})
	if err != nil {
		return err
	}
	defer func() {
		if err := insp.Close(); err != nil {
			logger.Printf("close %s: %v", insp.Name(), err)
		}
	}()
	logger.Printf("connected to %s", insp.Name())

	s, err := schema.Load(ctx, insp, schema.LoadOptions{
		Exclude:     cfg.Exclude,
		TypeCasing:  cfg.TypeCasing(),
		FieldCasing: cfg.FieldCasing(),
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	logger.Printf("loaded %d tables", len(s.Tables))

	out := emit.Emit(s, emit.Options{
		TypeCasing:  cfg.TypeCasing(),
		FieldCasing: cfg.FieldCasing(),
		NoExport:    !cfg.Export(),
		Mapper:      typemap.NewMapper(cfg.TypeOverrides),
	})
	if _, err := io.WriteString(stdout, out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `schemats - generate TypeScript interfaces from a database schema

Usage:
  DATABASE_URL=<url> schemats

Environment:
  DATABASE_URL     postgres://, mysql://, sqlserver://, sqlite:// URL or a *.yaml schema file
  SCHEMATS_CONFIG  optional YAML file with schema, exclude, output and typeOverrides settings

The generated interfaces are written to standard output.
`)
}
