package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/dot5enko/copper/adapters/gotaframe"
	"github.com/dot5enko/copper/dataset"
	"github.com/dot5enko/copper/filter"
	"github.com/dot5enko/copper/schema"
	"github.com/dot5enko/copper/store"
	"github.com/fatih/color"
)

// refreshFailures prints the cells that held no number. Those only warn;
// any other refresh error is returned.
func refreshFailures(report *dataset.Report, err error) error {

	if err == nil {
		return nil
	}

	if !errors.Is(err, schema.ErrNoNumericToken) {
		return err
	}

	for _, failure := range report.Failures {
		color.Red(" %v: rows %v hold no number", failure.Label, failure.Rows)
	}

	return nil
}

type AppConfig struct {
	DataPath     string
	MetadataPath string
	StoragePath  string

	Target  string
	Numeric []string

	Out io.Writer
}

func splitList(s string) []string {
	result := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

func run(config AppConfig) error {

	file, err := os.Open(config.DataPath)
	if err != nil {
		return fmt.Errorf("unable to open data : %w", err)
	}
	defer file.Close()

	frame, err := gotaframe.ReadCSV(file)
	if err != nil {
		return err
	}

	ds := dataset.New(frame)

	if config.MetadataPath != "" {

		metaFile, err := os.Open(config.MetadataPath)
		if err != nil {
			return fmt.Errorf("unable to open metadata : %w", err)
		}
		defer metaFile.Close()

		if err := ds.ReadMetadata(metaFile); err != nil {
			return fmt.Errorf("unable to apply metadata : %w", err)
		}
	}

	if config.Target != "" {
		if err := ds.SetRole(schema.One(config.Target), schema.Target); err != nil {
			return err
		}
	}

	if len(config.Numeric) > 0 {
		labels := make([]schema.Label, len(config.Numeric))
		for i, n := range config.Numeric {
			labels[i] = n
		}
		if err := ds.SetType(schema.Many(labels...), schema.Number); err != nil {
			return err
		}
	}

	if err := refreshFailures(ds.Refresh()); err != nil {
		return err
	}

	fmt.Fprintf(config.Out, "%-20s %-8s %-8s\n", "Columns", "Role", "Type")
	for _, entry := range ds.Metadata() {
		fmt.Fprintf(config.Out, "%-20s %-8s %-8s\n", schema.LabelKey(entry.Label), entry.Role, entry.Type)
	}

	for _, c := range []filter.Criteria{
		filter.ByRole(schema.Input).WithType(schema.Number),
		filter.ByRole(schema.Input).WithType(schema.Category),
		filter.ByRole(schema.Target),
	} {
		sub, err := ds.Filter(c)
		if err != nil {
			return err
		}
		fmt.Fprintf(config.Out, "%s: %d columns\n", c.String(), sub.ColumnsCount())
	}

	if config.StoragePath != "" {

		catalog := store.NewCatalog(store.Config{PathToStorage: config.StoragePath})

		manifest, err := catalog.Save(ds)
		if err != nil {
			return err
		}

		color.Green(" +++ saved snapshot %s (%d -> %d bytes)", manifest.Uid.String(), manifest.UncompressedSize, manifest.CompressedSize)
	}

	return nil
}

func main() {

	dataPath := flag.String("data", "", "Path to input CSV file")
	metadataPath := flag.String("metadata", "", "Path to a Columns,Role,Type metadata CSV")
	storagePath := flag.String("storage", "", "Save a snapshot under this folder")
	target := flag.String("target", "", "Column to tag as TARGET")
	numeric := flag.String("numeric", "", "Comma separated columns to coerce to NUMBER")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if *dataPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	err := run(AppConfig{
		DataPath:     *dataPath,
		MetadataPath: *metadataPath,
		StoragePath:  *storagePath,
		Target:       *target,
		Numeric:      splitList(*numeric),
		Out:          os.Stdout,
	})

	if err != nil {
		log.Fatalf("copper: %v", err)
	}
}
