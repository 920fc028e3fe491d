package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/seedtools/gto/internal/genome"
	"github.com/seedtools/gto/internal/report"
	"github.com/seedtools/gto/internal/scan"
	"github.com/seedtools/gto/internal/store"
)

func newScanCmd(verbose *bool) *cobra.Command {
	var (
		outputFile string
		typeFilter string
		storePath  string
		envelope   bool
	)

	cmd := &cobra.Command{
		Use:   "scan <directory>",
		Short: "Report the feature locations of every genome in a directory",
		Long: `Scan reads every GTO file in a directory in genome ID order and writes a
tab-delimited report of feature locations, sorted by location within each
genome.`,
		Example: `  gto scan genomes/
  gto scan --type CDS -o features.tsv genomes/
  gto scan --store features.duckdb genomes/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(args[0], outputFile, typeFilter, storePath, envelope, *verbose)
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&typeFilter, "type", "", "Only report features of this type (e.g. CDS)")
	cmd.Flags().StringVar(&storePath, "store", "", "Also persist features to a DuckDB file")
	cmd.Flags().BoolVar(&envelope, "envelope", false, "Collapse segmented locations to their full extent")

	return cmd
}

func runScan(dirPath, outputFile, typeFilter, storePath string, envelope, verbose bool) error {
	logger, err := newLogger(verbose)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	dir, err := genome.OpenDirectory(dirPath)
	if err != nil {
		return err
	}

	if typeFilter == "" {
		typeFilter = viper.GetString("scan.type")
	}

	scanner := scan.NewScanner()
	scanner.SetLogger(logger)
	scanner.SetTypeFilter(typeFilter)
	scanner.SetEnvelope(envelope)

	if storePath == "" {
		storePath = viper.GetString("scan.store")
	}
	if storePath != "" {
		st, err := store.Open(storePath)
		if err != nil {
			return err
		}
		defer st.Close()
		scanner.SetStore(st)
	}

	out := os.Stdout
	if outputFile != "" {
		out, err = os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer out.Close()
	}

	n, err := scanner.ScanDirectory(dir, report.NewTabWriter(out))
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Scanned %s: %d features\n", dir, n)
	return nil
}
