package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/seedtools/gto/internal/genome"
	"github.com/seedtools/gto/internal/location"
	"github.com/seedtools/gto/internal/scan"
)

func newFramesCmd(verbose *bool) *cobra.Command {
	var (
		pos        int64
		kSize      int64
		typeFilter string
		showAll    bool
	)

	cmd := &cobra.Command{
		Use:   "frames <directory>",
		Short: "Classify a kmer position against every feature location",
		Long: `Frames computes, for every feature in a genome directory, the reading frame
of a kmer given by its 1-based start position and length. By default only
features the kmer touches are reported; use --all to include the rest.`,
		Example: `  gto frames --pos 4250 --k 8 genomes/
  gto frames --pos 4250 --k 8 --type CDS --all genomes/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("k") && viper.IsSet("frames.k") {
				kSize = viper.GetInt64("frames.k")
			}
			return runFrames(args[0], pos, kSize, typeFilter, showAll, *verbose)
		},
	}

	cmd.Flags().Int64Var(&pos, "pos", 0, "1-based start position of the kmer (required)")
	cmd.Flags().Int64Var(&kSize, "k", 8, "Kmer length")
	cmd.Flags().StringVar(&typeFilter, "type", "", "Only classify features of this type (e.g. CDS)")
	cmd.Flags().BoolVar(&showAll, "all", false, "Include features the kmer lies outside of")
	_ = cmd.MarkFlagRequired("pos")

	return cmd
}

func runFrames(dirPath string, pos, kSize int64, typeFilter string, showAll, verbose bool) error {
	if pos < 1 {
		return fmt.Errorf("kmer position %d must be positive", pos)
	}
	if kSize < 1 {
		return fmt.Errorf("kmer length %d must be positive", kSize)
	}

	logger, err := newLogger(verbose)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	dir, err := genome.OpenDirectory(dirPath)
	if err != nil {
		return err
	}

	scanner := scan.NewScanner()
	scanner.SetLogger(logger)
	scanner.SetTypeFilter(typeFilter)

	results, err := scanner.KmerFrames(dir, pos, kSize)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(os.Stdout)
	fmt.Fprintln(w, "#Genome\tFeature\tFrame")
	reported := 0
	for _, r := range results {
		if !showAll && r.Frame == location.FrameOutside {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.GenomeID, r.FeatureID, r.Frame)
		reported++
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Classified kmer [%d, %d] against %d features (%d reported)\n",
		pos, pos+kSize-1, len(results), reported)
	return nil
}
