package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/cwbudde/mmverify/internal/lexer"
	"github.com/cwbudde/mmverify/internal/verifier"
	"github.com/spf13/cobra"
)

var (
	upto    string
	theorem string
	jobs    int
)

var verifyCmd = &cobra.Command{
	Use:   "verify <path>",
	Short: "Verify every theorem in a Metamath database",
	Long: `Parse a Metamath database and mechanically check every theorem's proof.

Examples:
  # Verify an entire database
  mmverify verify set.mm

  # Verify only the prefix through a given theorem
  mmverify verify --upto mpd set.mm

  # Verify a single theorem
  mmverify verify --theorem a1i set.mm

  # Fan verification out across 8 goroutines
  mmverify verify --jobs 8 set.mm`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&upto, "upto", "", "verify only the prefix of theorems through this label")
	verifyCmd.Flags().StringVar(&theorem, "theorem", "", "verify only this theorem")
	verifyCmd.Flags().IntVar(&jobs, "jobs", 1, "parallelism across theorems")
}

func runVerify(_ *cobra.Command, args []string) error {
	path := args[0]

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	l := lexer.New(f)
	tokens, err := l.Tokens()
	if err != nil {
		fmt.Fprintf(os.Stderr, "tokenize error: %v\n", err)
		return err
	}

	db, err := verifier.Parse(tokens)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse error: %v\n", err)
		return err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "parsed %d statements (%d labeled)\n", len(db.AllStatements()), len(db.Labels()))
	}

	mode := verifier.ModeAccumulate
	if upto != "" || theorem != "" {
		// A targeted run is naturally strict: there is nothing meaningful
		// to accumulate past a single requested failure.
		mode = verifier.ModeStrict
	}

	opts := verifier.Options{Mode: mode, Jobs: jobs, Upto: upto, Theorem: theorem}
	results, err := verifier.New(db).Run(context.Background(), opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return err
	}

	failures := 0
	for _, r := range results {
		switch {
		case r.Err != nil:
			failures++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", r.Label, r.Err)
		case !quiet:
			fmt.Printf("PASS %s\n", r.Label)
		}
	}

	if !quiet {
		fmt.Printf("%d verified, %d failed, %d total\n", len(results)-failures, failures, len(results))
	} else {
		fmt.Printf("%d/%d theorems verified\n", len(results)-failures, len(results))
	}

	if failures > 0 {
		return fmt.Errorf("%d theorem(s) failed verification", failures)
	}
	return nil
}
