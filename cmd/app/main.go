package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:          "perf-summaries",
		Short:        "Generate AI performance summaries for batches of employee records.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("env-file") {
				if err := godotenv.Load(envFile); err != nil {
					return fmt.Errorf("load env file: %w", err)
				}
				return nil
			}
			// A missing .env is normal outside local development.
			_ = godotenv.Load()
			return nil
		},
		RunE: runServe,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before configuration")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API",
			RunE:  runServe,
		},
		newGenerateCmd(),
	)
	return root
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := initializeApp()
	if err != nil {
		return fmt.Errorf("failed to wire application: %w", err)
	}
	if err := app.Run(ctx); err != nil {
		return fmt.Errorf("application stopped with error: %w", err)
	}
	return nil
}

func newGenerateCmd() *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Summarize one batch from a JSON file and print the result",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			runner, err := initializeBatchRunner(cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("failed to wire batch runner: %w", err)
			}
			return runBatch(ctx, runner, input, output, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "-", `input file, "-" for stdin`)
	cmd.Flags().StringVarP(&output, "output", "o", "-", `output file, "-" for stdout`)
	return cmd
}

type batchRunner interface {
	Run(ctx context.Context, r io.Reader, w io.Writer) error
}

func runBatch(ctx context.Context, runner batchRunner, input, output string, stdin io.Reader, stdout io.Writer) error {
	in := stdin
	if input != "-" {
		f, err := os.Open(input)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	var buf bytes.Buffer
	if err := runner.Run(ctx, in, &buf); err != nil {
		return err
	}

	if output == "-" {
		_, err := buf.WriteTo(stdout)
		return err
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
