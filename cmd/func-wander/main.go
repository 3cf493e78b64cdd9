// Command func-wander searches for an integer expression reproducing the
// A-law to linear PCM decoding table, printing progress and checkpointing to
// a save file so the search can be interrupted and resumed.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	minioclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/spf13/cobra"

	funcwander "github.com/oldnick85/func-wander"
	"github.com/oldnick85/func-wander/persist"
	miniostore "github.com/oldnick85/func-wander/persist/minio"
	"github.com/oldnick85/func-wander/search"
	"github.com/oldnick85/func-wander/statushttp"
)

const statusInterval = 10 * time.Second

type cliOptions struct {
	saveFile string
	maxDepth int
	maxBest  int
	httpAddr string
	verbose  bool
}

func main() {
	var opts cliOptions

	cmd := &cobra.Command{
		Use:   "func-wander",
		Short: "Brute-force search for an A-law decoding expression",
		Long: `func-wander enumerates expression trees over bitwise atoms and ranks
them by how closely they reproduce the A-law to linear PCM table. The search
checkpoints its complete progress to the save file, so it can be stopped with
Ctrl+C and resumed later from the same file.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.saveFile, "save-file", "", "snapshot to checkpoint to and resume from (path or s3://bucket/key)")
	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", search.DefaultMaxDepth, "candidate tree depth bound")
	cmd.Flags().IntVar(&opts.maxBest, "max-best", search.DefaultMaxBest, "best-list capacity")
	cmd.Flags().StringVar(&opts.httpAddr, "http", "", "serve a live status page on this address (e.g. :8080)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, opts cliOptions) error {
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := funcwander.NewTextLogger(level).WithTask("alaw")

	builder := funcwander.Wander(alawLibrary(), alawTarget()).
		MaxDepth(opts.maxDepth).
		MaxBest(opts.maxBest).
		Logger(logger)

	var (
		store    persist.Store
		saveName string
	)
	if opts.saveFile != "" {
		var err error
		store, saveName, err = newStore(opts.saveFile)
		if err != nil {
			return err
		}
		builder = builder.Autosave(store, saveName, time.Minute)
	}

	task, err := builder.Build()
	if err != nil {
		return err
	}

	if store != nil {
		switch err := task.LoadFrom(ctx, store, saveName); {
		case err == nil:
			logger.Info("resumed from snapshot", "file", opts.saveFile)
		case errors.Is(err, persist.ErrNotFound):
			logger.Info("no snapshot found, starting fresh", "file", opts.saveFile)
		default:
			return fmt.Errorf("failed to load snapshot %s: %w", opts.saveFile, err)
		}
	}

	var httpSrv *statushttp.Server
	if opts.httpAddr != "" {
		httpSrv = statushttp.New(task, opts.httpAddr, statushttp.WithLogger(logger.Logger))
		go func() {
			if err := httpSrv.Start(); err != nil {
				logger.Error("status server failed", "error", err)
			}
		}()
	}

	if err := task.Run(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(statusInterval)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-ctx.Done():
			logger.Info("terminating on signal")
			break loop
		case <-ticker.C:
			fmt.Print(task.Status())
			if task.Done() {
				break loop
			}
		}
	}

	if err := task.Stop(); err != nil {
		return err
	}

	if httpSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("status server shutdown failed", "error", err)
		}
	}

	if store != nil {
		// The run context may already be canceled; saving still has to
		// happen.
		saveCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		err := task.SaveTo(saveCtx, store, saveName)
		logger.LogSnapshot(saveCtx, opts.saveFile, err)
		if err != nil {
			return err
		}
	}

	fmt.Print(task.Status())
	return nil
}

// newStore resolves a save-file location to a snapshot store and a snapshot
// name. Plain paths use the local filesystem; s3://bucket/key paths use a
// MinIO or S3-compatible endpoint configured through MINIO_ENDPOINT,
// MINIO_ACCESS_KEY and MINIO_SECRET_KEY.
func newStore(saveFile string) (persist.Store, string, error) {
	if rest, ok := strings.CutPrefix(saveFile, "s3://"); ok {
		bucket, key, ok := strings.Cut(rest, "/")
		if !ok || key == "" {
			return nil, "", fmt.Errorf("invalid save file %q: want s3://bucket/key", saveFile)
		}

		endpoint := os.Getenv("MINIO_ENDPOINT")
		if endpoint == "" {
			return nil, "", errors.New("MINIO_ENDPOINT must be set for s3:// save files")
		}
		client, err := minioclient.New(endpoint, &minioclient.Options{
			Creds:  credentials.NewEnvMinio(),
			Secure: os.Getenv("MINIO_INSECURE") == "",
		})
		if err != nil {
			return nil, "", fmt.Errorf("failed to connect to %s: %w", endpoint, err)
		}

		prefix := path.Dir(key)
		if prefix == "." {
			prefix = ""
		}
		return miniostore.NewStore(client, bucket, prefix), path.Base(key), nil
	}

	store, err := persist.NewLocalStore(filepath.Dir(saveFile))
	if err != nil {
		return nil, "", err
	}
	return store, filepath.Base(saveFile), nil
}
