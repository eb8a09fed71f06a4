package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hirelens/hirelens/pkg/logx"
	"github.com/hirelens/hirelens/screening/resume/worker"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the resume processing worker pool",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logx.Info("Starting hirelens workers...")

		container := NewContainer(cfg)
		defer container.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		pool := worker.NewResumeWorker(container.ResumeService, container.Queue, cfg.Worker.Count)
		pool.Start(ctx)

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

		<-quit
		logx.Info("Shutting down workers...")
		cancel()

		return nil
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
