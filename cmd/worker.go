package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/opencivic/civic-reporter/internal/core/events"
	"github.com/opencivic/civic-reporter/internal/notification"
	"github.com/opencivic/civic-reporter/pkg/logger"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start worker pools for background services",
	Long:  `Start and manage worker pools, currently the webhook notification dispatcher.`,
}

var notifyWorkerCmd = &cobra.Command{
	Use:   "notify",
	Short: "Start the notification dispatcher worker pool",
	Long:  `Start the webhook notification dispatcher standalone for testing deliveries.`,
	Run: func(cmd *cobra.Command, args []string) {
		startNotifyWorker()
	},
}

var eventWorkerCmd = &cobra.Command{
	Use:   "events",
	Short: "Start event bus worker",
	Long:  `Start the event bus with the notification handlers attached`,
	Run: func(cmd *cobra.Command, args []string) {
		startEventWorker()
	},
}

var (
	maxWorkers   int
	jobQueueSize int
	webhookURL   string
)

func startNotifyWorker() {
	config, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(config.Environment, config.Logging.Level)
	lg := logger.LoggerWrapper()

	notifyConfig := notification.Config{
		WebhookURL: getStringFlag(webhookURL, config.Notify.WebhookURL),
		MaxWorkers: getIntFlag(maxWorkers, config.Notify.MaxWorkers),
		QueueSize:  getIntFlag(jobQueueSize, config.Notify.QueueSize),
		JobTimeout: config.Notify.JobTimeout,
	}

	lg.Info("starting notification worker",
		"max_workers", notifyConfig.MaxWorkers,
		"queue_size", notifyConfig.QueueSize,
		"webhook_url", notifyConfig.WebhookURL)

	dispatcher := notification.NewDispatcher(notifyConfig, lg)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	lg.Info("notification worker is running. Press Ctrl+C to stop.")

	sig := <-sigChan
	lg.Info("received signal, shutting down notification worker", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	shutdownDone := make(chan struct{})
	go func() {
		dispatcher.Shutdown()
		close(shutdownDone)
	}()

	select {
	case <-shutdownDone:
		lg.Info("notification worker shutdown complete")
	case <-ctx.Done():
		lg.Warn("shutdown timeout reached, forcing exit")
	}
}

func startEventWorker() {
	config, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(config.Environment, config.Logging.Level)
	lg := logger.LoggerWrapper()

	eventBus := events.NewEventBus(lg)

	dispatcher := notification.NewDispatcher(notification.Config{
		WebhookURL: config.Notify.WebhookURL,
		MaxWorkers: config.Notify.MaxWorkers,
		QueueSize:  config.Notify.QueueSize,
		JobTimeout: config.Notify.JobTimeout,
	}, lg)
	notification.NewEventHandler(dispatcher, lg).RegisterEventHandlers(eventBus)

	lg.Info("event bus worker started. Waiting for events...")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	lg.Info("received signal, shutting down event bus", "signal", sig)
	dispatcher.Shutdown()
	lg.Info("event bus shutdown complete")
}

func getStringFlag(flagValue, configValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return configValue
}

func getIntFlag(flagValue, configValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	return configValue
}

func init() {
	notifyWorkerCmd.Flags().IntVar(&maxWorkers, "max-workers", 0, "Maximum number of workers (overrides config)")
	notifyWorkerCmd.Flags().IntVar(&jobQueueSize, "job-queue-size", 0, "Job queue buffer size (overrides config)")
	notifyWorkerCmd.Flags().StringVar(&webhookURL, "webhook-url", "", "Webhook URL for notifications (overrides config)")

	workerCmd.AddCommand(notifyWorkerCmd)
	workerCmd.AddCommand(eventWorkerCmd)

	rootCmd.AddCommand(workerCmd)
}
