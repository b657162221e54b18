package main

import (
	"fmt"
	"io"

	"Stopwatch/internal/config"
	"Stopwatch/internal/stopwatch"
	"Stopwatch/internal/storage"
	"Stopwatch/internal/ui"

	"fyne.io/fyne/v2/app"
	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	driver     string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "stopwatch",
		Short:         "厘秒精度的秒表，支持计次与断点恢复",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := opts.open()
			if err != nil {
				return err
			}
			defer store.Close()

			// 创建应用
			myApp := app.NewWithID("stopwatch")
			mainWindow := ui.NewMainWindow(myApp, cfg, store)
			mainWindow.SetSize(float32(cfg.App.WindowWidth), float32(cfg.App.WindowHeight))
			mainWindow.Show()
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "配置文件路径（默认使用 XDG 配置目录）")
	cmd.PersistentFlags().StringVar(&opts.driver, "storage", "", "覆盖配置中的存储类型: sqlite, redis, memory")

	cmd.AddCommand(newStatusCmd(opts), newResetCmd(opts))
	return cmd
}

func newStatusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "显示保存的时间与计次",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := opts.open()
			if err != nil {
				return err
			}
			defer store.Close()

			sw := stopwatch.New(stopwatch.NopDisplay{}, store, cfg.Stopwatch.TickInterval)
			sw.Load()
			defer sw.Close()

			printStatus(cmd.OutOrStdout(), sw)
			return nil
		},
	}
}

func newResetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "清除保存的时间与计次",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := opts.open()
			if err != nil {
				return err
			}
			defer store.Close()

			sw := stopwatch.New(stopwatch.NopDisplay{}, store, cfg.Stopwatch.TickInterval)
			sw.Load()
			defer sw.Close()

			if err := sw.OnRestart(); err != nil {
				return errors.Wrap(err, "reset stopwatch")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "已重置")
			return nil
		},
	}
}

// open 加载配置并打开存储
func (o *options) open() (*config.Config, storage.KeyValueStore, error) {
	var (
		manager *config.Manager
		err     error
	)
	if o.configPath != "" {
		manager, err = config.NewManagerAt(o.configPath)
	} else {
		manager, err = config.NewManager()
	}
	if err != nil {
		return nil, nil, errors.Wrap(err, "load config")
	}

	cfg := manager.GetConfig()
	cfg.ApplyLogLevel()
	if o.driver != "" {
		cfg.Storage.Driver = o.driver
	}

	store, err := storage.NewStore(cfg.Storage)
	if err != nil {
		return nil, nil, err
	}
	log.Debug("storage opened", "driver", cfg.Storage.Driver)
	return cfg, store, nil
}

func printStatus(w io.Writer, sw *stopwatch.Stopwatch) {
	fmt.Fprintf(w, "%s (%s)\n", sw.Elapsed(), sw.State())

	laps := sw.Laps()
	if len(laps) == 0 {
		fmt.Fprintln(w, "暂无计次")
		return
	}
	for _, lap := range laps {
		fmt.Fprintln(w, lap.Label())
	}
}
