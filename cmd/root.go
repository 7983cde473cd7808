package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// configDefault is the embedded config/config.yaml, written out when no config file exists
var configDefault string

var rootCmd = &cobra.Command{
	Use:   "fast-note-history-service",
	Short: "Fast Note History Service",
	Long: `Per-user note history service.
按用户保存最近访问的笔记历史，并提供笔记、文件夹与账户接口。

  run      start the HTTP API // 启动服务
  upgrade  apply pending schema and data migrations // 执行待处理的迁移
  version  print build info // 打印版本信息`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command with c as the embedded default config
func Execute(c string) {
	configDefault = c
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
