package cmd

import (
	"fmt"

	"github.com/haierkeys/fast-note-history-service/internal/app"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
)

var versionJSON bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print out version info and exit. // 打印版本信息并退出。",
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionJSON {
			out, err := sonic.Marshal(map[string]string{
				"name":      app.Name,
				"version":   app.Version,
				"gitTag":    app.GitTag,
				"buildTime": app.BuildTime,
			})
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}
		fmt.Printf("%s v%s ( Git:%s ) BuildTime:%s\n", app.Name, app.Version, app.GitTag, app.BuildTime)
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "print version info as JSON // 以 JSON 格式输出")
	rootCmd.AddCommand(versionCmd)
}
