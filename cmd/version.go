package cmd

import (
	"runtime"

	"github.com/spf13/cobra"
)

// newVersionCmd 创建 version 子命令，同时输出构建所用的 Go 版本与平台。
// 命令示例：codemetrics version
func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "显示版本号与构建信息",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("codemetrics version %s (%s %s/%s)\n", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}
