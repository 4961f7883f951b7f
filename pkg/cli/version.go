// Package cli holds small reusable command constructors.
package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version is the release version, overridden at build time via
// -ldflags "-X github.com/nmaptor/nmaptor/pkg/cli.Version=v1.2.3".
var Version = "dev"

// NewVersionCommand returns a command printing the executable version.
func NewVersionCommand(executable string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: fmt.Sprintf("Print the %s version", executable),
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("%s %s %s/%s\n", executable, resolveVersion(), runtime.GOOS, runtime.GOARCH)
		},
	}
}

// resolveVersion prefers the ldflags-injected version, falling back to the
// module version embedded by the toolchain for go-install builds.
func resolveVersion() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}
