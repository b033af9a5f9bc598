package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string `json:"version" yaml:"version"`
	GitCommit string `json:"commit" yaml:"commit"`
	BuildDate string `json:"built" yaml:"built"`
	GoVersion string `json:"go" yaml:"go"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display leapcalc version and build information.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info.GoVersion = runtime.Version()
			r := NewCommandContext(cmd).Renderer
			if r.Structured() {
				return r.Data(info)
			}
			r.Printf("leapcalc v%s\n", info.Version)
			r.Muted(fmt.Sprintf("commit %s, built %s, %s", info.GitCommit, info.BuildDate, info.GoVersion))
			return nil
		},
	}
}
