package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	log "github.com/cloudposse/testsift/pkg/logger"
	"github.com/cloudposse/testsift/pkg/semver"
)

func newSemverCompareCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "semver-compare [version1 operator version2]",
		Short: "Compare two semantic versions",
		Long: `Compare two semantic versions with gt, lt or eq and print true or false.
Without arguments the version1, operator and version2 action inputs are used.
The result is also published as the "result" step output.`,
		Example: `  testsift semver-compare 1.2.3 gt 1.2.0`,
		Args:    cobra.RangeArgs(0, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := app.provider()
			inputs := []string{p.Input("version1"), p.Input("operator"), p.Input("version2")}
			copy(inputs, args)

			log.Debug("Comparing versions", "version1", inputs[0], "operator", inputs[1], "version2", inputs[2])
			result, err := semver.Compare(inputs[0], semver.Operator(inputs[1]), inputs[2])
			if err != nil {
				return err
			}

			value := strconv.FormatBool(result)
			fmt.Fprintln(app.Stdout, value)
			return p.OutputWriter().WriteOutput("result", value)
		},
	}
}
