package main

import (
	"fmt"
	"os"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/services/reporting-service/internal/config"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-utils"
	"github.com/spf13/cobra"
)

func main() {
	utils.InitLogger(config.AppName + "-cli")

	env := &cliEnv{}
	rootCmd := &cobra.Command{
		Use:           "reportctl",
		Short:         "Print apartment management reports as JSON",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.open()
		},
	}
	rootCmd.PersistentFlags().StringVar(&env.lang, "lang", "tr", "report language (tr, en)")

	rootCmd.AddCommand(
		overviewCmd(env),
		occupancyCmd(env),
		paymentsCmd(env),
		complaintsCmd(env),
		meetingsCmd(env),
		surveyCmd(env),
	)

	if err := execute(rootCmd, env); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// execute runs the command tree and releases whatever env opened, whether or
// not the subcommand failed.
func execute(rootCmd *cobra.Command, env *cliEnv) error {
	defer env.close()
	return rootCmd.Execute()
}
