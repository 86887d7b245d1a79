package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// NewVersionCmd создаёт команду вывода версии клиента, даты сборки и версии Go.
//
//	bookcorner version
func NewVersionCmd(buildVersion, buildDate string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Показать версию и дату сборки",
		Args:  cobra.NoArgs,
		// сессия и файлы не нужны
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(),
				"bookcorner version=%s\nbuild_date=%s\ngo=%s\n",
				buildVersion, buildDate, runtime.Version(),
			)
		},
	}
}
