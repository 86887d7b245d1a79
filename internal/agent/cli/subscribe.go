package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/agent/memory"
)

// NewSubscribeCmd переключает локальную отметку статьи.
//
// Сервер о подписках не знает; отмеченные статьи показывает
// `articles list --subscribed`.
//
//	bookcorner subscribe <id>
func NewSubscribeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "subscribe <id>",
		Short: "Отметить статью или снять отметку",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			subs, err := memory.LoadSubscriptions(app.SubscriptionsPath)
			if err != nil {
				return err
			}
			on := subs.Toggle(id)
			if err := memory.SaveSubscriptions(app.SubscriptionsPath, subs); err != nil {
				return err
			}

			if !on {
				fmt.Fprintf(cmd.OutOrStdout(), "unsubscribed from %s\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "subscribed to %s\n", id)

			// предупреждение, если статьи нет в кэше (опечатка в id)
			cache := memory.NewArticles()
			if err := memory.LoadArticles(app.ArticlesPath, cache); err == nil {
				if known := articleIDs(cache.List()); len(known) > 0 && !known[id] {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: article %s is not in the local cache\n", id)
				}
			}
			return nil
		},
	}
}
