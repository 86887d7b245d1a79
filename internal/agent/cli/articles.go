package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/agent/api"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/agent/memory"
	serr "github.com/IvanChernomyrdin/go-bookcorner/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/shared/filter"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/shared/models"
)

// маркеры подсветки совпадений в терминале
const (
	hitOpen  = "["
	hitClose = "]"
)

// NewArticlesCmd создаёт группу команд articles.
func NewArticlesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "articles",
		Short: "Статьи сообщества",
	}
	cmd.AddCommand(newArticlesListCmd(app))
	cmd.AddCommand(newArticlesWriteCmd(app))
	return cmd
}

// newArticlesListCmd — список статей с фильтром на стороне клиента.
//
// Статьи загружаются с GET /api/articles и кэшируются локально;
// с --offline используется только кэш. Фильтр тот же, что на сайте:
// --q ищет в заголовке, превью и авторе, --category в теге.
//
//	bookcorner articles list --q zen --category culture
//	bookcorner articles list --subscribed
func newArticlesListCmd(app *App) *cobra.Command {
	var (
		query      string
		category   string
		subscribed bool
		offline    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Список статей (новые первыми)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := memory.NewArticles()
			if offline {
				if err := memory.LoadArticles(app.ArticlesPath, store); err != nil {
					return fmt.Errorf("load cache: %w", err)
				}
			} else {
				articles, err := NewAPIClient(app.Server()).ListArticles()
				if err != nil {
					return err
				}
				store.ReplaceAll(articles)
				if err := memory.SaveArticles(app.ArticlesPath, store); err != nil {
					return fmt.Errorf("save cache: %w", err)
				}
			}

			subs, err := memory.LoadSubscriptions(app.SubscriptionsPath)
			if err != nil {
				return fmt.Errorf("load subscriptions: %w", err)
			}

			state := filter.Reduce(filter.State{}, filter.Event{Kind: filter.SetQuery, Value: query})
			state = filter.Reduce(state, filter.Event{Kind: filter.SetCategory, Value: category})

			matches := filter.Apply(state, memory.Items(store.List()))
			if subscribed {
				kept := matches[:0]
				for _, m := range matches {
					if subs.IsSubscribed(m.Item.ID) {
						kept = append(kept, m)
					}
				}
				matches = kept
			}

			return printArticles(cmd.OutOrStdout(), store, subs, matches)
		},
	}

	cmd.Flags().StringVar(&query, "q", "", "text to search in title, excerpt and author")
	cmd.Flags().StringVar(&category, "category", "", `category (tag) filter; "all" disables it`)
	cmd.Flags().BoolVar(&subscribed, "subscribed", false, "only articles marked with subscribe")
	cmd.Flags().BoolVar(&offline, "offline", false, "use the local cache instead of the server")
	return cmd
}

func printArticles(out io.Writer, store *memory.ArticlesStore, subs *filter.Subscriptions, matches []filter.Match) error {
	if len(matches) == 0 {
		_, err := fmt.Fprintln(out, "no articles")
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, m := range matches {
		a, err := store.Get(m.Item.ID)
		if err != nil {
			return err
		}
		mark := " "
		if subs.IsSubscribed(a.ID) {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s %s\t%s\t%s\t%s\t%s\n",
			mark, a.ID, m.Title.Wrap(hitOpen, hitClose), a.Tag, a.Author, a.ReadTime)
		if a.Excerpt != "" {
			fmt.Fprintf(tw, "\t%s\t\t\t\n", m.Excerpt.Wrap(hitOpen, hitClose))
		}
	}
	return tw.Flush()
}

// newArticlesWriteCmd — отправка статьи через форму /write.
//
// Обязательны --title и содержимое (--content или --content-file, "-" это STDIN).
// Остальные поля сервер заполнит значениями по умолчанию.
//
//	bookcorner articles write --title "Zen garden" --content-file post.md --tag Culture
func newArticlesWriteCmd(app *App) *cobra.Command {
	var (
		draft       api.ArticleDraft
		contentFile string
	)

	cmd := &cobra.Command{
		Use:   "write",
		Short: "Отправить статью",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if contentFile != "" {
				body, err := readContent(cmd, contentFile)
				if err != nil {
					return err
				}
				draft.Content = body
			}
			if strings.TrimSpace(draft.Title) == "" || strings.TrimSpace(draft.Content) == "" {
				return errors.New("title and content are required")
			}

			err := NewAPIClient(app.Server()).SubmitArticle(app.Session(), draft)
			if errors.Is(err, serr.ErrInvalidInput) {
				return errors.New("server rejected the article: title and content are required")
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "article %q submitted\n", draft.Title)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&draft.Title, "title", "", "article title")
	f.StringVar(&draft.Content, "content", "", "article text")
	f.StringVar(&contentFile, "content-file", "", `read article text from file ("-" for STDIN)`)
	f.StringVar(&draft.Tag, "tag", "", "category tag")
	f.StringVar(&draft.Author, "author", "", "author name")
	f.StringVar(&draft.ReadTime, "read-time", "", `read time, e.g. "5 min read"`)
	f.StringVar(&draft.Excerpt, "excerpt", "", "short preview")
	f.StringVar(&draft.CoverImage, "cover-image", "", "cover image URL")
	cmd.MarkFlagsMutuallyExclusive("content", "content-file")
	return cmd
}

func readContent(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		return string(b), err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read content: %w", err)
	}
	return string(b), nil
}

// articleIDs возвращает id статей в кэше (для подсказок subscribe).
func articleIDs(list []models.Article) map[string]bool {
	out := make(map[string]bool, len(list))
	for _, a := range list {
		out[a.ID] = true
	}
	return out
}
