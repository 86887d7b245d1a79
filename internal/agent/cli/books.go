package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/agent/api"
	serr "github.com/IvanChernomyrdin/go-bookcorner/internal/shared/errors"
)

// NewBooksCmd создаёт группу команд каталога книг.
//
// list читает GET /api/books, add/edit/rm отправляют админские формы.
// Если сервер закрывает админку сессией, нужен предварительный signin.
func NewBooksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Каталог книг",
	}
	cmd.AddCommand(newBooksListCmd(app))
	cmd.AddCommand(newBooksAddCmd(app))
	cmd.AddCommand(newBooksEditCmd(app))
	cmd.AddCommand(newBooksRmCmd(app))
	return cmd
}

func newBooksListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Список книг (новые первыми)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			books, err := NewAPIClient(app.Server()).ListBooks()
			if err != nil {
				return err
			}
			if len(books) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no books")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, b := range books {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", b.ID, b.Title, b.Description)
			}
			return tw.Flush()
		},
	}
}

// bookcorner books add --title "Dune" --description "Spice" [--image URL]
func newBooksAddCmd(app *App) *cobra.Command {
	var title, description, image string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Добавить книгу",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := NewAPIClient(app.Server()).AddBook(app.Session(), title, description, image)
			if err != nil {
				return adminError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "book %q added\n", title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "book title")
	cmd.Flags().StringVar(&description, "description", "", "book description")
	cmd.Flags().StringVar(&image, "image", "", "cover image URL")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

// newBooksEditCmd меняет только явно переданные поля.
//
//	bookcorner books edit <id> --title "New title"
func newBooksEditCmd(app *App) *cobra.Command {
	var title, description, image string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Изменить книгу (только заданные поля)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch api.BookPatch
			f := cmd.Flags()
			if f.Changed("title") {
				patch.Title = &title
			}
			if f.Changed("description") {
				patch.Description = &description
			}
			if f.Changed("image") {
				patch.Image = &image
			}
			if patch == (api.BookPatch{}) {
				return errors.New("nothing to change: pass --title, --description or --image")
			}

			if err := NewAPIClient(app.Server()).EditBook(app.Session(), args[0], patch); err != nil {
				return adminError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "book %s updated\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&image, "image", "", "new cover image URL")
	return cmd
}

func newBooksRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Удалить книгу",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := NewAPIClient(app.Server()).RemoveBook(app.Session(), args[0]); err != nil {
				return adminError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "book %s removed\n", args[0])
			return nil
		},
	}
}

func adminError(err error) error {
	switch {
	case errors.Is(err, serr.ErrUnauthorized):
		return errNotSignedIn
	case errors.Is(err, serr.ErrInvalidInput):
		return errors.New("server rejected the book: title and description are required")
	}
	return err
}
