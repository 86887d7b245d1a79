// Package cli реализует командный интерфейс (CLI) клиента BookCorner.
//
// Пакет отвечает за:
//   - определение root-команды и набора подкоманд;
//   - разбор аргументов и флагов командной строки;
//   - загрузку сохранённой сессии из ~/.bookcorner/credentials.json;
//   - выполнение команд и вывод результата пользователю.
//
// Точка входа пакета — функция Execute.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/agent/config"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/agent/memory"
)

// DefaultServerURL — адрес сервера, если он не задан ни флагом, ни сохранённой сессией.
const DefaultServerURL = "http://127.0.0.1:8080"

// errNotSignedIn возвращается командами, которым нужна сессия.
var errNotSignedIn = errors.New("not signed in, run: bookcorner signin")

// App содержит состояние CLI-приложения, разделяемое между командами.
//
// Пустые пути заполняются значениями по умолчанию в PersistentPreRunE,
// поэтому тесты могут подставить свои.
type App struct {
	// ServerURL — адрес из флага --server; пустой означает «как в сохранённой сессии».
	ServerURL string

	// CredsPath — путь к файлу с сохранённой сессией.
	CredsPath string
	// Creds — загруженные учётные данные.
	Creds *config.Credentials

	// ArticlesPath — путь к локальному кэшу статей.
	ArticlesPath string
	// SubscriptionsPath — путь к файлу подписок.
	SubscriptionsPath string
}

// Server возвращает адрес сервера: флаг, затем сохранённая сессия, затем DefaultServerURL.
func (a *App) Server() string {
	if a.ServerURL != "" {
		return a.ServerURL
	}
	if a.Creds != nil && a.Creds.Server != "" {
		return a.Creds.Server
	}
	return DefaultServerURL
}

// Session возвращает сохранённую cookie сессии или пустую строку.
func (a *App) Session() string {
	if a.Creds == nil {
		return ""
	}
	return a.Creds.Session
}

// init заполняет пути по умолчанию и загружает учётные данные.
func (a *App) init() error {
	var err error
	if a.CredsPath == "" {
		if a.CredsPath, err = config.DefaultPath(); err != nil {
			return err
		}
	}
	if a.ArticlesPath == "" {
		if a.ArticlesPath, err = memory.DefaultArticlesPath(); err != nil {
			return err
		}
	}
	if a.SubscriptionsPath == "" {
		if a.SubscriptionsPath, err = memory.DefaultSubscriptionsPath(); err != nil {
			return err
		}
	}
	if a.Creds == nil {
		if a.Creds, err = config.Load(a.CredsPath); err != nil {
			return fmt.Errorf("load credentials: %w", err)
		}
	}
	return nil
}

// NewRootCmd создаёт root-команду CLI и регистрирует подкоманды.
//
// buildVersion и buildDate используются командой version.
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	return newRootCmd(&App{}, buildVersion, buildDate)
}

func newRootCmd(app *App, buildVersion, buildDate string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookcorner",
		Short: "BookCorner CLI — книги и статьи сообщества из терминала",
		Long: `BookCorner CLI.

Команды:
  signup     Регистрация (сразу открывает сессию)
  signin     Вход
  signout    Выход
  articles   Список статей с фильтром и отправка новой статьи
  books      Каталог книг и админские действия
  subscribe  Отметить статью (локально)
  version    Версия и дата сборки

Примеры:
  bookcorner signin --email me@example.com
  bookcorner articles list --q zen --category culture
  bookcorner articles write --title "Hello" --content-file post.txt
  bookcorner books add --title "Dune" --description "Spice"
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init()
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVar(&app.ServerURL, "server", "", "server base URL (default: saved session server or "+DefaultServerURL+")")

	cmd.AddCommand(NewSignUpCmd(app))
	cmd.AddCommand(NewSignInCmd(app))
	cmd.AddCommand(NewSignOutCmd(app))
	cmd.AddCommand(NewArticlesCmd(app))
	cmd.AddCommand(NewBooksCmd(app))
	cmd.AddCommand(NewSubscribeCmd(app))
	cmd.AddCommand(NewVersionCmd(buildVersion, buildDate))

	return cmd
}

// Execute запускает обработку CLI-команд.
//
// При ошибке сообщение выводится в stderr, процесс завершается с кодом 1.
func Execute(buildVersion, buildDate string) {
	if err := NewRootCmd(buildVersion, buildDate).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
