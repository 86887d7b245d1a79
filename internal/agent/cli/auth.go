package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/agent/config"
	serr "github.com/IvanChernomyrdin/go-bookcorner/internal/shared/errors"
)

// credentialFlags — общие флаги signin/signup.
type credentialFlags struct {
	email         string
	password      string
	passwordStdin bool
}

func (f *credentialFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.email, "email", "", "account email")
	cmd.Flags().StringVar(&f.password, "password", "", "password (prompted when omitted)")
	cmd.Flags().BoolVar(&f.passwordStdin, "password-stdin", false, "read password from STDIN")
	_ = cmd.MarkFlagRequired("email")
	cmd.MarkFlagsMutuallyExclusive("password", "password-stdin")
}

func (f *credentialFlags) resolvePassword(cmd *cobra.Command) (string, error) {
	if f.password != "" {
		return f.password, nil
	}
	return ReadPassword(cmd, f.passwordStdin)
}

// NewSignUpCmd создаёт команду регистрации.
//
// Сервер при успехе сразу открывает сессию, она сохраняется локально.
// Причину отказа (невалидные данные или занятый email) сервер не сообщает.
//
//	bookcorner signup --name Mila --email m@example.com
func NewSignUpCmd(app *App) *cobra.Command {
	var (
		creds credentialFlags
		name  string
	)

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Регистрация нового пользователя",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := creds.resolvePassword(cmd)
			if err != nil {
				return err
			}

			sid, err := NewAPIClient(app.Server()).SignUp(name, creds.email, password)
			if errors.Is(err, serr.ErrInvalidInput) {
				return errors.New("signup rejected: check the fields or use another email")
			}
			if err != nil {
				return err
			}

			if err := app.saveSession(sid, creds.email); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "signed up as %s\n", creds.email)
			return nil
		},
	}

	creds.bind(cmd)
	cmd.Flags().StringVar(&name, "name", "", "display name")
	return cmd
}

// NewSignInCmd создаёт команду входа. Cookie сессии сохраняется в credentials.json.
//
//	bookcorner signin --email m@example.com
//	echo "$PASS" | bookcorner signin --email m@example.com --password-stdin
func NewSignInCmd(app *App) *cobra.Command {
	var creds credentialFlags

	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Вход (сохраняет сессию локально)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := creds.resolvePassword(cmd)
			if err != nil {
				return err
			}

			sid, err := NewAPIClient(app.Server()).SignIn(creds.email, password)
			if errors.Is(err, serr.ErrInvalidCredentials) {
				return errors.New("signin failed: wrong email or password")
			}
			if err != nil {
				return err
			}

			if err := app.saveSession(sid, creds.email); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s\n", creds.email)
			return nil
		},
	}

	creds.bind(cmd)
	return cmd
}

// NewSignOutCmd создаёт команду выхода.
//
// Локальная сессия удаляется даже если сервер ответил ошибкой.
func NewSignOutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Выход (удаляет сессию на сервере и локально)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.Creds.SignedIn() {
				fmt.Fprintln(cmd.OutOrStdout(), "not signed in")
				return nil
			}

			remoteErr := NewAPIClient(app.Server()).SignOut(app.Session())
			app.Creds = &config.Credentials{}
			if err := config.Clear(app.CredsPath); err != nil {
				return err
			}
			if remoteErr != nil {
				return fmt.Errorf("signed out locally, server: %w", remoteErr)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}
}

func (a *App) saveSession(sid, email string) error {
	a.Creds = &config.Credentials{Session: sid, Server: a.Server(), Email: email}
	return config.Save(a.CredsPath, a.Creds)
}

// readPassword читает пароль из STDIN (fromStdin) или скрытым вводом с терминала.
func readPassword(cmd *cobra.Command, fromStdin bool) (string, error) {
	if fromStdin {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read password from stdin: %w", err)
		}
		pw := bytes.TrimRight(b, "\r\n")
		if len(pw) == 0 {
			return "", errors.New("empty password on stdin")
		}
		return string(pw), nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin is not a terminal; use --password or --password-stdin")
	}

	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	pwBytes, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	pw := strings.TrimSpace(string(pwBytes))
	if pw == "" {
		return "", errors.New("empty password")
	}
	return pw, nil
}
