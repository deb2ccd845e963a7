package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/strrl/mentorlink/internal/auth"
	"github.com/strrl/mentorlink/pkg/models"
)

var (
	askFunc    = survey.Ask
	askOneFunc = survey.AskOne
)

type registerAnswers struct {
	Name            string `survey:"name"`
	Email           string `survey:"email"`
	Password        string `survey:"password"`
	ConfirmPassword string `survey:"confirm"`
}

func registerQuestions() []*survey.Question {
	return []*survey.Question{
		{Name: "name", Prompt: &survey.Input{Message: "Full name:"}},
		{Name: "email", Prompt: &survey.Input{Message: "Email:"}},
		{
			Name:     "password",
			Prompt:   &survey.Password{Message: fmt.Sprintf("Password (min %d characters):", auth.MinPasswordLength)},
			Validate: survey.Required,
		},
		{Name: "confirm", Prompt: &survey.Password{Message: "Confirm password:"}},
	}
}

func newRegisterCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create a mentee account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := auth.NewStore(a.logger)
			if err != nil {
				return err
			}
			user, err := register(store)
			if err != nil {
				return err
			}
			printUser(cmd.OutOrStdout(), "Account created", user)
			return nil
		},
	}
}

func register(store *auth.Store) (models.User, error) {
	var answers registerAnswers
	if err := askFunc(registerQuestions(), &answers); err != nil {
		return models.User{}, err
	}
	return store.Register(auth.RegisterRequest{
		Name:            answers.Name,
		Email:           answers.Email,
		Password:        answers.Password,
		ConfirmPassword: answers.ConfirmPassword,
	})
}

func newLoginCommand(a *app) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to an account",
		Long: `Sign in with an email and password. Accounts live in memory, so only the
guest account (` + auth.GuestEmail + `) exists in a fresh process.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := auth.NewStore(a.logger)
			if err != nil {
				return err
			}
			password, err := readPassword(cmd.InOrStdin(), cmd.ErrOrStderr(), "Password: ")
			if err != nil {
				return err
			}
			user, err := store.Login(strings.TrimSpace(email), password)
			if err != nil {
				return err
			}
			printUser(cmd.OutOrStdout(), "Welcome back", user)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", auth.GuestEmail, "account email")
	return cmd
}

// readPassword reads without echo when in is a terminal, otherwise it reads a
// single line
func readPassword(in io.Reader, prompt io.Writer, label string) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, label)
		password, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(password), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

const (
	signInGuest    = "Continue as guest"
	signInAccount  = "Sign in with email"
	signInRegister = "Create an account"
)

// signIn runs the interactive sign-in flow shown before the TUI
func (a *app) signIn(cmd *cobra.Command, store *auth.Store) (models.User, error) {
	var choice string
	prompt := &survey.Select{
		Message: "Welcome to MentorLink Pro",
		Options: []string{signInGuest, signInAccount, signInRegister},
		Default: signInGuest,
	}
	if err := askOneFunc(prompt, &choice); err != nil {
		return models.User{}, err
	}

	email := auth.GuestEmail
	switch choice {
	case signInRegister:
		user, err := register(store)
		if err != nil {
			return models.User{}, err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Registration successful! Please sign in.")
		email = user.Email
		fallthrough
	case signInAccount:
		return promptLogin(store, email)
	default:
		return store.Login(auth.GuestEmail, auth.GuestPassword)
	}
}

// promptLogin asks for credentials, offering email as the default address
func promptLogin(store *auth.Store, email string) (models.User, error) {
	if err := askOneFunc(&survey.Input{Message: "Email:", Default: email}, &email); err != nil {
		return models.User{}, err
	}
	var password string
	if err := askOneFunc(&survey.Password{Message: "Password:"}, &password); err != nil {
		return models.User{}, err
	}
	return store.Login(strings.TrimSpace(email), password)
}

func printUser(w io.Writer, greeting string, user models.User) {
	fmt.Fprintf(w, "%s, %s!\n", greeting, user.Name)
	fmt.Fprintf(w, "   ID: %s\n", user.ID)
	fmt.Fprintf(w, "   Email: %s\n", user.Email)
	fmt.Fprintf(w, "   Role: %s\n", user.Role)
	if user.Bio != "" {
		fmt.Fprintf(w, "   Bio: %s\n", user.Bio)
	}
}
