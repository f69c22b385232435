package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
)

type LoginCommand struct {
	wiring commandWiring
}

func NewLoginCommand(wiring commandWiring) *LoginCommand {
	return &LoginCommand{wiring: wiring}
}

func (c *LoginCommand) Run(args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(c.wiring.stderr)
	user := fs.String("user", os.Getenv("USER"), "username")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := c.wiring.loadConfig()
	if err != nil {
		return err
	}
	ctx := context.Background()
	sessions, closer, err := c.wiring.openSessions(ctx, cfg, cliLogger(cfg, c.wiring.stderr))
	if err != nil {
		return err
	}
	defer closer.Close()

	password, err := c.wiring.readPassword("Password: ")
	if err != nil {
		return err
	}
	current, err := sessions.Login(ctx, *user, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.wiring.stdout, "Signed in as %s\n", current.DisplayName)
	return nil
}

type LogoutCommand struct {
	wiring commandWiring
}

func NewLogoutCommand(wiring commandWiring) *LogoutCommand {
	return &LogoutCommand{wiring: wiring}
}

func (c *LogoutCommand) Run(args []string) error {
	fs := flag.NewFlagSet("logout", flag.ContinueOnError)
	fs.SetOutput(c.wiring.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := c.wiring.loadConfig()
	if err != nil {
		return err
	}
	ctx := context.Background()
	sessions, closer, err := c.wiring.openSessions(ctx, cfg, cliLogger(cfg, c.wiring.stderr))
	if err != nil {
		return err
	}
	defer closer.Close()

	sessions.Logout(ctx)
	fmt.Fprintln(c.wiring.stdout, "Signed out")
	return nil
}

type WhoamiCommand struct {
	wiring commandWiring
}

func NewWhoamiCommand(wiring commandWiring) *WhoamiCommand {
	return &WhoamiCommand{wiring: wiring}
}

func (c *WhoamiCommand) Run(args []string) error {
	fs := flag.NewFlagSet("whoami", flag.ContinueOnError)
	fs.SetOutput(c.wiring.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := c.wiring.loadConfig()
	if err != nil {
		return err
	}
	ctx := context.Background()
	sessions, closer, err := c.wiring.openSessions(ctx, cfg, cliLogger(cfg, c.wiring.stderr))
	if err != nil {
		return err
	}
	defer closer.Close()

	current := sessions.Current()
	if current == nil {
		fmt.Fprintln(c.wiring.stdout, "not logged in")
		return nil
	}
	line := current.DisplayName
	if !current.LoggedInAt.IsZero() {
		line += " (since " + current.LoggedInAt.Local().Format("2006-01-02 15:04") + ")"
	}
	fmt.Fprintln(c.wiring.stdout, strings.TrimSpace(line))
	return nil
}
