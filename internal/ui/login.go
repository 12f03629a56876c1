package ui

import (
	"context"
	"errors"

	"payhub/internal/client"
)

// LoginController signs the admin in and out, persisting the outcome in the
// session store.
type LoginController struct {
	Client  *client.Client
	Session *client.SessionStore
}

func (c *LoginController) SignIn(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return errors.New("Username and password are required")
	}

	result, err := c.Client.Login(ctx, username, password)
	if err != nil {
		return err
	}
	return c.Session.Save(client.Session{Token: result.Token, Username: result.Username})
}

func (c *LoginController) SignOut() error {
	return c.Session.Clear()
}
