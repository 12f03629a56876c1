package ui

import (
	"context"
	"errors"
	"strings"

	"payhub/internal/client"
)

type SettingsForm struct {
	CurrentPassword string
	NewUsername     string
	NewPassword     string
	ConfirmPassword string
}

// SettingsController updates the admin credentials. Fields left blank are
// dropped from the request payload entirely, so the server sees only the
// credentials actually being changed.
type SettingsController struct {
	Client *client.Client
}

func (c *SettingsController) Submit(ctx context.Context, form SettingsForm) (string, error) {
	if form.CurrentPassword == "" {
		return "", errors.New("Current password is required")
	}
	// Mismatched passwords never reach the network.
	if form.NewPassword != form.ConfirmPassword {
		return "", errors.New("New passwords do not match")
	}

	update := client.CredentialsUpdate{
		CurrentPassword: form.CurrentPassword,
		NewUsername:     strings.TrimSpace(form.NewUsername),
		NewPassword:     form.NewPassword,
	}

	msg, err := c.Client.UpdateCredentials(ctx, update)
	if err != nil {
		return "", err
	}
	return msg.Message, nil
}
