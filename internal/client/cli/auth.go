package cli

import (
	"context"
	"errors"
)

var errEmptyCredentials = errors.New("user name and password are required")

type authFunc func(ctx context.Context, userName, password string) (string, error)

func (a *App) Register(ctx context.Context) error {
	return a.authenticate(ctx, a.backend.Register)
}

func (a *App) Login(ctx context.Context) error {
	return a.authenticate(ctx, a.backend.Login)
}

func (a *App) authenticate(ctx context.Context, call authFunc) error {
	userName, err := getSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return a.fail(err)
	}

	password, err := getPassword(a.out)
	if err != nil {
		return a.fail(err)
	}

	if userName == "" || len(password) == 0 {
		return a.fail(errEmptyCredentials)
	}

	msg, err := call(ctx, userName, string(password))
	if err != nil {
		return a.fail(err)
	}

	a.userName = userName
	printlnFn(msg)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.backend.Logout()
	a.userName = ""
	printlnFn("Logged out")
	return nil
}
