package main

import (
	"errors"

	"github.com/joblify/employer-console/internal/api"
	"github.com/joblify/employer-console/internal/dashboard"
)

var errNotLoggedIn = errors.New("not logged in: run 'joblify login' first")

// screenError is a view that rendered with an error panel.
type screenError string

func (e screenError) Error() string { return string(e) }

// userError converts err into the message shown on the terminal. An API
// rejection of the stored token asks for a new login.
func userError(err error) error {
	if err == nil {
		return nil
	}
	if api.IsUnauthorized(err) {
		return errors.New(dashboard.Message(err) + ": run 'joblify login' again")
	}
	return errors.New(dashboard.Message(err))
}
