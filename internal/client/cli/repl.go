package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Create(ctx context.Context) error
	Update(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Photo(ctx context.Context, args []string) error
	Upload(ctx context.Context) error
}

// runREPL reads commands from reader until EOF, "exit" or "quit".
//
//	help                 show available commands
//	register | login     authenticate
//	logout               forget the token
//	(l)ist               list all posts
//	show <id>            show one post
//	create               create a post
//	update <id>          replace a post's fields
//	delete <id>          delete a post
//	photo <id>           print a download link for a post's photo
//	upload               request a photo upload link
//
// Command errors are printed by the commands themselves; the loop keeps going.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("pb %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, show <id>, create, update <id>, delete <id>, photo <id>, upload, logout, exit")
			} else {
				printlnFn("Available commands: (l)ist, show <id>, photo <id>, register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "show":
			_ = a.Show(ctx, args)

		case "create":
			_ = a.Create(ctx)

		case "update":
			_ = a.Update(ctx, args)

		case "delete":
			_ = a.Delete(ctx, args)

		case "photo":
			_ = a.Photo(ctx, args)

		case "upload":
			_ = a.Upload(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
