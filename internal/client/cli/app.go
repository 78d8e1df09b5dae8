package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/postboard/internal/api"
	"github.com/dmitrijs2005/postboard/internal/client/client"
	"github.com/dmitrijs2005/postboard/internal/client/config"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// Backend is the part of client.GRPCClient the CLI uses.
type Backend interface {
	Close() error
	Ping(ctx context.Context) error
	Register(ctx context.Context, userName, password string) (string, error)
	Login(ctx context.Context, userName, password string) (string, error)
	Logout()
	LoggedIn() bool
	ListPosts(ctx context.Context) ([]*api.Post, error)
	GetPost(ctx context.Context, id int64) (*api.Post, error)
	CreatePost(ctx context.Context, fields api.PostFields) (*api.Post, error)
	UpdatePost(ctx context.Context, id int64, fields api.PostFields) (*api.Post, error)
	DeletePost(ctx context.Context, id int64) error
	PhotoUploadURL(ctx context.Context) (string, string, error)
	PhotoURL(ctx context.Context, id int64) (string, error)
}

type App struct {
	config   *config.Config
	backend  Backend
	reader   *bufio.Reader
	out      io.Writer
	userName string
	mode     atomic.Value
}

func NewApp(c *config.Config) (*App, error) {
	backend, err := client.NewGRPCClient(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		return nil, err
	}
	return newApp(c, backend, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, b Backend, in io.Reader, out io.Writer) *App {
	return &App{config: c, backend: b, reader: bufio.NewReader(in), out: out}
}

func (a *App) Mode() Mode {
	m, _ := a.mode.Load().(Mode)
	return m
}

func (a *App) setMode(mode Mode) {
	if old := a.mode.Swap(mode); old != mode {
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) isLoggedIn() bool {
	return a.backend.LoggedIn()
}

func (a *App) getStatus() string {
	s := ""
	if a.isLoggedIn() && a.userName != "" {
		s = a.userName + " "
	}
	if m := a.Mode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", strings.TrimSpace(s))
	}
	return s
}

// Run starts the online watcher and the REPL on stdin. It returns when the
// user exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	defer a.backend.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	printlnFn("Welcome to postboard CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

// StartOnlineStatusWatcher pings the server every interval and flips the
// mode shown in the prompt.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := a.backend.Ping(ctx); err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) fail(err error) error {
	printlnFn(renderError(err))
	return err
}
