package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/postboard/internal/api"
)

var (
	errNotLoggedIn = errors.New("login required")
	errUsage       = errors.New("usage: <command> <id>")
)

func parseID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid post id %q", args[0])
	}
	return id, nil
}

func (a *App) List(ctx context.Context) error {
	posts, err := a.backend.ListPosts(ctx)
	if err != nil {
		return a.fail(err)
	}
	if len(posts) == 0 {
		printlnFn("No posts yet")
		return nil
	}
	for _, p := range posts {
		printlnFn(renderPostRow(p))
	}
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return a.fail(err)
	}
	p, err := a.backend.GetPost(ctx, id)
	if err != nil {
		return a.fail(err)
	}
	printlnFn(renderPost(p))
	return nil
}

// readFields prompts for every editable field. Empty answers become null.
func (a *App) readFields() (api.PostFields, error) {
	var f api.PostFields

	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return f, err
	}
	description, err := getSimpleText(a.reader, "Description", a.out)
	if err != nil {
		return f, err
	}
	photo, err := getSimpleText(a.reader, "Photo key (empty for none)", a.out)
	if err != nil {
		return f, err
	}

	f.Title = optional(title)
	f.Description = optional(description)
	f.Photo = optional(photo)
	return f, nil
}

func (a *App) Create(ctx context.Context) error {
	if !a.isLoggedIn() {
		return a.fail(errNotLoggedIn)
	}
	fields, err := a.readFields()
	if err != nil {
		return a.fail(err)
	}
	p, err := a.backend.CreatePost(ctx, fields)
	if err != nil {
		return a.fail(err)
	}
	printlnFn(fmt.Sprintf("Created post #%d", p.ID))
	return nil
}

func (a *App) Update(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		return a.fail(errNotLoggedIn)
	}
	id, err := parseID(args)
	if err != nil {
		return a.fail(err)
	}
	fields, err := a.readFields()
	if err != nil {
		return a.fail(err)
	}
	p, err := a.backend.UpdatePost(ctx, id, fields)
	if err != nil {
		return a.fail(err)
	}
	printlnFn(renderPost(p))
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		return a.fail(errNotLoggedIn)
	}
	id, err := parseID(args)
	if err != nil {
		return a.fail(err)
	}
	if err := a.backend.DeletePost(ctx, id); err != nil {
		return a.fail(err)
	}
	printlnFn(fmt.Sprintf("Deleted post #%d", id))
	return nil
}

func (a *App) Photo(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return a.fail(err)
	}
	url, err := a.backend.PhotoURL(ctx, id)
	if err != nil {
		return a.fail(err)
	}
	printlnFn(url)
	return nil
}

// Upload prints a photo key with its presigned PUT link. If the user names a
// local file it is uploaded right away.
func (a *App) Upload(ctx context.Context) error {
	if !a.isLoggedIn() {
		return a.fail(errNotLoggedIn)
	}
	key, url, err := a.backend.PhotoUploadURL(ctx)
	if err != nil {
		return a.fail(err)
	}

	path, err := getSimpleText(a.reader, "Local file to upload (empty to skip)", a.out)
	if err != nil {
		return a.fail(err)
	}
	if path == "" {
		printlnFn(keyStyle.Render("key") + key)
		printlnFn(keyStyle.Render("upload url") + url)
		return nil
	}

	if err := uploadFile(ctx, url, path); err != nil {
		return a.fail(err)
	}
	printlnFn(fmt.Sprintf("Uploaded, use photo key %s", key))
	return nil
}
