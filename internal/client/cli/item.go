package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/smpn3pacet/pustaka/internal/client/models"
	"github.com/smpn3pacet/pustaka/internal/common"
	"github.com/smpn3pacet/pustaka/internal/filex"
)

// List prints a short line for each locally stored item, newest first.
// An empty (or unreadable) store prints a hint instead of nothing.
func (a *App) List(ctx context.Context) error {
	items := a.items.List(ctx)
	if len(items) == 0 {
		printlnFn("No items yet. Type 'add' to create one.")
		return nil
	}
	for _, item := range items {
		printlnFn(fmt.Sprintf("%s  %s  %s (%d files)", item.ID, item.Date, item.ActivityName, len(item.Files)))
	}
	return nil
}

// Show fetches and displays a single item by ID, including the deterministic
// download name of every attachment.
func (a *App) Show(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter item id to show", os.Stdout)
	if err != nil {
		return err
	}

	item, err := a.items.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			printlnFn("No item with that id.")
			return nil
		}
		log.Printf("error: %v", err)
		return err
	}

	printlnFn(item.ActivityName)
	printlnFn("Date: " + item.Date)
	if item.Description != "" {
		printlnFn(item.Description)
	}
	for i, f := range item.Files {
		printlnFn(fmt.Sprintf("  [%d] %s (%s) -> %s", i+1, f.Name, f.Kind, downloadNameFor(item, i)))
	}
	return nil
}

// Add collects the item fields interactively and persists a new item.
// The write is local-first: the remote push happens in the background and
// its outcome is only learned from a later refresh.
func (a *App) Add(ctx context.Context) error {
	form, err := a.inputForm(ctx, models.Form{Date: time.Now().Format("2006-01-02")})
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	item, err := a.items.Add(ctx, form)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	printlnFn("Saved " + item.ID)
	return nil
}

// Edit re-collects the fields of an existing item and replaces them.
func (a *App) Edit(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter item id to edit", os.Stdout)
	if err != nil {
		return err
	}

	current, err := a.items.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			printlnFn("No item with that id.")
			return nil
		}
		log.Printf("error: %v", err)
		return err
	}

	form, err := a.inputForm(ctx, models.Form{
		Date:         current.Date,
		ActivityName: current.ActivityName,
		Description:  current.Description,
		Files:        current.Files,
	})
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if _, err := a.items.Update(ctx, id, form); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	printlnFn("Updated " + id)
	return nil
}

// Delete prompts for the admin secret and removes an item. A wrong secret
// leaves everything unchanged.
func (a *App) Delete(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter item id to delete", os.Stdout)
	if err != nil {
		return err
	}

	secret, err := GetSecret("Enter admin secret", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.items.Delete(ctx, id, secret); err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			printlnFn("Wrong secret, nothing deleted.")
			return nil
		}
		log.Printf("error: %v", err)
		return err
	}
	printlnFn("Deleted " + id)
	return nil
}

// Sync forces a fetch/reconcile cycle right now.
func (a *App) Sync(ctx context.Context) error {
	if err := a.items.Refresh(ctx); err != nil {
		log.Printf("sync failed: %v", err)
		return err
	}
	printlnFn("Synchronized.")
	return nil
}

// Download writes every attachment of one item into the configured download
// directory under its deterministic name.
func (a *App) Download(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter item id to download", os.Stdout)
	if err != nil {
		return err
	}

	item, err := a.items.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			printlnFn("No item with that id.")
			return nil
		}
		log.Printf("error: %v", err)
		return err
	}
	if len(item.Files) == 0 {
		printlnFn("Item has no attachments.")
		return nil
	}

	for i, f := range item.Files {
		path, err := filex.SaveAttachment(a.config.DownloadDir, f, item.ActivityName, i)
		if err != nil {
			log.Printf("error saving attachment %s: %v", f.Name, err)
			return err
		}
		printlnFn("Saved " + path)
	}
	return nil
}

// inputForm interactively collects the user-editable fields, starting from
// the given defaults. An empty answer keeps the default; entering "-" for
// attachments clears them, an empty answer keeps the current set.
func (a *App) inputForm(ctx context.Context, defaults models.Form) (models.Form, error) {
	var zero models.Form

	date, err := GetSimpleText(a.reader, fmt.Sprintf("Enter date YYYY-MM-DD [%s]", defaults.Date), os.Stdout)
	if err != nil {
		return zero, err
	}
	if date == "" {
		date = defaults.Date
	}
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	name, err := GetSimpleText(a.reader, promptWithDefault("Enter activity name", defaults.ActivityName), os.Stdout)
	if err != nil {
		return zero, err
	}
	if name == "" {
		name = defaults.ActivityName
	}

	description, err := GetMultiline(a.reader, "Enter description:", os.Stdout)
	if err != nil {
		return zero, err
	}
	if description == "" {
		description = defaults.Description
	}

	paths, err := GetPaths(a.reader, os.Stdout)
	if err != nil {
		return zero, err
	}

	files := defaults.Files
	if len(paths) == 1 && paths[0] == "-" {
		files = nil
	} else if len(paths) > 0 {
		files = make([]models.Attachment, 0, len(paths))
		for _, p := range paths {
			att, err := filex.LoadAttachment(p)
			if err != nil {
				return zero, fmt.Errorf("attachment %s: %w", p, err)
			}
			files = append(files, att)
		}
	}

	return models.Form{
		Date:         date,
		ActivityName: name,
		Description:  description,
		Files:        files,
	}, nil
}

func promptWithDefault(prompt, def string) string {
	if def == "" {
		return prompt
	}
	return fmt.Sprintf("%s [%s]", prompt, def)
}

func downloadNameFor(item *models.Item, index int) string {
	// Data URLs look like "data:<mime>;base64,...". A malformed URL falls
	// through to the generic extension inside DownloadName.
	url := item.Files[index].URL
	mime := ""
	if rest, ok := strings.CutPrefix(url, "data:"); ok {
		if m, _, ok := strings.Cut(rest, ";"); ok {
			mime = m
		}
	}
	return filex.DownloadName(item.ActivityName, index, mime)
}
