// Package services orchestrates the item lifecycle: optimistic local writes,
// best-effort remote pushes and the delayed fetch/reconcile cycle that keeps
// both sides convergent.
package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/smpn3pacet/pustaka/internal/client/client"
	"github.com/smpn3pacet/pustaka/internal/client/models"
	"github.com/smpn3pacet/pustaka/internal/client/repositories/items"
	"github.com/smpn3pacet/pustaka/internal/client/syncx"
	"github.com/smpn3pacet/pustaka/internal/common"
	"github.com/smpn3pacet/pustaka/internal/imagex"
	"github.com/smpn3pacet/pustaka/internal/logging"
)

// ItemService is the lifecycle controller for documentation items.
type ItemService interface {
	// List returns all locally stored items, newest first. A broken local
	// store degrades to an empty result, never an error.
	List(ctx context.Context) []*models.Item

	// Get returns one item or common.ErrNotFound.
	Get(ctx context.Context, id string) (*models.Item, error)

	// Add creates an item from the form: bounds its images, writes it
	// locally, marks it provisional, pushes best-effort and schedules a
	// delayed refresh.
	Add(ctx context.Context, form models.Form) (*models.Item, error)

	// Update replaces all user-editable fields of an existing item, with the
	// same optimistic-write protocol as Add.
	Update(ctx context.Context, id string, form models.Form) (*models.Item, error)

	// Delete removes an item after checking secret against the configured
	// admin secret; a mismatch returns common.ErrUnauthorized and leaves
	// state unchanged. The remote delete is pushed best-effort; if that push
	// is lost the item may reappear on a later refresh.
	Delete(ctx context.Context, id string, secret string) error

	// Refresh fetches the remote snapshot and reconciles it into the local
	// store. On remote failure the local store is left untouched and the
	// status turns degraded.
	Refresh(ctx context.Context) error

	// Status reports the current sync state.
	Status() Status
}

// Options tunes the lifecycle controller.
type Options struct {
	AdminSecret    string
	ProvisionalTTL time.Duration
	RefetchDelay   time.Duration
	MaxImageWidth  int
	JpegQuality    int
}

type itemService struct {
	client  client.Client
	repo    items.Repository
	tracker *syncx.Tracker
	log     logging.Logger
	opts    Options

	statusMu sync.Mutex
	status   Status

	// pushes in flight; a refresh is suppressed while non-zero so a fetch
	// cannot start before the push's effects could possibly be visible
	// remotely. One counter, not a queue: no finer-grained isolation.
	pushing atomic.Int32

	// test seams
	now       func() time.Time
	afterFunc func(d time.Duration, f func())
}

// NewItemService wires the lifecycle controller.
func NewItemService(c client.Client, repo items.Repository, log logging.Logger, opts Options) ItemService {
	return &itemService{
		client:  c,
		repo:    repo,
		tracker: syncx.NewTracker(opts.ProvisionalTTL),
		log:     log,
		opts:    opts,
		status:  StatusLoading,
		now:     time.Now,
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
}

func (s *itemService) setStatus(st Status) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status = st
}

func (s *itemService) Status() Status {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	return s.status
}

func (s *itemService) List(ctx context.Context) []*models.Item {
	list, err := s.repo.GetAll(ctx)
	if err != nil {
		// Storage trouble degrades to an empty collection; every call site
		// must tolerate an empty initial state anyway.
		s.log.Warn(ctx, "local store unavailable, serving empty collection", "error", err)
		return nil
	}
	models.SortNewestFirst(list)
	if s.Status() == StatusLoading {
		s.setStatus(StatusIdle)
	}
	return list
}

func (s *itemService) Get(ctx context.Context, id string) (*models.Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving item: %w", err)
	}
	return item, nil
}

// boundImages re-encodes image attachments so they fit the remote per-record
// ceiling. Best-effort: an image that cannot be decoded is kept as is.
func (s *itemService) boundImages(files []models.Attachment) []models.Attachment {
	out := make([]models.Attachment, len(files))
	for i, a := range files {
		if a.Kind == models.AttachmentKindImage {
			a.URL = imagex.Compress(a.URL, s.opts.MaxImageWidth, s.opts.JpegQuality)
		}
		out[i] = a
	}
	return out
}

func (s *itemService) Add(ctx context.Context, form models.Form) (*models.Item, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	form.Files = s.boundImages(form.Files)

	item := models.NewItem(form, s.now())
	if err := s.repo.UpsertAll(ctx, []*models.Item{item}); err != nil {
		return nil, fmt.Errorf("saving error: %w", err)
	}

	s.tracker.Mark(item.ID)
	s.pushAndScheduleRefresh(ctx, client.ActionAdd, item)
	return item, nil
}

func (s *itemService) Update(ctx context.Context, id string, form models.Form) (*models.Item, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving item: %w", err)
	}

	form.Files = s.boundImages(form.Files)
	item.Apply(form)

	if err := s.repo.UpsertAll(ctx, []*models.Item{item}); err != nil {
		return nil, fmt.Errorf("saving error: %w", err)
	}

	s.tracker.Mark(item.ID)
	s.pushAndScheduleRefresh(ctx, client.ActionUpdate, item)
	return item, nil
}

func (s *itemService) Delete(ctx context.Context, id string, secret string) error {
	if secret != s.opts.AdminSecret {
		return common.ErrUnauthorized
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("error deleting item: %w", err)
	}
	s.tracker.Clear(id)

	// No provisional protection for deletes: absence cannot be raced the same
	// way. A lost push means the item reappears on the next refresh.
	s.push(ctx, client.ActionDelete, &models.Item{ID: id})
	return nil
}

// push sends one mutation and treats the outcome as unknown: a transport
// error is logged as unconfirmed, never rolled back, because the next
// refresh reconciles the truth either way.
func (s *itemService) push(ctx context.Context, action client.Action, item *models.Item) {
	s.pushing.Add(1)
	defer s.pushing.Add(-1)

	if err := s.client.Push(ctx, action, item); err != nil {
		s.log.Warn(ctx, "push unconfirmed", "action", action, "id", item.ID, "error", err)
	}
}

func (s *itemService) pushAndScheduleRefresh(ctx context.Context, action client.Action, item *models.Item) {
	s.push(ctx, action, item)

	s.afterFunc(s.opts.RefetchDelay, func() {
		rctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := s.Refresh(rctx); err != nil {
			s.log.Warn(rctx, "delayed refresh failed", "error", err)
		}
	})
}

func (s *itemService) Refresh(ctx context.Context) error {
	if s.pushing.Load() > 0 {
		// A fetch started now could not observe the in-flight push anyway.
		s.log.Info(ctx, "refresh suppressed, push in flight")
		return nil
	}

	s.setStatus(StatusSyncing)

	remote, err := s.client.FetchAll(ctx)
	if err != nil {
		// Local store stays untouched; keep operating from it.
		s.setStatus(StatusDegraded)
		return fmt.Errorf("remote read failed: %w", err)
	}

	local, err := s.repo.GetAll(ctx)
	if err != nil {
		s.log.Warn(ctx, "local store unavailable during refresh", "error", err)
		local = nil
	}

	s.tracker.Sweep()
	merged := syncx.Merge(remote, local, s.tracker.IsProvisional)

	if err := s.repo.UpsertAll(ctx, merged); err != nil {
		s.setStatus(StatusDegraded)
		return fmt.Errorf("error storing merged collection: %w", err)
	}

	// Ids the remote now contains are confirmed; their marks can go early.
	for _, item := range remote {
		s.tracker.Clear(item.ID)
	}

	s.setStatus(StatusIdle)
	return nil
}
