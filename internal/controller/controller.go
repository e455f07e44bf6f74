package controller

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/lectio/internal/form"
	"github.com/five82/lectio/internal/guideapi"
	"github.com/five82/lectio/internal/selection"
	"github.com/five82/lectio/internal/source"
	"github.com/five82/lectio/internal/submit"
)

// Generator is the backend call a submission needs.
type Generator interface {
	Generate(ctx context.Context, req guideapi.GenerateRequest) (guideapi.GenerateResponse, error)
}

var _ Generator = (*guideapi.Client)(nil)

// Options configures a Controller.
type Options struct {
	Generator Generator
	Source    source.Adapter
	Logger    *zap.Logger
}

// Controller is the single owner of the selection, form and pipeline state.
type Controller struct {
	gen    Generator
	src    source.Adapter
	logger *zap.Logger

	sel    selection.State
	fields form.Fields
	pipe   submit.Pipeline
}

// New builds a Controller with an empty selection and a reset form.
func New(opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		gen:    opts.Generator,
		src:    opts.Source,
		logger: logger,
	}
}

// Source returns the adapter the controller browses with.
func (c *Controller) Source() source.Adapter { return c.src }

// Fields returns the current form values.
func (c *Controller) Fields() form.Fields { return c.fields }

// SetTitle records the series title.
func (c *Controller) SetTitle(title string) { c.fields.SeriesTitle = title }

// SetAudience records the target audience.
func (c *Controller) SetAudience(a form.Audience) { c.fields.Audience = a }

// SetModel records the model choice.
func (c *Controller) SetModel(m form.Model) { c.fields.Model = m }

// SubmitEnabled is the form gate for the current state.
func (c *Controller) SubmitEnabled() bool {
	return !c.pipe.Busy() && c.fields.Gate(c.sel.Len())
}

// Selection returns a copy of the selected files in display order.
func (c *Controller) Selection() []guideapi.DriveFile { return c.sel.Files() }

// FileIDs returns the comma-joined ids that would be submitted now.
func (c *Controller) FileIDs() string { return c.sel.Joined() }

// Display is the render model of the selected files.
func (c *Controller) Display() selection.Display { return c.sel.Display() }

// Phase is the pipeline state.
func (c *Controller) Phase() submit.Phase { return c.pipe.Phase() }

// Busy reports whether the busy indicator should be shown.
func (c *Controller) Busy() bool { return c.pipe.Busy() }

// Outcome is the result shown on the terminal surface.
func (c *Controller) Outcome() submit.Outcome { return c.pipe.Outcome() }

// Remove drops the chip at index.
func (c *Controller) Remove(index int) error {
	if err := c.sel.Remove(index); err != nil {
		return err
	}
	c.logger.Debug("file removed", zap.Int("index", index), zap.Int("selected", c.sel.Len()))
	return nil
}

// Clear empties the selection.
func (c *Controller) Clear() { c.sel.Clear() }

// Reset clears the selection and every form field.
func (c *Controller) Reset() {
	c.sel.Clear()
	c.fields = form.Fields{}
}

// Fetch lists candidates for the browse overlay.
type Fetch func(ctx context.Context) (source.Candidate, error)

// Browse captures the current selection and returns the listing to run off
// the event loop. A picker that is still initialising yields a notice and no
// fetch.
func (c *Controller) Browse() (Fetch, Notice) {
	if c.src == nil {
		return nil, failure(prefixListFailure + "no file source configured")
	}
	if !c.src.Ready() {
		return nil, NoticeFor(source.ErrNotReady)
	}
	src := c.src
	ids := c.sel.IDs()
	return func(ctx context.Context) (source.Candidate, error) {
		return src.Candidates(ctx, ids)
	}, Notice{}
}

// Opened folds a listing result back in. When the returned notice is empty
// the candidate should be shown; otherwise the notice replaces the overlay.
func (c *Controller) Opened(cand source.Candidate, err error) (source.Candidate, Notice) {
	if err != nil {
		c.logger.Warn("list candidates failed", zap.String("source", string(c.sourceKind())), zap.Error(err))
		return source.Candidate{}, NoticeFor(err)
	}
	if cand.Empty() {
		return source.Candidate{}, info(MsgNoFiles)
	}
	c.logger.Debug("candidates listed", zap.String("source", string(cand.Kind)), zap.Int("count", len(cand.Files)))
	return cand, Notice{}
}

// Open runs Browse and Opened synchronously.
func (c *Controller) Open(ctx context.Context) (source.Candidate, Notice) {
	fetch, notice := c.Browse()
	if fetch == nil {
		return source.Candidate{}, notice
	}
	cand, err := fetch(ctx)
	return c.Opened(cand, err)
}

// ConfirmModal applies a checklist confirmation. checked holds indices into
// cand.Files. Zero or more than selection.MaxFiles checked files is rejected
// with a *selection.ValidationError and the selection is left unchanged.
func (c *Controller) ConfirmModal(cand source.Candidate, checked []int) (Notice, error) {
	files := make([]guideapi.DriveFile, 0, len(checked))
	seen := make(map[int]bool, len(checked))
	for _, i := range checked {
		if i < 0 || i >= len(cand.Files) {
			return Notice{}, fmt.Errorf("confirm: index %d out of range [0,%d)", i, len(cand.Files))
		}
		if seen[i] {
			continue
		}
		seen[i] = true
		files = append(files, cand.Files[i])
	}
	if err := validateCount(len(files)); err != nil {
		return NoticeFor(err), err
	}
	if err := c.sel.Replace(files); err != nil {
		return NoticeFor(err), err
	}
	c.logger.Info("selection replaced", zap.String("source", string(source.KindModal)), zap.Int("selected", c.sel.Len()))
	return Notice{}, nil
}

// ApplyPicked applies a picker result. More than selection.MaxFiles files are
// cut to the first ones in picker order and the returned notice says so. The
// kept files replace the selection unconditionally. An empty pick is a
// cancel.
func (c *Controller) ApplyPicked(files []guideapi.DriveFile) Notice {
	if len(files) == 0 {
		return Notice{}
	}
	kept, capErr := selection.Truncate(files, selection.MaxFiles)
	if err := c.sel.Replace(kept); err != nil {
		// Truncate already bounds the count, so only a logic error lands here.
		c.logger.Error("apply picked files", zap.Error(err))
		return NoticeFor(err)
	}
	c.logger.Info("selection replaced",
		zap.String("source", string(source.KindPicker)),
		zap.Int("picked", len(files)),
		zap.Int("selected", c.sel.Len()),
	)
	if capErr != nil {
		return NoticeFor(capErr)
	}
	return Notice{}
}

// SelectByID replaces the selection with the files whose ids are given, in
// modal semantics. It backs headless submission.
func (c *Controller) SelectByID(files []guideapi.DriveFile) error {
	if err := validateCount(len(files)); err != nil {
		return err
	}
	return c.sel.Replace(files)
}

func validateCount(n int) error {
	switch {
	case n == 0:
		return &selection.ValidationError{Checked: n, Reason: MsgSelectOne}
	case n > selection.MaxFiles:
		return &selection.ValidationError{Checked: n, Reason: MsgTooMany}
	}
	return nil
}

// Send performs a prepared generation request.
type Send func(ctx context.Context) (guideapi.GenerateResponse, error)

// BeginSubmit enters Submitting and returns the request to run off the event
// loop. It fails with form.ErrIncomplete when the gate is closed and with
// submit.ErrInFlight or submit.ErrNotIdle when the pipeline is not idle.
func (c *Controller) BeginSubmit() (Send, error) {
	if c.gen == nil {
		return nil, fmt.Errorf("submit: no backend configured")
	}
	if c.pipe.Phase() != submit.PhaseIdle {
		return nil, c.pipe.Begin()
	}
	snap, err := form.NewSnapshot(c.fields, c.sel.IDs())
	if err != nil {
		return nil, err
	}
	if err := c.pipe.Begin(); err != nil {
		return nil, err
	}
	req := snap.Request()
	gen := c.gen
	c.logger.Info("submission started",
		zap.String("series_title", req.SeriesTitle),
		zap.String("model", req.Model),
		zap.Int("files", len(req.FileIDs)),
	)
	return func(ctx context.Context) (guideapi.GenerateResponse, error) {
		return gen.Generate(ctx, req)
	}, nil
}

// FinishSubmit routes the backend answer to Success or Failure.
func (c *Controller) FinishSubmit(resp guideapi.GenerateResponse, err error) submit.Outcome {
	out := c.pipe.Complete(resp, err)
	switch out.Phase {
	case submit.PhaseSuccess:
		c.logger.Info("submission succeeded", zap.String("file_url", out.FileURL), zap.String("filename", out.Filename))
	case submit.PhaseFailure:
		c.logger.Warn("submission failed", zap.String("message", out.Message), zap.Error(err))
	}
	return out
}

// Submit runs BeginSubmit, the request and FinishSubmit synchronously.
func (c *Controller) Submit(ctx context.Context) (submit.Outcome, error) {
	send, err := c.BeginSubmit()
	if err != nil {
		return submit.Outcome{}, err
	}
	resp, err := send(ctx)
	return c.FinishSubmit(resp, err), nil
}

// Dismiss closes the success or error surface. Either way the selection and
// form are reset. It does nothing while a submission is in flight.
func (c *Controller) Dismiss() {
	switch c.pipe.Phase() {
	case submit.PhaseSuccess, submit.PhaseFailure:
		c.pipe.Dismiss()
		c.Reset()
	}
}

func (c *Controller) sourceKind() source.Kind {
	if c.src == nil {
		return ""
	}
	return c.src.Kind()
}
