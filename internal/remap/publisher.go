package remap

import (
	"context"
	"errors"

	"issuecfg/internal/model"

	"github.com/golang/glog"
)

var ErrPublishInFlight = errors.New("publish already in progress")

// Operation is the single write boundary of the publisher.
type Operation interface {
	Publish(ctx context.Context, org model.OrgContext, schemeID string, changes []model.TypeChange) error
}

// OperationFunc adapts a function to Operation.
type OperationFunc func(ctx context.Context, org model.OrgContext, schemeID string, changes []model.TypeChange) error

func (f OperationFunc) Publish(ctx context.Context, org model.OrgContext, schemeID string, changes []model.TypeChange) error {
	return f(ctx, org, schemeID, changes)
}

// Request is a publish that has been started with Begin and not yet finished.
type Request struct {
	Org      model.OrgContext
	SchemeID string
	Changes  []model.TypeChange
}

// Publisher holds the state of the publish sidebar: the groups on display, the
// operator's overrides, visibility and the in-flight flag.
//
// A Publisher is owned by one goroutine (the UI loop). Asynchronous callers run
// the operation elsewhere and report back through Finish on the owning goroutine.
type Publisher struct {
	op      Operation
	refresh func()

	groups    []model.TypeGroup
	overrides Overrides
	visible   bool
	loading   bool
	inFlight  bool
}

// NewPublisher returns a hidden publisher. refresh may be nil.
func NewPublisher(op Operation, refresh func()) *Publisher {
	return &Publisher{op: op, refresh: refresh, overrides: Overrides{}}
}

// Open shows the sidebar with groups. Overrides from a previous, unfinished
// session are kept only if the sidebar was never closed.
func (p *Publisher) Open(groups []model.TypeGroup) {
	p.groups = append([]model.TypeGroup(nil), groups...)
	p.visible = true
	p.loading = false
}

// Close hides the sidebar and discards all overrides.
func (p *Publisher) Close() {
	p.visible = false
	p.loading = false
	p.overrides = Overrides{}
}

func (p *Publisher) Visible() bool { return p.visible }

func (p *Publisher) SetLoading(loading bool) { p.loading = loading }

func (p *Publisher) Loading() bool { return p.loading }

func (p *Publisher) InFlight() bool { return p.inFlight }

func (p *Publisher) Groups() []model.TypeGroup {
	return append([]model.TypeGroup(nil), p.groups...)
}

// Overrides returns a copy of the current overrides.
func (p *Publisher) Overrides() Overrides { return p.overrides.Clone() }

func (p *Publisher) SetOverride(sourceStatusID, targetStatusID string) {
	p.overrides.Set(sourceStatusID, targetStatusID)
}

// Selected returns the target a selector shows for one change item.
func (p *Publisher) Selected(g model.TypeGroup, it model.StatusChangeItem) (model.StatusRef, error) {
	return ResolveTarget(g, it, p.overrides)
}

// ChangeSet builds the change-set for the current groups and overrides.
func (p *Publisher) ChangeSet() ([]model.TypeChange, error) {
	return BuildChangeSet(p.groups, p.overrides)
}

// Begin builds the change-set and marks a request in flight.
func (p *Publisher) Begin(org model.OrgContext, schemeID string) (Request, error) {
	if p.inFlight {
		return Request{}, ErrPublishInFlight
	}
	changes, err := p.ChangeSet()
	if err != nil {
		return Request{}, err
	}
	p.inFlight = true
	return Request{Org: org, SchemeID: schemeID, Changes: changes}, nil
}

// Run sends req to the operation. It touches no publisher state and may run on
// any goroutine.
func (p *Publisher) Run(ctx context.Context, req Request) error {
	return p.op.Publish(ctx, req.Org, req.SchemeID, req.Changes)
}

// Finish records the outcome of the request started by Begin. On success the
// overrides are cleared, the sidebar is hidden and refresh is called once. On
// failure everything is left as it was so the operator can retry.
func (p *Publisher) Finish(err error) error {
	p.inFlight = false
	if err != nil {
		glog.Warningf("remap: publish failed: %v", err)
		return err
	}
	p.overrides = Overrides{}
	p.visible = false
	if p.refresh != nil {
		p.refresh()
	}
	return nil
}

// Publish runs a whole publish synchronously.
func (p *Publisher) Publish(ctx context.Context, org model.OrgContext, schemeID string) error {
	req, err := p.Begin(org, schemeID)
	if err != nil {
		return err
	}
	glog.V(1).Infof("remap: publishing scheme %s (%d types, %d changes)", schemeID, len(req.Changes), CountChanges(req.Changes))
	return p.Finish(p.Run(ctx, req))
}
