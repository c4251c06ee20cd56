// Package lifecycle starts and stops long-lived components in order.
package lifecycle

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Component interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Runtime starts components in registration order and stops them in reverse.
// A failed Start rolls back the components that already came up.
type Runtime struct {
	components []Component
	logger     *log.Entry
	started    int
}

func NewRuntime(components ...Component) *Runtime {
	r := &Runtime{logger: log.WithField("context", "lifecycle")}
	for _, component := range components {
		r.Register(component)
	}
	return r
}

func (r *Runtime) Register(component Component) {
	if component == nil {
		return
	}
	r.components = append(r.components, component)
}

func (r *Runtime) Start(ctx context.Context) error {
	for i, component := range r.components {
		if err := component.Start(ctx); err != nil {
			r.started = i
			if stopErr := r.Stop(ctx); stopErr != nil {
				r.logger.WithError(stopErr).Error("rollback after failed start")
			}
			return pkgerrors.Wrap(err, "start component")
		}
	}
	r.started = len(r.components)
	return nil
}

// Stop shuts the started components down in reverse order. Every component
// gets its Stop called even when an earlier one fails; errors are joined.
func (r *Runtime) Stop(ctx context.Context) error {
	var stopErr error
	for i := r.started - 1; i >= 0; i-- {
		if err := r.components[i].Stop(ctx); err != nil {
			stopErr = errors.Join(stopErr, pkgerrors.Wrap(err, "stop component"))
		}
	}
	r.started = 0
	return stopErr
}
