package app

import (
	"errors"

	"github.com/dshills/delegator/internal/dom"
)

// Fire triggers each event:id target in order. A panicking listener stops
// only its own firing; the remaining targets still run. Errors are joined.
func (a *Application) Fire(targets []string) error {
	if a.closed {
		return ErrClosed
	}
	var errs []error
	for _, t := range targets {
		name, id, err := ParseTarget(t)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := a.FireOne(name, id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// FireOne triggers name at the element with id and recovers a listener
// panic as a *ListenerPanicError.
func (a *Application) FireOne(name, id string) (err error) {
	el, err := a.doc.ElementByID(id)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			err = &ListenerPanicError{Event: name, Target: id, Value: r}
			a.logger.Error().Err(err).Msg("firing aborted")
		}
	}()
	return dom.Trigger(name, el)
}
