package events

import (
	"context"
	"errors"

	"github.com/simaogato/invoicedesk-backend/internal/domain"
)

// Fanout forwards each event to every publisher, in order, and joins their
// errors. One failing publisher does not stop the others.
type Fanout []domain.EventPublisher

// PublishDepositCreated implements domain.EventPublisher
func (f Fanout) PublishDepositCreated(ctx context.Context, event domain.DepositCreated) error {
	var errs []error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.PublishDepositCreated(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
