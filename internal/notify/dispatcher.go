package notify

import (
	"context"
	"fmt"

	"careers-api/internal/models"
)

// Dispatcher maps application events to email templates and hands them to
// the mailer. It keeps the scoring/status engine free of any knowledge of
// templates or the mail provider.
type Dispatcher struct {
	mailer Mailer
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(mailer Mailer) *Dispatcher {
	return &Dispatcher{mailer: mailer}
}

// ApplicationReceived sends the submission acknowledgment.
func (d *Dispatcher) ApplicationReceived(ctx context.Context, app *models.Application) error {
	return d.mailer.Send(ctx, app.Email, TemplateReceived, "")
}

// StatusChanged dispatches the template matching the new status. The
// revision note is interpolated into the needs-revision body. Transitions
// with no template (back to under_review) are a no-op.
func (d *Dispatcher) StatusChanged(ctx context.Context, app *models.Application, change models.StatusChange) error {
	tpl, ok := TemplateForStatus(change.Status)
	if !ok {
		return nil
	}
	if app.Email == "" {
		return fmt.Errorf("application %s has no email address", app.ID)
	}
	return d.mailer.Send(ctx, app.Email, tpl, change.Note)
}
