package factory

import (
	"context"

	"github.com/mynaparrot/plugnmeet-tutor/pkg/config"
	"github.com/mynaparrot/plugnmeet-tutor/pkg/session"
)

// Application is the root struct holding all dependencies.
type Application struct {
	AppConfig *config.AppConfig
	Loop      *session.Loop
}

// Run blocks until the learner ends the session or ctx is cancelled.
func (a *Application) Run(ctx context.Context) error {
	return a.Loop.Run(ctx)
}
