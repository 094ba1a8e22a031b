//go:build wireinject
// +build wireinject

package factory

import (
	"context"

	"github.com/google/wire"
	"github.com/mynaparrot/plugnmeet-tutor/pkg/config"
	"github.com/mynaparrot/plugnmeet-tutor/pkg/dialogue"
)

// build the dependency set for the speech and completion providers
var providerSet = wire.NewSet(
	provideSpeechInput,
	provideSpeechOutput,
	provideCompletionBackend,
)

// build the dependency set for the dialogue core
var dialogueSet = wire.NewSet(
	provideWindow,
	dialogue.NewEngine,
	provideTurnObserver,
	provideLoop,
)

// NewAppFactory is the injector function that wire will implement.
func NewAppFactory(ctx context.Context, appConfig *config.AppConfig) (*Application, func(), error) {
	wire.Build(
		provideLogger,
		providerSet,
		dialogueSet,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil, nil // This return value is ignored.
}
