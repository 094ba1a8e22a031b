package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mynaparrot/plugnmeet-tutor/helpers"
	"github.com/mynaparrot/plugnmeet-tutor/pkg/config"
	"github.com/mynaparrot/plugnmeet-tutor/pkg/factory"
	"github.com/mynaparrot/plugnmeet-tutor/pkg/logging"
	"github.com/mynaparrot/plugnmeet-tutor/version"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

func main() {
	cli.VersionPrinter = func(c *cli.Command) {
		fmt.Printf("%s\n", c.Version)
	}

	app := &cli.Command{
		Name:        "plugnmeet-tutor",
		Usage:       "Voice driven Egyptian Arabic language tutor",
		Description: "reads credentials from the environment or a .env file, the optional application file from $" + config.EnvConfigFile,
		Action:      startTutor,
		Version:     version.Version,
		// exit codes are handled below so logrus exit handlers still run
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}

	err := app.Run(context.Background(), os.Args)
	var exitErr cli.ExitCoder
	switch {
	case errors.As(err, &exitErr):
		logrus.Exit(exitErr.ExitCode())
	case err != nil:
		logrus.Fatalln(err)
	}
	logrus.Exit(0)
}

func startTutor(ctx context.Context, _ *cli.Command) error {
	envLoaded, envErr := helpers.LoadEnvFile(config.DefaultEnvFile)

	settings, err := config.LoadSettings(os.LookupEnv)
	if err != nil {
		var missing *config.MissingSettingsError
		if errors.As(err, &missing) {
			fmt.Println(missing.Report())
			return cli.Exit("", 1)
		}
		return err
	}

	appCnf, err := helpers.ReadYamlConfigFile(helpers.ConfigFilePath())
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	appCnf.Settings = settings
	appCnf.GoogleApiKey = os.Getenv(config.EnvGoogleApiKey)

	logger, err := logging.NewLogger(&appCnf.LogSettings)
	if err != nil {
		return fmt.Errorf("failed to setup logger: %w", err)
	}
	appCnf.Logger = logger

	if envErr != nil {
		logger.WithError(envErr).Warnln("could not read .env file")
	} else if !envLoaded {
		logger.Debugln("no .env file found, using the process environment")
	}

	if _, err = config.New(appCnf); err != nil {
		return err
	}

	// now prepare optional connections
	if err = helpers.PrepareServer(appCnf); err != nil {
		return err
	}
	defer helpers.HandleCloseConnections(appCnf)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appFactory, cleanup, err := factory.NewAppFactory(ctx, appCnf)
	if err != nil {
		return err
	}
	defer cleanup()

	logger.WithFields(logrus.Fields{
		"completion": appCnf.Completion.Provider,
		"synthesis":  appCnf.Synthesis.Provider,
		"language":   appCnf.Tutor.RecognitionLanguage,
	}).Infoln("starting tutor session")

	return appFactory.Run(ctx)
}
