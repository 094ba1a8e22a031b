package helpers

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/mynaparrot/plugnmeet-tutor/pkg/config"
	natsservice "github.com/mynaparrot/plugnmeet-tutor/pkg/services/nats"
	"gopkg.in/yaml.v3"
)

// LoadEnvFile adds the variables of filename to the process environment.
// Variables already set are kept. A missing file is not an error.
func LoadEnvFile(filename string) (bool, error) {
	err := godotenv.Load(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

// ConfigFilePath returns the application file named by TUTOR_CONFIG_FILE.
func ConfigFilePath() string {
	if p := os.Getenv(config.EnvConfigFile); p != "" {
		return p
	}
	return config.DefaultConfigFile
}

// ReadYamlConfigFile reads the application file. When the file does not
// exist an empty configuration is returned so defaults apply.
func ReadYamlConfigFile(cnfFile string) (*config.AppConfig, error) {
	return readYaml(cnfFile)
}

func readYaml(filename string) (*config.AppConfig, error) {
	appCnf := new(config.AppConfig)

	yamlFile, err := os.ReadFile(filename)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err = yaml.Unmarshal(yamlFile, appCnf); err != nil {
			return nil, err
		}
	}

	// get current working dir
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	appCnf.RootWorkingDir = wd

	return appCnf, nil
}

// PrepareServer opens the optional connections before the factory runs.
func PrepareServer(appCnf *config.AppConfig) error {
	if !appCnf.NatsInfo.Enabled() {
		return nil
	}

	nc, err := natsservice.NewNatsConnection(&appCnf.NatsInfo, appCnf.Logger)
	if err != nil {
		return err
	}
	appCnf.NatsConn = nc

	return nil
}
