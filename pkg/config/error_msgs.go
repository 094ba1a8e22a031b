package config

const (
	MissingSettingsHeader = "Error: The following environment variables are missing:"
	MissingSettingsFooter = "Please add them to your .env file."
)
