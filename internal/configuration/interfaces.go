package configuration

type ConfigurationService interface {
	GetConfiguration() Configuration
}
