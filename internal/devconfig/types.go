package devconfig

const (
	// MaxFieldLength is the slot width of every string field.
	MaxFieldLength = 32

	DefaultBrokerPort     uint16 = 1883
	DefaultBrokerClientID        = "ESP_Relay"
	DefaultBrokerTopic           = "/Relay"

	FormTag = "form"
)

// Control field names, as posted by the configuration forms.
const (
	FieldNetworkName     = "ssid"
	FieldNetworkSecret   = "pass"
	FieldResolutionLabel = "domain"
	FieldBrokerAddress   = "server"
	FieldBrokerPort      = "port"
	FieldBrokerUser      = "user"
	FieldBrokerSecret    = "mqttpswd"
	FieldBrokerClientID  = "client"
	FieldBrokerTopic     = "topic"
)

// Config is the device configuration kept in the persistence region.
type Config struct {
	NetworkName     string `form:"ssid"`
	NetworkSecret   string `form:"pass"`
	ResolutionLabel string `form:"domain"`
	BrokerAddress   string `form:"server"`
	BrokerPort      uint16 `form:"port"`
	BrokerUser      string `form:"user"`
	BrokerSecret    string `form:"mqttpswd"`
	BrokerClientID  string `form:"client"`
	BrokerTopic     string `form:"topic"`
}
