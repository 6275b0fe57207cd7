package control

import "net/url"

const (
	RouteRoot         = "/"
	RouteIndex        = "/index.html"
	RouteWiFiConfig   = "/wifi"
	RouteBrokerConfig = "/mqtt"
	RouteStore        = "/store"
	RouteReboot       = "/reboot"
	RouteData         = "/data"

	// RebootArg on a store request tells the operator the change needs a restart.
	RebootArg = "reboot"

	contentTypeJSON = "application/json"
	contentTypeText = "text/plain"
)

type Request struct {
	Route string
	Args  url.Values

	reply chan Response
}

type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// Status is the derived device state shown to operators.
type Status struct {
	Temperature     float64 // NaN when the sensor read failed
	NetworkState    string
	NetworkMode     string
	BrokerState     string
	BrokerConnected bool
	BootID          string
}

// Data is the machine-readable status record.
type Data struct {
	Temp          *float64 `json:"temp"`
	WiFiMode      string   `json:"wifimode"`
	MQTTConnected bool     `json:"mqttconnected"`
}

type StatusPage struct {
	Data
	Network  string            `json:"network"`
	Broker   string            `json:"broker"`
	Boot     string            `json:"boot"`
	Settings map[string]string `json:"settings"`
}

type FormField struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	MaxLength int    `json:"maxlength"`
	Secret    bool   `json:"secret,omitempty"`
}

type FormPage struct {
	Title  string      `json:"title"`
	Action string      `json:"action"`
	Fields []FormField `json:"fields"`
	Reboot string      `json:"reboot"`
}

type StoreResult struct {
	Stored         bool     `json:"stored"`
	RebootRequired bool     `json:"reboot_required"`
	Ignored        []string `json:"ignored,omitempty"`
	Error          string   `json:"error,omitempty"`
}
