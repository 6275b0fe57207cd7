package control

import (
	"encoding/json"
	"math"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/supby/relay2mqtt/internal/devconfig"
)

const portMaxLength = 5

func data(s Status) Data {
	d := Data{
		WiFiMode:      s.NetworkMode,
		MQTTConnected: s.BrokerConnected,
	}

	// encoding/json cannot carry NaN; a failed read is reported as null.
	if !math.IsNaN(s.Temperature) {
		t := s.Temperature
		d.Temp = &t
	}

	return d
}

func statusPage(now time.Time, core Core) StatusPage {
	s := core.Status(now)
	cfg := core.Configuration()

	settings := cfg.Values()
	delete(settings, devconfig.FieldNetworkSecret)
	delete(settings, devconfig.FieldBrokerSecret)

	return StatusPage{
		Data:     data(s),
		Network:  s.NetworkState,
		Broker:   s.BrokerState,
		Boot:     s.BootID,
		Settings: settings,
	}
}

func wifiForm(cfg devconfig.Config) FormPage {
	values := cfg.Values()

	return FormPage{
		Title:  "WiFi Setup",
		Action: RouteStore,
		Fields: []FormField{
			textField(values, devconfig.FieldNetworkName),
			secretField(values, devconfig.FieldNetworkSecret),
			textField(values, devconfig.FieldResolutionLabel),
		},
		Reboot: "1",
	}
}

func brokerForm(cfg devconfig.Config) FormPage {
	values := cfg.Values()

	port := textField(values, devconfig.FieldBrokerPort)
	port.MaxLength = portMaxLength

	return FormPage{
		Title:  "MQTT Setup",
		Action: RouteStore,
		Fields: []FormField{
			textField(values, devconfig.FieldBrokerAddress),
			port,
			textField(values, devconfig.FieldBrokerUser),
			secretField(values, devconfig.FieldBrokerSecret),
			textField(values, devconfig.FieldBrokerClientID),
			textField(values, devconfig.FieldBrokerTopic),
		},
		Reboot: "0",
	}
}

func textField(values map[string]string, name string) FormField {
	return FormField{
		Name:      name,
		Value:     values[name],
		MaxLength: devconfig.MaxFieldLength,
	}
}

func secretField(values map[string]string, name string) FormField {
	f := textField(values, name)
	f.Secret = true
	return f
}

// store applies the posted fields and persists the result. When persisting
// fails the previous configuration is put back.
func (i *Interface) store(core Core, args url.Values) Response {
	i.logger.Info("/store(%v)", describeArgs(args))

	updates := url.Values{}
	for name, vs := range args {
		if name != RebootArg {
			updates[name] = vs
		}
	}

	previous := core.Configuration()
	ignored := core.Apply(updates)
	if len(ignored) > 0 {
		i.logger.Warn("Ignored fields: %v", strings.Join(ignored, ", "))
	}

	result := StoreResult{
		RebootRequired: args.Get(RebootArg) == "1",
		Ignored:        ignored,
	}

	if err := core.Save(); err != nil {
		i.logger.Error("Storing configuration failed: %v", err)
		core.Replace(previous)
		result.Error = err.Error()
		return jsonStatusResponse(500, result)
	}

	result.Stored = true
	return jsonResponse(result)
}

// describeArgs lists argument names with secrets masked.
func describeArgs(args url.Values) string {
	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		value := args.Get(name)
		if name == devconfig.FieldNetworkSecret || name == devconfig.FieldBrokerSecret {
			value = "***"
		}
		parts = append(parts, name+"=\""+value+"\"")
	}

	return strings.Join(parts, ", ")
}

func jsonResponse(v interface{}) Response {
	return jsonStatusResponse(200, v)
}

func jsonStatusResponse(status int, v interface{}) Response {
	body, err := json.Marshal(v)
	if err != nil {
		return textResponse(500, err.Error())
	}

	return Response{
		Status:      status,
		ContentType: contentTypeJSON,
		Body:        body,
	}
}

func textResponse(status int, body string) Response {
	return Response{
		Status:      status,
		ContentType: contentTypeText,
		Body:        []byte(body),
	}
}
