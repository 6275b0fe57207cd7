package devconfig

import (
	"net/url"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/supby/relay2mqtt/internal/utils/reflector"
)

func Default() Config {
	return Config{
		BrokerPort:     DefaultBrokerPort,
		BrokerClientID: DefaultBrokerClientID,
		BrokerTopic:    DefaultBrokerTopic,
	}
}

// Clamp drops NUL bytes and cuts s to MaxFieldLength bytes without splitting
// a UTF-8 sequence.
func Clamp(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")
	if len(s) <= MaxFieldLength {
		return s
	}

	cut := MaxFieldLength
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}

	return s[:cut]
}

// Clamped returns c with every string field clamped.
func (c Config) Clamped() Config {
	c.NetworkName = Clamp(c.NetworkName)
	c.NetworkSecret = Clamp(c.NetworkSecret)
	c.ResolutionLabel = Clamp(c.ResolutionLabel)
	c.BrokerAddress = Clamp(c.BrokerAddress)
	c.BrokerUser = Clamp(c.BrokerUser)
	c.BrokerSecret = Clamp(c.BrokerSecret)
	c.BrokerClientID = Clamp(c.BrokerClientID)
	c.BrokerTopic = Clamp(c.BrokerTopic)
	return c
}

// Apply overwrites the fields named in values and returns the names that
// were ignored, either unknown or carrying an unparsable value. When a name
// repeats, the last value wins.
func (c *Config) Apply(values url.Values) []string {
	var ignored []string

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		vs := values[name]
		if len(vs) == 0 {
			continue
		}

		if err := reflector.SetByTag(c, FormTag, name, Clamp(vs[len(vs)-1])); err != nil {
			ignored = append(ignored, name)
		}
	}

	return ignored
}

// Values returns every field rendered as text, keyed by control field name.
func (c Config) Values() map[string]string {
	return reflector.Values(c, FormTag)
}
