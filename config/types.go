package config

const (
	CatalogFileEnvVar  = "EOSPORT_CONNECTIONS_FILE"
	DefaultCatalogPath = "~/.eosport/connections.yaml"

	DefaultConnectionName = "localhost"

	TransportSocket    = "socket"
	TransportHTTPLocal = "http_local"
	TransportHTTP      = "http"
	TransportHTTPS     = "https"
)

// Transports lists the supported eAPI transports in preference order.
var Transports = []string{TransportSocket, TransportHTTPLocal, TransportHTTP, TransportHTTPS}

// Connection holds the resolved parameters for one eAPI endpoint. A
// zero Port selects the transport default.
type Connection struct {
	Name      string `yaml:"name"`
	Host      string `yaml:"host,omitempty"`
	Username  string `yaml:"username,omitempty"`
	Password  string `yaml:"password,omitempty"`
	Transport string `yaml:"transport,omitempty"`
	Port      int    `yaml:"port,omitempty"`
}

// ConnectionCatalog is the persisted shape of the connections file, the
// moral equivalent of an eapi.conf profile set.
type ConnectionCatalog struct {
	Connections []Connection `yaml:"connections"`
}

// Overrides carries per-invocation field overrides layered on top of a
// named profile. Zero-valued fields leave the profile value in place.
type Overrides struct {
	Host      string
	Username  string
	Password  string
	Transport string
	Port      int
}

// ConnectionSelection names the profile to resolve plus any overrides.
type ConnectionSelection struct {
	Name      string
	Overrides Overrides
}

func ValidTransport(transport string) bool {
	for _, candidate := range Transports {
		if candidate == transport {
			return true
		}
	}
	return false
}
