package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-bcrypt-cost bcrypt work factor
//	-session-secret session token signing key
//	-session-ttl session lifetime (e.g., "720h")
//	-sessions-backend session storage: postgres, redis or memory
//	-redis-url redis URL for the redis session backend
//	-token-issuer session token issuer name
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-mailer-api-key SendGrid API key, enables password reset
//	-mailer-from sender address of password reset mails
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var bcryptCost int
	var sessionSecret string
	var sessionTTL time.Duration
	var sessionsBackend string
	var redisURL string
	var tokenIssuer string
	var requestTimeout time.Duration
	var mailerAPIKey string
	var mailerFrom string

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.IntVar(&bcryptCost, "bcrypt-cost", 0, "Bcrypt work factor")
	flag.StringVar(&sessionSecret, "session-secret", "", "Session token signing key")
	flag.DurationVar(&sessionTTL, "session-ttl", 0, "Session lifetime (e.g., 720h)")
	flag.StringVar(&sessionsBackend, "sessions-backend", "", "Session storage: postgres, redis or memory")
	flag.StringVar(&redisURL, "redis-url", "", "Redis URL for the redis session backend")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Session token issuer")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&mailerAPIKey, "mailer-api-key", "", "SendGrid API key")
	flag.StringVar(&mailerFrom, "mailer-from", "", "Password reset sender address")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			BcryptCost:    bcryptCost,
			SessionSecret: sessionSecret,
			SessionTTL:    sessionTTL,
			TokenIssuer:   tokenIssuer,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			Sessions: Sessions{
				Backend:  sessionsBackend,
				RedisURL: redisURL,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Mailer: Mailer{
			APIKey:    mailerAPIKey,
			FromEmail: mailerFrom,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost"
// or empty, and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be within [1, 65535]")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
