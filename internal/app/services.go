package app

import (
	"f2bsentinel/internal/config"
	"f2bsentinel/internal/enrich"
	"f2bsentinel/internal/fail2ban"
)

// Services holds the collaborators every command works with.
type Services struct {
	Client   *fail2ban.Client
	Enricher *enrich.Enricher
}

// RunnerFactory builds the fail2ban-client runner for the configured client.
// Tests replace it with an in-memory daemon.
var RunnerFactory = func(c config.ClientConfig) fail2ban.Runner {
	return fail2ban.NewExecRunner(c.Command, c.Args, c.UseSudo())
}

// InitializeServices creates the client and, when enabled, the GeoIP
// enricher.
func InitializeServices(settings config.Config) *Services {
	s := &Services{Client: fail2ban.NewClient(RunnerFactory(settings.Client))}
	if settings.GeoIP.IsEnabled() {
		s.Enricher = enrich.New(settings.GeoIP.DatabaseDirs...)
	}
	return s
}

// Close releases the GeoIP databases.
func (s *Services) Close() {
	s.Enricher.Close()
}
