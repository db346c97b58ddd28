// Package config provides configuration management for f2bsentinel.
//
// Configuration is loaded from multiple YAML sources and merged in order,
// later sources overriding earlier ones:
//
//  1. Default configuration (compiled in)
//  2. User configuration (~/.config/f2bsentinel/config.yaml)
//  3. Project configuration (./.f2bsentinel/config.yaml)
//  4. An explicit file passed with --config
//
// Command-line flags are applied on top by the cmd package.
//
// # Configuration Structure
//
//	client:
//	  command: fail2ban-client
//	  args: ["-s", "/run/fail2ban/fail2ban.sock"]
//	  sudo: false
//	dashboard:
//	  refreshInterval: 5s
//	  autoRefresh: true
//	  sortMode: ip        # ip | timeleft
//	  mouse: true
//	geoip:
//	  enabled: true
//	  databaseDirs: [/usr/share/GeoIP, /var/lib/GeoIP]
//	logging:
//	  level: info
//
// Boolean settings are pointers so that an overlay file can switch a
// default off; unset fields in an overlay never override the base.
package config
