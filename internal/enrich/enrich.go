// Package enrich annotates banned addresses with GeoLite2 country and ASN
// data when the MaxMind databases are installed.
package enrich

import (
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"f2bsentinel/pkg/logging"

	"github.com/oschwald/geoip2-golang"
)

const (
	subsystem = "GeoIP"
	cacheTTL  = time.Hour

	asnDatabase     = "GeoLite2-ASN.mmdb"
	cityDatabase    = "GeoLite2-City.mmdb"
	countryDatabase = "GeoLite2-Country.mmdb"
)

// Result is what is known about one address. Zero fields are unknown.
type Result struct {
	CountryCode string
	Country     string
	City        string
	ASN         uint
	ASNName     string
	ts          time.Time
}

// Empty reports whether the lookup found nothing.
func (r Result) Empty() bool {
	return r.CountryCode == "" && r.Country == "" && r.ASN == 0
}

// Enricher looks addresses up in the databases it found. A nil *Enricher is
// valid and never finds anything.
type Enricher struct {
	mu     sync.RWMutex
	cache  map[string]Result
	asnDB  *geoip2.Reader
	cityDB *geoip2.Reader
	// cityIsCountry is set when only the smaller Country database was found.
	cityIsCountry bool
	now           func() time.Time
}

// New opens whichever GeoLite2 databases exist in dirs; the first directory
// holding a database wins. Missing databases are not an error.
func New(dirs ...string) *Enricher {
	e := &Enricher{cache: make(map[string]Result), now: time.Now}

	asnPath := findFile(dirs, asnDatabase)
	cityPath := findFile(dirs, cityDatabase)
	if cityPath == "" {
		if cityPath = findFile(dirs, countryDatabase); cityPath != "" {
			e.cityIsCountry = true
		}
	}

	if asnPath != "" {
		if db, err := geoip2.Open(asnPath); err == nil {
			e.asnDB = db
		} else {
			logging.Warn(subsystem, "Could not open %s: %v", asnPath, err)
		}
	}
	if cityPath != "" {
		if db, err := geoip2.Open(cityPath); err == nil {
			e.cityDB = db
		} else {
			logging.Warn(subsystem, "Could not open %s: %v", cityPath, err)
		}
	}

	if e.Enabled() {
		logging.Info(subsystem, "GeoIP enrichment enabled (asn=%t, location=%t)", e.asnDB != nil, e.cityDB != nil)
	} else {
		logging.Debug(subsystem, "No GeoLite2 databases found in %v", dirs)
	}
	return e
}

func findFile(dirs []string, name string) string {
	for _, d := range dirs {
		p := filepath.Join(d, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Close releases the database readers.
func (e *Enricher) Close() {
	if e == nil {
		return
	}
	if e.asnDB != nil {
		_ = e.asnDB.Close()
	}
	if e.cityDB != nil {
		_ = e.cityDB.Close()
	}
}

// Enabled reports whether at least one database is open.
func (e *Enricher) Enabled() bool {
	return e != nil && (e.asnDB != nil || e.cityDB != nil)
}

// Lookup returns the cached or freshly read data for ipStr.
func (e *Enricher) Lookup(ipStr string) Result {
	if !e.Enabled() {
		return Result{}
	}
	now := e.now()

	e.mu.RLock()
	if r, ok := e.cache[ipStr]; ok && now.Sub(r.ts) < cacheTTL {
		e.mu.RUnlock()
		return r
	}
	e.mu.RUnlock()

	r := Result{ts: now}
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return r
	}

	if e.asnDB != nil {
		if rec, err := e.asnDB.ASN(ip); err == nil && rec != nil {
			r.ASN = rec.AutonomousSystemNumber
			r.ASNName = rec.AutonomousSystemOrganization
		}
	}
	if e.cityDB != nil {
		e.lookupLocation(ip, &r)
	}

	e.mu.Lock()
	e.cache[ipStr] = r
	e.mu.Unlock()
	return r
}

func (e *Enricher) lookupLocation(ip net.IP, r *Result) {
	if e.cityIsCountry {
		rec, err := e.cityDB.Country(ip)
		if err != nil || rec == nil {
			return
		}
		r.CountryCode = rec.Country.IsoCode
		r.Country = rec.Country.Names["en"]
		return
	}
	rec, err := e.cityDB.City(ip)
	if err != nil || rec == nil {
		return
	}
	r.CountryCode = rec.Country.IsoCode
	r.Country = rec.Country.Names["en"]
	r.City = rec.City.Names["en"]
}
