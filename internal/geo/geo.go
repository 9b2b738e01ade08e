package geo

import (
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"

	"github.com/August26/ipintel-go/internal/model"
)

// Resolver resolves geo data from local MaxMind databases. The city
// database is required; the ASN database is optional and fills the
// provider field when present.
type Resolver struct {
	city *geoip2.Reader
	asn  *geoip2.Reader
}

// Open opens the databases. asnPath may be empty.
func Open(cityPath, asnPath string) (*Resolver, error) {
	city, err := geoip2.Open(cityPath)
	if err != nil {
		return nil, fmt.Errorf("open city database: %w", err)
	}

	r := &Resolver{city: city}
	if asnPath != "" {
		asn, err := geoip2.Open(asnPath)
		if err != nil {
			city.Close()
			return nil, fmt.Errorf("open asn database: %w", err)
		}
		r.asn = asn
	}
	return r, nil
}

// Close releases the underlying databases.
func (r *Resolver) Close() error {
	err := r.city.Close()
	if r.asn != nil {
		if aerr := r.asn.Close(); err == nil {
			err = aerr
		}
	}
	return err
}

// Lookup implements model.IPResolver. The address must already be in
// dotted form.
func (r *Resolver) Lookup(ip string) (model.GeoInfo, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return model.GeoInfo{}, fmt.Errorf("invalid ip: %q", ip)
	}

	rec, err := r.city.City(parsed)
	if err != nil {
		return model.GeoInfo{}, fmt.Errorf("city lookup: %w", err)
	}

	info := model.GeoInfo{
		Country: rec.Country.IsoCode,
		City:    rec.City.Names["en"],
	}

	if r.asn != nil {
		if a, err := r.asn.ASN(parsed); err == nil {
			info.ISP = a.AutonomousSystemOrganization
		}
	}
	return info, nil
}
