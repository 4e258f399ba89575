// Package geocode resolves coordinates to addresses from a fixed table of
// Finnish cities. There is no network lookup.
package geocode

import (
	"fmt"
	"math"
	"strings"

	"github.com/theoremus-urban-solutions/fleet-tracker/tracking"
	"github.com/theoremus-urban-solutions/fleet-tracker/utils"
)

// City is a searchable place.
type City struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"latitude"`
	Lng     float64 `json:"longitude"`
	Address string  `json:"address"`
}

// Cities lists the places known to ReverseGeocode and SearchByAddress.
var Cities = []City{
	{"Helsinki", 60.1699, 24.9384, "Helsinki, Finland"},
	{"Tampere", 61.4978, 23.7603, "Tampere, Finland"},
	{"Turku", 60.4518, 22.2666, "Turku, Finland"},
	{"Oulu", 64.2008, 27.7241, "Oulu, Finland"},
	{"Jyväskylä", 62.2411, 25.7482, "Jyväskylä, Finland"},
	{"Espoo", 60.2052, 24.655, "Espoo, Finland"},
	{"Lahti", 60.9827, 25.6581, "Lahti, Finland"},
	{"Kuopio", 62.8921, 27.6787, "Kuopio, Finland"},
	{"Vaasa", 63.0955, 21.6121, "Vaasa, Finland"},
}

// streetAddresses are exact matches keyed by coordinates at 4 decimals.
var streetAddresses = map[string]string{
	"60.1699,24.9384": "Pohjoisranta 2, Helsinki, Finland",
	"61.4978,23.7603": "Hämeenkatu 13, Tampere, Finland",
	"60.4518,22.2666": "Aurakatu 8, Turku, Finland",
	"64.2008,27.7241": "Hallituskatu 7, Oulu, Finland",
	"62.2411,25.7482": "Cygnaeuksenkatu 12, Jyväskylä, Finland",
}

func key(lat, lng float64) string {
	return fmt.Sprintf("%.4f,%.4f", lat, lng)
}

// ReverseGeocode returns the street address for a known coordinate, or the
// address of the nearest city otherwise.
func ReverseGeocode(p tracking.Position) string {
	if addr, ok := streetAddresses[key(p.Lat, p.Lng)]; ok {
		return addr
	}
	return Nearest(p).Address
}

// Nearest returns the city with the smallest great-circle distance to p.
func Nearest(p tracking.Position) City {
	best := Cities[0]
	bestKM := math.Inf(1)
	for _, c := range Cities {
		if d := utils.HaversineKM(p.Lat, p.Lng, c.Lat, c.Lng); d < bestKM {
			best, bestKM = c, d
		}
	}
	return best
}

// SearchByAddress returns cities whose name or address contains q,
// ignoring case.
func SearchByAddress(q string) []City {
	q = strings.ToLower(q)
	out := []City{}
	for _, c := range Cities {
		if strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(strings.ToLower(c.Address), q) {
			out = append(out, c)
		}
	}
	return out
}

// SearchDevices returns devices whose name contains q, ignoring case.
func SearchDevices(devices []tracking.Device, q string) []tracking.Device {
	q = strings.ToLower(q)
	out := []tracking.Device{}
	for _, d := range devices {
		if strings.Contains(strings.ToLower(d.Name), q) {
			out = append(out, d)
		}
	}
	return out
}
