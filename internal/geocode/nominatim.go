package geocode

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrLocationNotFound is returned when the geocoder resolves no match.
var ErrLocationNotFound = errors.New("location not found")

// DefaultBaseURL is the public Nominatim endpoint. The free service allows
// one request per second; resolution happens once at startup, which is well
// within that budget.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

const userAgent = "HumidSentinel/1.0"

// Location is a resolved place. The advisory core is coordinate-agnostic;
// coordinates are used only to request the matching forecast payload.
type Location struct {
	City        string
	Country     string
	Latitude    float64
	Longitude   float64
	DisplayName string
}

// Geocoder resolves city/country pairs to coordinates via Nominatim.
type Geocoder struct {
	BaseURL string
	Client  *http.Client
}

// NewGeocoder creates a geocoder with optional proxy support.
func NewGeocoder(baseURL, proxyURL string) *Geocoder {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &Geocoder{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: transport,
		},
	}
}

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Forward resolves a city/country pair to coordinates. Returns
// ErrLocationNotFound when Nominatim has no match.
func (g *Geocoder) Forward(city, country string) (*Location, error) {
	if city == "" {
		return nil, fmt.Errorf("geocode: city must not be empty")
	}
	if country == "" {
		return nil, fmt.Errorf("geocode: country must not be empty")
	}

	params := url.Values{}
	params.Set("city", city)
	params.Set("country", country)
	params.Set("format", "json")
	params.Set("limit", "1")

	req, err := http.NewRequest("GET", g.BaseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("geocode read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode: status %d, body: %s", resp.StatusCode, string(body))
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("geocode decode: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: %s, %s", ErrLocationNotFound, city, country)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("geocode: parse latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("geocode: parse longitude %q: %w", results[0].Lon, err)
	}
	if lat < -90 || lat > 90 {
		return nil, fmt.Errorf("geocode: latitude %.4f out of range", lat)
	}
	if lon < -180 || lon > 180 {
		return nil, fmt.Errorf("geocode: longitude %.4f out of range", lon)
	}

	return &Location{
		City:        city,
		Country:     country,
		Latitude:    lat,
		Longitude:   lon,
		DisplayName: results[0].DisplayName,
	}, nil
}
