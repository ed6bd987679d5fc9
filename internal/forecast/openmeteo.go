package forecast

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the public Open-Meteo forecast endpoint.
const DefaultBaseURL = "https://api.open-meteo.com/v1/forecast"

// OpenMeteoFetcher implements Fetcher using the Open-Meteo forecast API.
type OpenMeteoFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewOpenMeteoFetcher creates a fetcher with optional proxy support.
func NewOpenMeteoFetcher(baseURL, proxyURL string) *OpenMeteoFetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &OpenMeteoFetcher{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *OpenMeteoFetcher) Name() string { return "open-meteo" }

// openMeteoResponse is the response shape with timeformat=unixtime.
// Value arrays use pointers because the API returns null for slots it
// cannot resolve.
type openMeteoResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	Hourly    *struct {
		Time        []int64    `json:"time"`
		Humidity    []*float64 `json:"relative_humidity_2m"`
		Temperature []*float64 `json:"temperature_2m"`
	} `json:"hourly"`
	Daily *struct {
		Time        []int64    `json:"time"`
		Humidity    []*float64 `json:"relative_humidity_2m_mean"`
		Temperature []*float64 `json:"temperature_2m_mean"`
	} `json:"daily"`
	Current *struct {
		Time        int64    `json:"time"`
		Humidity    *float64 `json:"relative_humidity_2m"`
		Temperature *float64 `json:"temperature_2m"`
	} `json:"current"`
	Reason string `json:"reason"` // set on API errors
	Error  bool   `json:"error"`
}

func toValue(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

func (f *OpenMeteoFetcher) get(params url.Values) (*openMeteoResponse, error) {
	resp, err := f.Client.Get(f.BaseURL + "?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("open-meteo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("open-meteo read body: %w", err)
	}

	var decoded openMeteoResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("open-meteo decode: %w", err)
	}
	if decoded.Error {
		return nil, fmt.Errorf("open-meteo api error: %s", decoded.Reason)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("open-meteo: status %d, body: %s", resp.StatusCode, string(body))
	}
	return &decoded, nil
}

// FetchForecast retrieves hourly and daily humidity/temperature samples for
// the given coordinates. days must be in [1, 16] per the API contract.
func (f *OpenMeteoFetcher) FetchForecast(lat, lon float64, days int) (*Payload, error) {
	if days < 1 || days > 16 {
		return nil, fmt.Errorf("forecast days must be in [1, 16], got %d", days)
	}

	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%.4f", lat))
	params.Set("longitude", fmt.Sprintf("%.4f", lon))
	params.Set("hourly", "relative_humidity_2m,temperature_2m")
	params.Set("daily", "relative_humidity_2m_mean,temperature_2m_mean")
	params.Set("forecast_days", fmt.Sprintf("%d", days))
	params.Set("timezone", "UTC")
	params.Set("timeformat", "unixtime")

	decoded, err := f.get(params)
	if err != nil {
		return nil, err
	}

	payload := &Payload{
		Latitude:  decoded.Latitude,
		Longitude: decoded.Longitude,
		Timezone:  decoded.Timezone,
	}
	if decoded.Hourly != nil {
		for i, ts := range decoded.Hourly.Time {
			s := Sample{Time: time.Unix(ts, 0).UTC(), Humidity: math.NaN(), Temperature: math.NaN()}
			if i < len(decoded.Hourly.Humidity) {
				s.Humidity = toValue(decoded.Hourly.Humidity[i])
			}
			if i < len(decoded.Hourly.Temperature) {
				s.Temperature = toValue(decoded.Hourly.Temperature[i])
			}
			payload.Hourly = append(payload.Hourly, s)
		}
	}
	if decoded.Daily != nil {
		for i, ts := range decoded.Daily.Time {
			s := Sample{Time: time.Unix(ts, 0).UTC(), Humidity: math.NaN(), Temperature: math.NaN()}
			if i < len(decoded.Daily.Humidity) {
				s.Humidity = toValue(decoded.Daily.Humidity[i])
			}
			if i < len(decoded.Daily.Temperature) {
				s.Temperature = toValue(decoded.Daily.Temperature[i])
			}
			payload.Daily = append(payload.Daily, s)
		}
	}
	if len(payload.Hourly) == 0 && len(payload.Daily) == 0 {
		return nil, fmt.Errorf("open-meteo: no samples returned")
	}
	return payload, nil
}

// FetchCurrent retrieves the latest observed conditions.
func (f *OpenMeteoFetcher) FetchCurrent(lat, lon float64) (*Current, error) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%.4f", lat))
	params.Set("longitude", fmt.Sprintf("%.4f", lon))
	params.Set("current", "relative_humidity_2m,temperature_2m")
	params.Set("timezone", "UTC")
	params.Set("timeformat", "unixtime")

	decoded, err := f.get(params)
	if err != nil {
		return nil, err
	}
	if decoded.Current == nil {
		return nil, fmt.Errorf("open-meteo: no current conditions returned")
	}
	return &Current{
		Time:        time.Unix(decoded.Current.Time, 0).UTC(),
		Humidity:    toValue(decoded.Current.Humidity),
		Temperature: toValue(decoded.Current.Temperature),
	}, nil
}
