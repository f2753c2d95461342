package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"smart_irrigation"
)

// ErrInvalidAPIKey reports the provider's invalid-credential flag. The
// message is user-facing and matches what the dashboard displays.
var ErrInvalidAPIKey = errors.New("Chave da API inválida")

// WeatherClient fetches the rain forecast from the clima proxy endpoint.
type WeatherClient struct {
	base   string
	path   string
	client *http.Client
}

func NewWeatherClient(base, path string, timeout time.Duration) *WeatherClient {
	return &WeatherClient{
		base:   strings.TrimRight(strings.TrimSpace(base), "/"),
		path:   normalizePath(path),
		client: &http.Client{Timeout: timeout},
	}
}

// forecastPayload mirrors the HG-Brasil-shaped proxy response. Only the
// fields the dashboard consumes are decoded.
type forecastPayload struct {
	Erro     string `json:"erro,omitempty"`
	ValidKey *bool  `json:"valid_key"`
	Results  struct {
		Temp        float64 `json:"temp"`
		Humidity    float64 `json:"humidity"`
		Description string  `json:"description"`
		Forecast    []struct {
			RainProbability float64 `json:"rain_probability"`
			Max             float64 `json:"max"`
			Min             float64 `json:"min"`
		} `json:"forecast"`
	} `json:"results"`
}

// Forecast fetches and normalizes the forecast for the given coordinates.
// A provider-reported erro field or valid_key=false is a semantic failure
// and surfaces as an error, never as silently defaulted data.
func (c *WeatherClient) Forecast(ctx context.Context, lat, lon float64) (smart_irrigation.RainForecast, error) {
	u := fmt.Sprintf("%s%s?lat=%s&lon=%s", c.base, c.path, formatCoord(lat), formatCoord(lon))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return smart_irrigation.RainForecast{}, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return smart_irrigation.RainForecast{}, fmt.Errorf("clima request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return smart_irrigation.RainForecast{}, fmt.Errorf("clima upstream status %d", resp.StatusCode)
	}

	var payload forecastPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return smart_irrigation.RainForecast{}, fmt.Errorf("clima decode error: %w", err)
	}
	return normalizeForecast(payload)
}

// normalizeForecast applies the provider failure checks and the display
// rounding rules (integer temperatures, capitalized description, min/max
// falling back to the current temperature).
func normalizeForecast(p forecastPayload) (smart_irrigation.RainForecast, error) {
	if p.Erro != "" {
		return smart_irrigation.RainForecast{}, errors.New(p.Erro)
	}
	if p.ValidKey != nil && !*p.ValidKey {
		return smart_irrigation.RainForecast{}, ErrInvalidAPIKey
	}

	temp := p.Results.Temp
	prob, max, min := 0.0, temp, temp
	if len(p.Results.Forecast) > 0 {
		day := p.Results.Forecast[0]
		prob = day.RainProbability
		if day.Max != 0 {
			max = day.Max
		}
		if day.Min != 0 {
			min = day.Min
		}
	}

	desc := p.Results.Description
	if desc == "" {
		desc = "N/A"
	}

	return smart_irrigation.RainForecast{
		Temperature:     int(math.Round(temp)),
		RainProbability: int(math.Round(prob)),
		Description:     capitalize(desc),
		Humidity:        p.Results.Humidity,
		TempMax:         int(math.Round(max)),
		TempMin:         int(math.Round(min)),
	}, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
