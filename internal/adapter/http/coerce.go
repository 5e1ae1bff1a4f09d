package http

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/ecooyster/prediction-service/internal/domain"
)

// coerceInput converts the raw request fields to their numeric types. JSON
// numbers and numeric strings are both accepted; anything else is a coercion
// error carrying the field name.
func coerceInput(req predictRequest) (domain.PredictionInput, error) {
	var in domain.PredictionInput
	var err error

	if in.Salinity, err = coerceFloat("salinity", req.Salinity); err != nil {
		return in, err
	}
	if in.Technique, err = coerceInt("farming_technique", req.FarmingTechnique); err != nil {
		return in, err
	}
	if in.TyphoonCount, err = coerceInt("typhoon", req.Typhoon); err != nil {
		return in, err
	}
	if in.FloodCount, err = coerceInt("flood", req.Flood); err != nil {
		return in, err
	}

	if !missing(req.Temperature) {
		v, err := coerceFloat("temperature", req.Temperature)
		if err != nil {
			return in, err
		}
		in.Temperature = &v
	}
	if !missing(req.Storms) {
		v, err := coerceInt("storms", req.Storms)
		if err != nil {
			return in, err
		}
		in.StormCount = &v
	}
	if !missing(req.SevereEvents) {
		v, err := coerceInt("severe_events", req.SevereEvents)
		if err != nil {
			return in, err
		}
		in.SevereEventCount = &v
	}

	return in, nil
}

func coerceFloat(name string, raw json.RawMessage) (float64, error) {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f, nil
		}
	}
	return 0, fmt.Errorf("could not convert %s value %s to float", name, raw)
}

// coerceInt accepts JSON numbers (fractions truncate toward zero) and
// integer strings.
func coerceInt(name string, raw json.RawMessage) (int, error) {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int(f), nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n, nil
		}
	}
	return 0, fmt.Errorf("could not convert %s value %s to int", name, raw)
}
