// Command promptgen prints the estimate and the exact prompt the service would
// send to the language model for a given set of readings. It uses the actual
// domain and recommend packages, so the output matches production behavior.
// With -sanitize it instead runs a raw model reply from a file through the
// sanitizer, useful for tuning the denylist.
//
// Usage:
//
//	go run ./cmd/promptgen -salinity 50 -technique 3 -typhoon 2 -flood 1
//	go run ./cmd/promptgen -sanitize reply.txt -mode denylist
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ecooyster/prediction-service/internal/domain"
	"github.com/ecooyster/prediction-service/internal/recommend"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	salinity := flag.Float64("salinity", 15.02, "salinity in ppt")
	technique := flag.Int("technique", 1, "farming technique code (1=Raft, 2=Stake, 3=Both)")
	typhoon := flag.Int("typhoon", 0, "typhoon events in the production period")
	flood := flag.Int("flood", 0, "flood events in the production period")
	temperature := flag.Float64("temperature", -1, "water temperature in °C (omit with -1)")
	storms := flag.Int("storms", -1, "storm events (omit with -1)")
	severe := flag.Int("severe", -1, "severe weather events (omit with -1)")
	sanitizeFile := flag.String("sanitize", "", "sanitize a raw model reply from this file instead")
	mode := flag.String("mode", "minimal", "sanitizer mode: minimal or denylist")
	flag.Parse()

	sanitizeMode := domain.ModeMinimal
	switch *mode {
	case "minimal":
	case "denylist":
		sanitizeMode = domain.ModeDenylist
	default:
		return fmt.Errorf("unknown mode %q", *mode)
	}

	if *sanitizeFile != "" {
		raw, err := os.ReadFile(*sanitizeFile)
		if err != nil {
			return err
		}
		fmt.Println(domain.NewSanitizer(sanitizeMode).Sanitize(string(raw)))
		return nil
	}

	in := domain.PredictionInput{
		Salinity:     *salinity,
		Technique:    *technique,
		TyphoonCount: *typhoon,
		FloodCount:   *flood,
	}
	if *temperature >= 0 {
		in.Temperature = temperature
	}
	if *storms >= 0 {
		in.StormCount = storms
	}
	if *severe >= 0 {
		in.SevereEventCount = severe
	}

	estimate := domain.EstimateProduction(in.Salinity, in.Technique, in.TyphoonCount, in.FloodCount)
	prompt := recommend.BuildPrompt(in, estimate)

	fmt.Printf("estimate: %.2f metric tons (%s)\n\n", estimate, domain.TechniqueLabel(in.Technique))
	fmt.Printf("--- system ---\n%s\n\n--- user ---\n%s\n", prompt.System, prompt.User)
	return nil
}
