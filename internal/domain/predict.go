package domain

import "math"

// PredictionInput holds one request's readings. The four required fields feed
// the production formula; the optional pointers only enrich the advisor prompt.
type PredictionInput struct {
	Salinity         float64 // ppt
	Technique        int     // 1=Raft, 2=Stake, 3=Both
	TyphoonCount     int
	FloodCount       int
	Temperature      *float64 // °C
	StormCount       *int
	SevereEventCount *int
}

// EstimateProduction predicts oyster production in metric tons:
//
//	0.268*salinity + 0.567*technique + 0.436*typhoon + 0.223*flood - 4.595
//
// clamped at zero. The technique code participates arithmetically even when it
// falls outside the known {1,2,3} range; only TechniqueLabel treats it as unknown.
func EstimateProduction(salinity float64, technique, typhoon, flood int) float64 {
	production := 0.268*salinity + 0.567*float64(technique) + 0.436*float64(typhoon) + 0.223*float64(flood) - 4.595
	return math.Max(0, production)
}

// TechniqueLabel converts a farming technique code to its display name.
func TechniqueLabel(code int) string {
	switch code {
	case 1:
		return "Raft method"
	case 2:
		return "Stake method"
	case 3:
		return "Both Raft and Stake"
	default:
		return "Unknown"
	}
}
