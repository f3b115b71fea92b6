package tracker

import (
	"sort"
	"time"
)

// energyWeights are the ordinal weights behind average calculations.
var energyWeights = map[EnergyLevel]int{
	EnergyHigh:     5,
	EnergyMedium:   4,
	EnergyLow:      3,
	EnergyDepleted: 2,
	EnergyRecovery: 1,
}

// EnergyLog records timestamped energy readings into the daily journal.
type EnergyLog struct {
	journal *Journal
	now     func() time.Time
}

func NewEnergyLog(journal *Journal) *EnergyLog {
	return &EnergyLog{journal: journal, now: time.Now}
}

// Log appends a reading to today's entry.
func (l *EnergyLog) Log(level EnergyLevel, context string) (*EnergyReading, error) {
	reading := EnergyReading{
		Timestamp: l.now(),
		Level:     level,
		Context:   context,
	}
	_, err := l.journal.mutateToday(func(e *DailyEntry) {
		e.EnergyReadings = append(e.EnergyReadings, reading)
	})
	if err != nil {
		return nil, err
	}
	return &reading, nil
}

// Recent returns readings from entries within the trailing N days, sorted by
// timestamp ascending.
func (l *EnergyLog) Recent(days int) ([]EnergyReading, error) {
	entries, err := l.journal.Entries()
	if err != nil {
		return nil, err
	}

	cutoff := l.now().AddDate(0, 0, -days)
	var readings []EnergyReading
	for date, entry := range entries {
		// Date keys are process-local; parsing them as UTC would shift the
		// window boundary by the zone offset.
		entryDate, err := time.ParseInLocation(dateLayout, date, time.Local)
		if err != nil {
			continue
		}
		if !entryDate.Before(cutoff) {
			readings = append(readings, entry.EnergyReadings...)
		}
	}

	sort.Slice(readings, func(i, j int) bool {
		return readings[i].Timestamp.Before(readings[j].Timestamp)
	})
	return readings, nil
}

// AverageEnergy maps levels to ordinal weights and returns their mean.
// An empty input yields 0.0, a "no data" sentinel callers must distinguish
// from a genuinely low score.
func AverageEnergy(readings []EnergyReading) float64 {
	if len(readings) == 0 {
		return 0.0
	}
	total := 0
	for _, r := range readings {
		total += energyWeights[r.Level]
	}
	return float64(total) / float64(len(readings))
}

// BucketByPeriod splits readings into the three fixed periods of the day:
// morning [6,12), afternoon [12,18), evening [18,24) plus [0,6). All three
// buckets are always reported, even with zero samples.
func BucketByPeriod(readings []EnergyReading) []EnergyTrend {
	var morning, afternoon, evening []EnergyReading
	for _, r := range readings {
		hour := r.Timestamp.Hour()
		switch {
		case hour >= 6 && hour < 12:
			morning = append(morning, r)
		case hour >= 12 && hour < 18:
			afternoon = append(afternoon, r)
		default:
			evening = append(evening, r)
		}
	}

	return []EnergyTrend{
		{Period: "morning", AverageLevel: AverageEnergy(morning), SampleCount: len(morning)},
		{Period: "afternoon", AverageLevel: AverageEnergy(afternoon), SampleCount: len(afternoon)},
		{Period: "evening", AverageLevel: AverageEnergy(evening), SampleCount: len(evening)},
	}
}
