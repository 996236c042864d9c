package marketdata

import (
	"math"

	"quantpulse/internal/ta"
)

// Return observations further than this many standard deviations from the
// mean are counted as outliers.
const outlierZThreshold = 4.0

// QualityReport summarizes how clean a loaded price series is. It is a
// load-time data screen, not a trading signal.
type QualityReport struct {
	Column       string  `json:"column"`
	Observations int     `json:"observations"`
	Outliers     int     `json:"outliers"`
	OutlierRatio float64 `json:"outlier_ratio"`
	MaxAbsZ      float64 `json:"max_abs_z"`
}

// ScreenColumn scores the return distribution of one series column.
// An empty or too-short column yields a zero report.
func (s *SeriesStore) ScreenColumn(column string) QualityReport {
	report := QualityReport{Column: column}

	prices := s.Prices(column)
	report.Observations = len(prices)
	if len(prices) < 3 {
		return report
	}

	returns := ta.Returns(prices)
	clean := returns[:0:0]
	for _, r := range returns {
		if !math.IsNaN(r) && !math.IsInf(r, 0) {
			clean = append(clean, r)
		}
	}
	if len(clean) < 2 {
		return report
	}

	mean, std := ta.MeanStd(clean)
	if std == 0 {
		return report
	}

	for _, r := range clean {
		z := math.Abs(r-mean) / std
		if z > report.MaxAbsZ {
			report.MaxAbsZ = z
		}
		if z > outlierZThreshold {
			report.Outliers++
		}
	}
	report.OutlierRatio = float64(report.Outliers) / float64(len(clean))
	return report
}
