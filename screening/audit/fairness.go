package audit

import (
	"fmt"
	"math"
	"sort"
)

// FairnessThresholds bound the metrics before a batch is flagged.
type FairnessThresholds struct {
	DemographicParityDifference float64 `json:"demographic_parity_difference"`
	EqualizedOddsDifference     float64 `json:"equalized_odds_difference"`
	DisparateImpactRatio        float64 `json:"disparate_impact_ratio"`
}

// DefaultFairnessThresholds uses the four-fifths rule for disparate impact
// and a 0.1 tolerance on rate differences.
func DefaultFairnessThresholds() FairnessThresholds {
	return FairnessThresholds{
		DemographicParityDifference: 0.1,
		EqualizedOddsDifference:     0.1,
		DisparateImpactRatio:        0.8,
	}
}

// GroupMetrics summarizes one demographic group within a batch.
type GroupMetrics struct {
	GroupName     string  `json:"group_name"`
	GroupSize     int     `json:"group_size"`
	PositiveCount int     `json:"positive_count"`
	PositiveRate  float64 `json:"positive_rate"`
	AverageScore  float64 `json:"average_score"`
	ScoreStdDev   float64 `json:"score_std_dev"`
}

// FairnessReport is the complete outcome of a fairness calculation.
type FairnessReport struct {
	DemographicParityDifference float64 `json:"demographic_parity_difference"`
	DemographicParityRatio      float64 `json:"demographic_parity_ratio"`

	EqualizedOddsDifference     float64 `json:"equalized_odds_difference"`
	TruePositiveRateDifference  float64 `json:"true_positive_rate_difference"`
	FalsePositiveRateDifference float64 `json:"false_positive_rate_difference"`

	DisparateImpactRatio float64 `json:"disparate_impact_ratio"`

	ScoreGap           float64 `json:"score_gap"`
	ScoreVarianceRatio float64 `json:"score_variance_ratio"`

	GroupMetrics []GroupMetrics `json:"group_metrics,omitempty"`

	IsFair     bool               `json:"is_fair"`
	Violations []string           `json:"violations,omitempty"`
	Thresholds FairnessThresholds `json:"thresholds"`
}

// FairnessCalculator computes demographic parity, disparate impact and a
// simplified equalized odds over scored, group-labeled candidate batches.
type FairnessCalculator struct {
	thresholds FairnessThresholds
}

func NewFairnessCalculator(thresholds FairnessThresholds) *FairnessCalculator {
	return &FairnessCalculator{thresholds: thresholds}
}

// Calculate evaluates one batch. outcomes may be nil, in which case a
// candidate counts as selected when its score reaches selectionThreshold.
//
// Fewer than two distinct groups cannot exhibit between-group disparity, so
// the report comes back fair with neutral ratios. With exactly two groups
// the comparison implicitly treats the higher-rate group as privileged;
// which group should anchor the comparison is a policy decision, not a
// statistical one.
func (c *FairnessCalculator) Calculate(scores []float64, groups []string, outcomes []bool, selectionThreshold float64) (*FairnessReport, error) {
	if len(scores) != len(groups) {
		return nil, ErrInvalidAuditInput().
			WithDetail("scores", len(scores)).
			WithDetail("groups", len(groups))
	}
	if outcomes != nil && len(outcomes) != len(scores) {
		return nil, ErrInvalidAuditInput().
			WithDetail("scores", len(scores)).
			WithDetail("outcomes", len(outcomes))
	}

	if outcomes == nil {
		outcomes = make([]bool, len(scores))
		for i, s := range scores {
			outcomes[i] = s >= selectionThreshold
		}
	}

	report := &FairnessReport{
		DemographicParityRatio: 1.0,
		DisparateImpactRatio:   1.0,
		ScoreVarianceRatio:     1.0,
		IsFair:                 true,
		Thresholds:             c.thresholds,
	}

	names := uniqueSorted(groups)
	if len(names) < 2 {
		return report, nil
	}

	byGroup := map[string][]int{}
	for i, g := range groups {
		byGroup[g] = append(byGroup[g], i)
	}

	var rates, avgs, variances []float64
	for _, name := range names {
		idx := byGroup[name]

		positive := 0
		sum := 0.0
		for _, i := range idx {
			if outcomes[i] {
				positive++
			}
			sum += scores[i]
		}
		avg := sum / float64(len(idx))

		std := 0.0
		if len(idx) > 1 {
			ss := 0.0
			for _, i := range idx {
				d := scores[i] - avg
				ss += d * d
			}
			std = math.Sqrt(ss / float64(len(idx)))
		}

		rate := float64(positive) / float64(len(idx))
		report.GroupMetrics = append(report.GroupMetrics, GroupMetrics{
			GroupName:     name,
			GroupSize:     len(idx),
			PositiveCount: positive,
			PositiveRate:  rate,
			AverageScore:  avg,
			ScoreStdDev:   std,
		})

		rates = append(rates, rate)
		avgs = append(avgs, avg)
		if std > 0 {
			variances = append(variances, std*std)
		}
	}

	maxRate, minRate := maxMin(rates)
	report.DemographicParityDifference = round4(maxRate - minRate)
	if maxRate > 0 {
		report.DemographicParityRatio = round4(minRate / maxRate)
		report.DisparateImpactRatio = round4(minRate / maxRate)
	}

	report.TruePositiveRateDifference, report.FalsePositiveRateDifference =
		equalizedOddsDiffs(scores, outcomes, byGroup, names)
	report.EqualizedOddsDifference = round4(math.Max(
		report.TruePositiveRateDifference, report.FalsePositiveRateDifference))

	maxAvg, minAvg := maxMin(avgs)
	report.ScoreGap = round4(maxAvg - minAvg)
	if len(variances) >= 2 {
		maxVar, minVar := maxMin(variances)
		if minVar > 0 {
			report.ScoreVarianceRatio = round4(maxVar / minVar)
		}
	}

	report.Violations = c.violations(report)
	report.IsFair = len(report.Violations) == 0
	return report, nil
}

// equalizedOddsDiffs approximates TPR as the selection rate among
// high-scoring candidates (score >= 0.7) and FPR as the selection rate
// among low-scoring ones (score < 0.5), then reports the largest
// between-group spread of each.
func equalizedOddsDiffs(scores []float64, outcomes []bool, byGroup map[string][]int, names []string) (tprDiff, fprDiff float64) {
	var tprs, fprs []float64
	for _, name := range names {
		highTotal, highSelected := 0, 0
		lowTotal, lowSelected := 0, 0
		for _, i := range byGroup[name] {
			switch {
			case scores[i] >= 0.7:
				highTotal++
				if outcomes[i] {
					highSelected++
				}
			case scores[i] < 0.5:
				lowTotal++
				if outcomes[i] {
					lowSelected++
				}
			}
		}

		tpr := 0.0
		if highTotal > 0 {
			tpr = float64(highSelected) / float64(highTotal)
		}
		fpr := 0.0
		if lowTotal > 0 {
			fpr = float64(lowSelected) / float64(lowTotal)
		}
		tprs = append(tprs, tpr)
		fprs = append(fprs, fpr)
	}

	maxTPR, minTPR := maxMin(tprs)
	maxFPR, minFPR := maxMin(fprs)
	return round4(maxTPR - minTPR), round4(maxFPR - minFPR)
}

func (c *FairnessCalculator) violations(r *FairnessReport) []string {
	var out []string
	if math.Abs(r.DemographicParityDifference) > c.thresholds.DemographicParityDifference {
		out = append(out, "demographic parity difference "+formatMetric(r.DemographicParityDifference)+
			" exceeds threshold "+formatMetric(c.thresholds.DemographicParityDifference))
	}
	if math.Abs(r.EqualizedOddsDifference) > c.thresholds.EqualizedOddsDifference {
		out = append(out, "equalized odds difference "+formatMetric(r.EqualizedOddsDifference)+
			" exceeds threshold "+formatMetric(c.thresholds.EqualizedOddsDifference))
	}
	if r.DisparateImpactRatio < c.thresholds.DisparateImpactRatio {
		out = append(out, "disparate impact ratio "+formatMetric(r.DisparateImpactRatio)+
			" below threshold "+formatMetric(c.thresholds.DisparateImpactRatio))
	}
	return out
}

func uniqueSorted(items []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range items {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

func maxMin(values []float64) (max, min float64) {
	if len(values) == 0 {
		return 0, 0
	}
	max, min = values[0], values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
		if v < min {
			min = v
		}
	}
	return max, min
}

func formatMetric(f float64) string {
	return fmt.Sprintf("%.3f", f)
}

func round4(f float64) float64 {
	return math.Round(f*10000) / 10000
}
