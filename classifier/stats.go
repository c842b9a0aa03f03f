package classifier

import (
	"time"

	"github.com/montanaflynn/stats"
)

// durationSampleCap bounds the ring buffer of recent per-call duration
// samples DurationSummary is computed over; unbounded retention would
// make report() an ever-growing allocation for a long-running session.
const durationSampleCap = 4096

// Stats is the statistics block returned by report() (§6, "Statistics
// block").
type Stats struct {
	TestCount             int64
	SufficientSmoothCount int64
	AQDuration            time.Duration
	Pass1Duration         time.Duration
	Pass2Duration         time.Duration
	PrimeTestDuration     time.Duration
	FactorDuration        time.Duration
	// QRestSizeHistogram bins the bit length of the unfactored residue
	// at entry to the large-factor branch; bucket i counts residues
	// with BitLen() == i, and bucket 63 also counts every wider residue.
	QRestSizeHistogram [64]int64
}

// DurationSummary reports the central tendency and tail latency of the
// five duration fields, computed with montanaflynn/stats — the domain
// wiring named in SPEC_FULL.md §2.2 for this repo's only component that
// needs summary statistics over a sample series.
type DurationSummary struct {
	AQMean, AQP50, AQP90, AQP99                 float64
	Pass1Mean, Pass1P50, Pass1P90, Pass1P99     float64
	Pass2Mean, Pass2P50, Pass2P90, Pass2P99     float64
	PrimeMean, PrimeP50, PrimeP90, PrimeP99     float64
	FactorMean, FactorP50, FactorP90, FactorP99 float64
}

// durationRingBuffers accumulates the raw per-call samples Classifier.Report
// records and DurationSummary needs to compute DurationSummary; kept out of the Stats struct itself
// since the exported block is a plain snapshot, not a live accumulator.
type durationRingBuffers struct {
	aq, pass1, pass2, primeTest, factor []float64
}

func newDurationRingBuffers() *durationRingBuffers {
	return &durationRingBuffers{
		aq:        make([]float64, 0, durationSampleCap),
		pass1:     make([]float64, 0, durationSampleCap),
		pass2:     make([]float64, 0, durationSampleCap),
		primeTest: make([]float64, 0, durationSampleCap),
		factor:    make([]float64, 0, durationSampleCap),
	}
}

func recordSample(buf []float64, sample float64) []float64 {
	if len(buf) >= durationSampleCap {
		copy(buf, buf[1:])
		buf = buf[:len(buf)-1]
	}
	return append(buf, sample)
}

func summarize(samples []float64) (mean, p50, p90, p99 float64) {
	if len(samples) == 0 {
		return 0, 0, 0, 0
	}
	data, err := stats.LoadRawData(samples)
	if err != nil {
		return 0, 0, 0, 0
	}
	mean, _ = stats.Mean(data)
	p50, _ = stats.Percentile(data, 50)
	p90, _ = stats.Percentile(data, 90)
	p99, _ = stats.Percentile(data, 99)
	return mean, p50, p90, p99
}

// durationSummary builds a DurationSummary over the classifier's
// recorded duration samples. Called from Classifier.DurationSummary.
func (c *Classifier) durationSummary() DurationSummary {
	var d DurationSummary
	d.AQMean, d.AQP50, d.AQP90, d.AQP99 = summarize(c.durations.aq)
	d.Pass1Mean, d.Pass1P50, d.Pass1P90, d.Pass1P99 = summarize(c.durations.pass1)
	d.Pass2Mean, d.Pass2P50, d.Pass2P90, d.Pass2P99 = summarize(c.durations.pass2)
	d.PrimeMean, d.PrimeP50, d.PrimeP90, d.PrimeP99 = summarize(c.durations.primeTest)
	d.FactorMean, d.FactorP50, d.FactorP90, d.FactorP99 = summarize(c.durations.factor)
	return d
}
