// Package metrics holds the prometheus indicators for the transaction
// pipeline. Indicators are registered on a caller-supplied registry so
// binaries and tests own their metric namespace.
package metrics

import "github.com/prometheus/client_golang/prometheus"

type TxProcess struct {
	submitted *prometheus.CounterVec
	gasUsed   prometheus.Histogram
}

// NewTxProcess registers the transaction process indicators on reg.
func NewTxProcess(reg prometheus.Registerer, namespace string) *TxProcess {
	t := &TxProcess{
		submitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tx_submitted_total",
			Help:      "Transactions submitted, by chain id and result.",
		}, []string{"chain_id", "result"}),
		gasUsed: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tx_gas_simulated",
			Help:      "Simulated gas of submitted transactions.",
			Buckets:   prometheus.ExponentialBuckets(50_000, 2, 8),
		}),
	}
	reg.MustRegister(t.submitted, t.gasUsed)
	return t
}

// ObserveSubmit records one broadcast outcome. Nil receivers are allowed so
// the chain client can run without metrics wired.
func (t *TxProcess) ObserveSubmit(chainId string, gasSimulated uint64, err error) {
	if t == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	t.submitted.WithLabelValues(chainId, result).Inc()
	if err == nil {
		t.gasUsed.Observe(float64(gasSimulated))
	}
}
