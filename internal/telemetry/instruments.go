package telemetry

import "go.opentelemetry.io/otel/metric"

// Instruments are the OTel metric instruments the handlers record into.
// They ride the same OTLP pipeline as the spans.
type Instruments struct {
	OrdersCreated    metric.Int64Counter
	RefundsProcessed metric.Int64Counter
	SimulatedErrors  metric.Int64Counter
	CacheHits        metric.Int64Counter
	CacheMisses      metric.Int64Counter
	ScenarioRequests metric.Int64Counter
	CheckoutLatency  metric.Float64Histogram
}

func NewInstruments() (*Instruments, error) {
	meter := Meter()
	inst := &Instruments{}

	var err error
	inst.OrdersCreated, err = meter.Int64Counter("orders_created_total",
		metric.WithDescription("Total number of orders created"))
	if err != nil {
		return nil, err
	}

	inst.RefundsProcessed, err = meter.Int64Counter("refunds_processed_total",
		metric.WithDescription("Total number of refunds processed"))
	if err != nil {
		return nil, err
	}

	inst.SimulatedErrors, err = meter.Int64Counter("simulated_errors_total",
		metric.WithDescription("Synthetic failures injected by the fault profile"))
	if err != nil {
		return nil, err
	}

	inst.CacheHits, err = meter.Int64Counter("recommendation_cache_hits_total",
		metric.WithDescription("Recommendation lookups served from cache"))
	if err != nil {
		return nil, err
	}

	inst.CacheMisses, err = meter.Int64Counter("recommendation_cache_misses_total",
		metric.WithDescription("Recommendation lookups that ran the model path"))
	if err != nil {
		return nil, err
	}

	inst.ScenarioRequests, err = meter.Int64Counter("scenario_requests_total",
		metric.WithDescription("Requests fired by scenario endpoints"))
	if err != nil {
		return nil, err
	}

	inst.CheckoutLatency, err = meter.Float64Histogram("checkout_latency_seconds",
		metric.WithDescription("Simulated checkout latency"))
	if err != nil {
		return nil, err
	}

	return inst, nil
}
