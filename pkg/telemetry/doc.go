// Package telemetry exports render-pass metrics to Prometheus and traces
// passes and client events with OpenTelemetry.
//
// The Observer returned by NewObserver plugs into retain.Config:
//
//	m := telemetry.NewMetrics(telemetry.WithRegistry(reg))
//	app := retain.New(doc, loop, retain.Config{
//	    Observer: telemetry.NewObserver(ctx, m, telemetry.NewTracer("retain")),
//	})
//
// Metrics (namespace "retain" by default):
//
//	passes_total{kind}                  render passes, kind is "external" or "follow_up"
//	pass_duration_seconds               pass wall time
//	mutations_total{op}                 live mutations issued by the reconciler
//	mutation_failures_total             live mutations that returned an error
//	components_rendered_total           component instances rendered
//	components_created_total            component instances constructed
//	components_released_total           component instances released
//	live_instances                      instances alive across all Apps
//	handlers                            registered handler ids across all Apps
//	follow_up_budget_exceeded_total     follow-up chains cut off
//	sessions_active                     open live sessions
//	events_received_total{event}        client events received
//	websocket_errors_total{type}        transport failures
package telemetry
