// Package instrumentation wires OpenTelemetry metrics and tracing for
// tickadd.
//
// # Metrics
//
// Query parsing:
//   - parse_operations_total: Counter of parse pipeline runs by status
//   - parse_duration_seconds: Histogram of parse pipeline durations
//
// TickTick API:
//   - ticktick_api_operations_total: Counter of API calls by operation and status
//   - ticktick_api_operation_duration_seconds: Histogram of API call durations
//
// OAuth:
//   - oauth_auth_total: Counter of authorization attempts by result
//
// MCP tools:
//   - mcp_tool_invocations_total: Counter of tool invocations by tool and status
//   - mcp_tool_duration_seconds: Histogram of tool execution durations
//
// # Configuration
//
// Instrumentation is configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: true)
//   - METRICS_EXPORTER: prometheus, otlp or stdout (default: prometheus)
//   - TRACING_EXPORTER: otlp, stdout or none (default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: tickadd)
package instrumentation
