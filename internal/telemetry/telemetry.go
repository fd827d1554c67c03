// Package telemetry is the reporting surface components log through, so that
// tests can assert on what was reported with a Recorder.
package telemetry

// API is an abstraction over logging/metrics.
//
// note: fault injection point
type API interface {
	// ReportBroken reports a component that broke in a way that aborts what
	// it was doing.
	//
	// The `id` names the component and method, not the specific failure:
	// a failing season in the ingest driver is `driver.run` whether the fetch
	// or the append failed, that goes into the params.
	//
	// Formatting rules:
	// 1) all lowercase
	// 2) use underscores for large components
	// 3) use dashes for methods part of a larger component
	ReportBroken(id string, params ...any)

	// ReportWarning reports something unexpected the component recovered
	// from, same `id` rules as ReportBroken.
	ReportWarning(id string, params ...any)

	ReportDebug(msg string, params ...any)

	// ReportCount reports the current value of a counter, successive reports
	// of the same id are points over time and are not summed.
	ReportCount(id string, count int64)
}

type scoped struct {
	prefix string
	inner  API
}

// Scope prefixes every id reported through the returned API with
// "namespace: ". Scoping a scoped API joins the namespaces with a dot.
func Scope(namespace string, inner API) API {
	if s, ok := inner.(scoped); ok {
		return scoped{prefix: s.prefix + "." + namespace, inner: s.inner}
	}
	return scoped{prefix: namespace, inner: inner}
}

func (s scoped) id(id string) string {
	return s.prefix + ": " + id
}

func (s scoped) ReportBroken(id string, params ...any) {
	s.inner.ReportBroken(s.id(id), params...)
}

func (s scoped) ReportWarning(id string, params ...any) {
	s.inner.ReportWarning(s.id(id), params...)
}

func (s scoped) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(s.id(msg), params...)
}

func (s scoped) ReportCount(id string, count int64) {
	s.inner.ReportCount(s.id(id), count)
}
