package telemetry

import (
	"fmt"
	"log/slog"
)

// SlogAPI implements API on top of the default slog logger.
type SlogAPI struct{}

// attrs turns report params into slog attributes: errors become "err",
// a string followed by a value becomes a key/value pair, anything else is
// kept positionally as "params.N".
func attrs(params []any) []any {
	var out []any
	for i := 0; i < len(params); i++ {
		switch p := params[i].(type) {
		case error:
			out = append(out, slog.String("err", p.Error()))
		case string:
			if i+1 < len(params) {
				out = append(out, slog.Any(p, params[i+1]))
				i++
				continue
			}
			out = append(out, slog.String(fmt.Sprintf("params.%d", i), p))
		default:
			out = append(out, slog.Any(fmt.Sprintf("params.%d", i), p))
		}
	}
	return out
}

func (SlogAPI) ReportBroken(id string, params ...any) {
	slog.Error("broken component", append([]any{"id", id}, attrs(params)...)...)
}

func (SlogAPI) ReportWarning(id string, params ...any) {
	slog.Warn("warning", append([]any{"id", id}, attrs(params)...)...)
}

func (SlogAPI) ReportDebug(msg string, params ...any) {
	slog.Debug(msg, attrs(params)...)
}

func (SlogAPI) ReportCount(id string, count int64) {
	slog.Debug("count", "id", id, "n", count)
}
