package logging

import (
	"os"
	"regexp"
	"sync"

	"go.uber.org/zap"
)

const traceparentHeader = "traceparent"

// W3C Trace Context: {version}-{trace-id}-{parent-id}-{trace-flags}
var traceparentRe = regexp.MustCompile(`^[0-9a-f]{2}-([0-9a-f]{32})-([0-9a-f]{16})-([0-9a-f]{2})$`)

var (
	projectIDOnce   sync.Once
	cachedProjectID string
)

type traceContext struct {
	traceID string
	spanID  string
	sampled bool
}

func parseTraceparent(header string) (traceContext, bool) {
	m := traceparentRe.FindStringSubmatch(header)
	if m == nil {
		return traceContext{}, false
	}
	return traceContext{traceID: m[1], spanID: m[2], sampled: m[3] == "01"}, true
}

// resource is the Cloud Trace resource name used to correlate log entries.
func (tc traceContext) resource(projectID string) string {
	return "projects/" + projectID + "/traces/" + tc.traceID
}

// requestLogger derives a logger carrying the request ID and, when a project is
// configured and the traceparent header is valid, the Cloud Logging trace fields.
// The returned trace ID is the trace resource, or the request ID as fallback.
func requestLogger(base *zap.Logger, traceparent, projectID, requestID string) (*zap.Logger, string) {
	var fields []zap.Field
	traceID := requestID
	if tc, ok := parseTraceparent(traceparent); ok && projectID != "" {
		traceID = tc.resource(projectID)
		fields = append(fields,
			zap.String("logging.googleapis.com/trace", traceID),
			zap.String("logging.googleapis.com/spanId", tc.spanID),
			zap.Bool("logging.googleapis.com/trace_sampled", tc.sampled),
		)
	}
	if requestID != "" {
		fields = append(fields, zap.String("requestId", requestID))
	}
	if len(fields) == 0 {
		return base, traceID
	}
	return base.With(fields...), traceID
}

func resolveProjectID() string {
	projectIDOnce.Do(func() {
		for _, key := range []string{"GOOGLE_CLOUD_PROJECT", "GCP_PROJECT", "GCLOUD_PROJECT", "PROJECT_ID"} {
			if v := os.Getenv(key); v != "" {
				cachedProjectID = v
				return
			}
		}
	})
	return cachedProjectID
}
