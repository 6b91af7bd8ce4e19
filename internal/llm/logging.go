package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// LoggingProvider is a decorator that logs every LLM request with its
// latency, token usage and estimated cost.
type LoggingProvider struct {
	inner Provider
	log   logrus.FieldLogger
}

// WithLogging wraps a Provider with request logging.
func WithLogging(p Provider, log logrus.FieldLogger) Provider {
	return &LoggingProvider{inner: p, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	fields := logrus.Fields{
		"purpose":    PurposeFrom(ctx),
		"model":      l.inner.ModelID(),
		"latency_ms": time.Since(start).Milliseconds(),
	}

	if resp != nil {
		if resp.Model != "" {
			fields["model"] = resp.Model
		}
		fields["input_tokens"] = resp.Usage.InputTokens
		fields["output_tokens"] = resp.Usage.OutputTokens
		if c := LookupCost(fields["model"].(string)); c != nil {
			fields["cost_usd"] = c.Cost(resp.Usage.InputTokens, resp.Usage.OutputTokens)
		}
	}

	entry := l.log.WithFields(fields)
	if err != nil {
		entry.WithError(err).Warn("llm request failed")
		return resp, err
	}

	entry.Debug("llm request")
	entry.WithFields(logrus.Fields{
		"request":  serializeRequest(req),
		"response": string(resp.Content),
	}).Trace("llm exchange")

	return resp, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n", m.Role)
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	if req.Schema != nil {
		schemaDef, err := json.Marshal(req.Schema.Definition)
		if err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n", req.Schema.Name)
			b.Write(schemaDef)
			b.WriteString("\n")
		}
	}

	return b.String()
}
