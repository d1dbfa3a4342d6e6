package policy

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/chris/wallet-transfer-policy/pkg/policy"

const (
	accountKey  = attribute.Key("policy.account")
	decisionKey = attribute.Key("policy.decision")
	opKey       = attribute.Key("policy.op")
)

// Decision labels recorded on the decisions counter.
const (
	decisionDirect   = "direct"
	decisionDeferred = "deferred"
	decisionRejected = "rejected"
)

type telemetry struct {
	tracer    trace.Tracer
	decisions metric.Int64Counter
}

func newTelemetry() telemetry {
	meter := otel.Meter(instrumentationName)
	decisions, err := meter.Int64Counter("policy.decisions",
		metric.WithDescription("Spend decisions taken by the policy engine"),
		metric.WithUnit("{decision}"),
	)
	if err != nil {
		decisions = noop.Int64Counter{}
	}
	return telemetry{
		tracer:    otel.Tracer(instrumentationName),
		decisions: decisions,
	}
}

// operation is an in-flight engine call.
type operation struct {
	name    string
	account common.Address
	span    trace.Span
}

func (e *Engine) start(ctx context.Context, name string, account common.Address) (context.Context, *operation) {
	ctx, span := e.tel.tracer.Start(ctx, "policy."+name,
		trace.WithAttributes(opKey.String(name), accountKey.String(account.Hex())))
	return ctx, &operation{name: name, account: account, span: span}
}

// finish ends the span and turns *errp into an *Error.
func (e *Engine) finish(o *operation, errp *error) {
	if *errp != nil {
		*errp = wrap(o.name, o.account, *errp)
		o.span.RecordError(*errp)
		o.span.SetStatus(codes.Error, (*errp).Error())
	}
	o.span.End()
}

func (e *Engine) decided(ctx context.Context, o *operation, decision string) {
	e.tel.decisions.Add(ctx, 1, metric.WithAttributes(opKey.String(o.name), decisionKey.String(decision)))
	o.span.SetAttributes(decisionKey.String(decision))
}
