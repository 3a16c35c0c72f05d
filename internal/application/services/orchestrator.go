package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/DanielPopoola/bitnob-payments-gateway/internal/application"
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/domain"
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/infrastructure/upstream"
)

const (
	stepQuote      = "quote"
	stepInitialize = "initialize"
	stepFinalize   = "finalize"
)

const (
	StatusQuoteReady = "quote_ready"
	StatusPending    = "pending"
)

// Orchestrator runs the quote -> initialize -> finalize sequence of a flow
// against the provider. Runs share nothing but the client and notifier, so a
// single Orchestrator serves every request concurrently.
type Orchestrator struct {
	client     application.ProviderClient
	notifier   application.Notifier
	customerID string
	logger     *slog.Logger
}

func NewOrchestrator(
	client application.ProviderClient,
	notifier application.Notifier,
	customerID string,
	logger *slog.Logger,
) *Orchestrator {
	return &Orchestrator{
		client:     client,
		notifier:   notifier,
		customerID: customerID,
		logger:     logger.With("component", "orchestrator"),
	}
}

// Run executes every step of the flow registered for kind. Validation errors
// are returned with a nil run and no provider call is made. Once a run has
// started the returned run is never nil, even on failure.
//
// A finalize failure after a successful initialize leaves the provider-side
// payout initialized; no compensating call is made.
func (o *Orchestrator) Run(ctx context.Context, kind domain.Kind, req domain.OrchestrationRequest) (*domain.Run, error) {
	flow, run, in, err := o.start(ctx, kind, req)
	if err != nil {
		return run, err
	}

	if err := o.requestQuote(ctx, flow, run, &in); err != nil {
		return run, o.fail(ctx, run, err)
	}

	if flow.hasInitialize() {
		if err := o.initialize(ctx, flow, run, in); err != nil {
			return run, o.fail(ctx, run, err)
		}
	}

	if err := o.finalize(ctx, flow, run, in); err != nil {
		return run, o.fail(ctx, run, err)
	}

	o.complete(ctx, run)
	return run, nil
}

// Quote runs only the first step and leaves the run at QUOTE_RECEIVED, for
// callers that want to inspect pricing before committing with Finalize.
func (o *Orchestrator) Quote(ctx context.Context, kind domain.Kind, req domain.OrchestrationRequest) (*domain.Run, error) {
	flow, run, in, err := o.start(ctx, kind, req)
	if err != nil {
		return run, err
	}

	if err := o.requestQuote(ctx, flow, run, &in); err != nil {
		return run, o.fail(ctx, run, err)
	}

	orchestrationRunsTotal.WithLabelValues(string(run.Kind), outcome(run)).Inc()
	return run, nil
}

// Finalize commits a quote obtained earlier through Quote. A blank reference
// is replaced by a fresh one.
func (o *Orchestrator) Finalize(ctx context.Context, kind domain.Kind, quoteID, customerID, reference string) (*domain.Run, error) {
	flow, err := LookupFlow(kind)
	if err != nil {
		return nil, err
	}

	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return nil, domain.NewMissingRequiredFieldError("quoteId")
	}

	ref, err := domain.ResolveReference(reference)
	if err != nil {
		return nil, err
	}

	quote := &domain.Quote{QuoteID: quoteID}
	run := domain.ResumeRun(kind, ref, quote)
	in := stepInput{
		Reference:  ref,
		CustomerID: o.customerFor(customerID),
		Quote:      quote,
	}

	if err := o.finalize(ctx, flow, run, in); err != nil {
		return run, o.fail(ctx, run, err)
	}

	o.complete(ctx, run)
	return run, nil
}

// Envelope renders a successful run for the caller.
func (f Flow) Envelope(run *domain.Run) domain.ResultEnvelope {
	envelope := domain.ResultEnvelope{
		Success:   true,
		Reference: run.Reference,
		Quote:     run.Quote,
	}

	if run.State == domain.StateQuoteReceived {
		envelope.Message = "Quote received. Finalize it with the returned quoteId."
		envelope.Status = StatusQuoteReady
		return envelope
	}

	envelope.Message = f.SuccessMessage
	envelope.Status = providerStatus(run.Finalized)
	envelope.Data = run.Finalized
	return envelope
}

func (o *Orchestrator) start(ctx context.Context, kind domain.Kind, req domain.OrchestrationRequest) (Flow, *domain.Run, stepInput, error) {
	flow, err := LookupFlow(kind)
	if err != nil {
		return Flow{}, nil, stepInput{}, err
	}

	if err := req.Validate(kind); err != nil {
		return Flow{}, nil, stepInput{}, err
	}

	reference, err := domain.ResolveReference(req.Reference)
	if err != nil {
		return Flow{}, nil, stepInput{}, err
	}

	run := domain.NewRun(kind, reference)
	in := stepInput{
		Request:    req,
		Reference:  reference,
		CustomerID: o.customerFor(req.CustomerID),
	}

	o.notify(ctx, run, domain.StageInitiated, initiatedPayload(kind, req))
	return flow, run, in, nil
}

func (o *Orchestrator) requestQuote(ctx context.Context, flow Flow, run *domain.Run, in *stepInput) error {
	if err := run.MarkQuoteRequested(); err != nil {
		return err
	}

	resp, err := o.call(ctx, run, stepQuote, flow.QuoteEndpoint, flow.QuoteBody(*in))
	if err != nil {
		return o.stepFailed(run, stepQuote, err)
	}

	quote, err := domain.ParseQuote(resp.Data())
	if err != nil {
		return o.stepFailed(run, stepQuote, err)
	}

	if err := run.ReceiveQuote(quote); err != nil {
		return err
	}
	in.Quote = quote

	o.notify(ctx, run, domain.StageQuoteReceived, quote)
	return nil
}

func (o *Orchestrator) initialize(ctx context.Context, flow Flow, run *domain.Run, in stepInput) error {
	resp, err := o.call(ctx, run, stepInitialize, flow.InitializeEndpoint, flow.InitializeBody(in))
	if err != nil {
		return o.stepFailed(run, stepInitialize, err)
	}
	return run.MarkInitialized(resp.Data())
}

func (o *Orchestrator) finalize(ctx context.Context, flow Flow, run *domain.Run, in stepInput) error {
	resp, err := o.call(ctx, run, stepFinalize, flow.FinalizeEndpoint, flow.FinalizeBody(in))
	if err != nil {
		return o.stepFailed(run, stepFinalize, err)
	}
	return run.MarkFinalized(resp.Data())
}

func (o *Orchestrator) call(ctx context.Context, run *domain.Run, step, endpoint string, body any) (*upstream.Response, error) {
	start := time.Now()
	resp, err := o.client.Post(ctx, endpoint, body)
	elapsed := time.Since(start)

	orchestrationStepDuration.WithLabelValues(string(run.Kind), step).Observe(elapsed.Seconds())

	quoteID := ""
	if run.Quote != nil {
		quoteID = run.Quote.QuoteID
	}

	if err != nil {
		o.logger.Error("step failed",
			"step", step,
			"kind", run.Kind,
			"reference", run.Reference,
			"quote_id", quoteID,
			"duration", elapsed,
			"error", err,
		)
		return nil, err
	}

	o.logger.Info("step completed",
		"step", step,
		"kind", run.Kind,
		"reference", run.Reference,
		"quote_id", quoteID,
		"duration", elapsed,
	)
	return resp, nil
}

func (o *Orchestrator) stepFailed(run *domain.Run, step string, err error) error {
	stepErr := &application.StepError{Step: step, Reference: run.Reference, Err: err}

	var transitionErr error
	switch step {
	case stepQuote:
		transitionErr = run.FailQuote()
	case stepInitialize:
		transitionErr = run.FailInitialize()
	case stepFinalize:
		transitionErr = run.FailFinalize()
	}

	if transitionErr != nil {
		return errors.Join(stepErr, transitionErr)
	}
	return stepErr
}

func (o *Orchestrator) fail(ctx context.Context, run *domain.Run, err error) error {
	payload := map[string]any{
		"step":    run.FailedStep,
		"message": application.PublicMessage(err),
	}
	if run.Quote != nil {
		payload["quoteId"] = run.Quote.QuoteID
	}
	if details := application.ProviderDetails(err); details != nil {
		payload["details"] = details
	}

	o.notify(ctx, run, domain.StageFailed, payload)
	orchestrationRunsTotal.WithLabelValues(string(run.Kind), outcome(run)).Inc()
	return err
}

func (o *Orchestrator) complete(ctx context.Context, run *domain.Run) {
	payload := map[string]any{
		"quoteId": run.Quote.QuoteID,
		"result":  run.Finalized,
	}

	o.notify(ctx, run, domain.StageCompleted, payload)
	orchestrationRunsTotal.WithLabelValues(string(run.Kind), outcome(run)).Inc()

	o.logger.Info("run finalized",
		"kind", run.Kind,
		"reference", run.Reference,
		"quote_id", run.Quote.QuoteID,
		"duration", time.Since(run.StartedAt),
	)
}

func (o *Orchestrator) notify(ctx context.Context, run *domain.Run, stage string, payload any) {
	o.notifier.Notify(ctx, domain.EventName(run.Kind, stage), payload, run.Reference)
}

func (o *Orchestrator) customerFor(supplied string) string {
	if id := strings.TrimSpace(supplied); id != "" {
		return id
	}
	return o.customerID
}

func initiatedPayload(kind domain.Kind, req domain.OrchestrationRequest) map[string]any {
	payload := map[string]any{"kind": string(kind)}

	set := func(key, value string) {
		if value != "" {
			payload[key] = value
		}
	}
	set("name", req.Name)
	set("bankName", req.BankName)
	set("network", req.Network)
	set("fromAsset", req.FromAsset)
	set("toAsset", req.ToAsset)
	set("amountType", req.AmountType)
	set("customerId", req.CustomerID)
	if req.Amount != nil {
		payload["amount"] = req.Amount.String()
	}

	return payload
}

func outcome(run *domain.Run) string {
	return strings.ToLower(string(run.State))
}

// providerStatus reads the status the provider attached to a finalize
// response. Finalize only acknowledges acceptance, so pending is assumed.
func providerStatus(data json.RawMessage) string {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Status != "" {
		return strings.ToLower(body.Status)
	}
	return StatusPending
}
