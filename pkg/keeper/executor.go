package keeper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/chris/wallet-transfer-policy/pkg/api"
	"github.com/chris/wallet-transfer-policy/pkg/pending"
	"github.com/chris/wallet-transfer-policy/pkg/policy"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// EngineExecutor executes through an in-process engine.
type EngineExecutor struct {
	Engine policy.API
}

// Execute implements Executor.
func (e EngineExecutor) Execute(ctx context.Context, t *pending.Transfer) error {
	_, err := e.Engine.ExecutePendingTransfer(ctx, t.Account, t.Token, t.Target, t.Amount, t.Data, t.CreationRef)
	return err
}

// HTTPExecutor executes through the service's permissionless execute route.
type HTTPExecutor struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPExecutor creates an executor with a traced HTTP client.
func NewHTTPExecutor(baseURL string) *HTTPExecutor {
	return &HTTPExecutor{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
}

// Execute implements Executor.
func (e *HTTPExecutor) Execute(ctx context.Context, t *pending.Transfer) error {
	req := api.ExecutePendingTransfer{
		Token:       t.Token.Hex(),
		To:          t.Target.Hex(),
		Amount:      "0",
		CreationRef: t.CreationRef,
	}
	if t.Amount != nil {
		req.Amount = t.Amount.Dec()
	}
	if len(t.Data) > 0 {
		data := hexutil.Encode(t.Data)
		req.Data = &data
	}
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal execute request: %w", err)
	}

	url := fmt.Sprintf("%s/accounts/%s/pending-transfers/execute", e.BaseURL, t.Account.Hex())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build execute request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := e.Client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call execute route: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return nil
	}
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	detail := strings.TrimSpace(string(msg))
	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", pending.ErrNotFound, detail)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", pending.ErrOutsideExecutionWindow, detail)
	default:
		return fmt.Errorf("execute route returned %d: %s", resp.StatusCode, detail)
	}
}
