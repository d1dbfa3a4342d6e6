package prices

import (
	"net/http"

	"github.com/chris/wallet-transfer-policy/pkg/api"
	"github.com/chris/wallet-transfer-policy/pkg/handlers/reply"
	"github.com/chris/wallet-transfer-policy/pkg/mapping"
	"github.com/chris/wallet-transfer-policy/pkg/oracle"
)

// PricesHandler serves cached token prices.
type PricesHandler struct {
	Oracle oracle.PriceOracle
}

// NewPricesHandler creates a new PricesHandler.
func NewPricesHandler(o oracle.PriceOracle) *PricesHandler {
	return &PricesHandler{Oracle: o}
}

// GetPrices returns one price per requested token, zero for unpriced tokens.
func (h *PricesHandler) GetPrices(w http.ResponseWriter, r *http.Request, params api.GetPricesParams) {
	tokens, err := mapping.ParseAddresses("token", params.Token)
	if err != nil {
		reply.Error(w, r, err)
		return
	}

	prices, err := h.Oracle.PriceBatch(r.Context(), tokens)
	if err != nil {
		reply.Error(w, r, err)
		return
	}

	out := make([]api.TokenPrice, len(tokens))
	for i, token := range tokens {
		out[i] = mapping.ToApiTokenPrice(token, prices[i])
	}

	reply.JSON(w, http.StatusOK, out)
}
