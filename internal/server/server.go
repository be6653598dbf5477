package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/nikolayk812/storefront-cart/internal/config"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"github.com/nikolayk812/storefront-cart/internal/wire"
)

const maxBodyBytes = 1 << 20

type handler struct {
	repo     port.CartRepository
	validate *validator.Validate
}

// NewRouter serves the remote cart endpoint: POST /cart/update and GET /cart behind
// bearer auth, plus /healthz and /metrics.
func NewRouter(repo port.CartRepository, jwtCfg config.JWTConfig, logger zerolog.Logger) http.Handler {
	h := &handler{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}

	r := chi.NewRouter()
	r.Use(RequestID(logger), Recoverer, Logging)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(Auth(jwtCfg))
		r.Get("/cart", h.getCart)
		r.Post("/cart/update", h.updateCart)
	})

	return r
}

func (h *handler) getCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.repo.GetCart(r.Context(), ownerIDFrom(r.Context()))
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("get cart")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	lines := make([]wire.Line, 0, len(cart.Items))
	for _, item := range cart.Items {
		lines = append(lines, wire.LineFromDomain(item.Line))
	}
	writeJSON(w, http.StatusOK, lines)
}

func (h *handler) updateCart(w http.ResponseWriter, r *http.Request) {
	var req wire.UpdateCartRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	lines, err := h.decodeLines(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.repo.ReplaceCart(r.Context(), ownerIDFrom(r.Context()), lines); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Int("items", len(lines)).Msg("replace cart")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, struct{}{})
}

func (h *handler) decodeLines(req wire.UpdateCartRequest) ([]domain.CartLine, error) {
	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, fmt.Errorf("invalid field %s: %s", verrs[0].Namespace(), verrs[0].Tag())
		}
		return nil, fmt.Errorf("invalid body")
	}

	lines, err := wire.LinesToDomain(req.Items)
	if err != nil {
		return nil, err
	}

	seen := make(map[domain.LineKey]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.Key()]; ok {
			return nil, fmt.Errorf("duplicate line %s/%s", line.ProductID, line.VariantID)
		}
		seen[line.Key()] = struct{}{}
	}
	return lines, nil
}
