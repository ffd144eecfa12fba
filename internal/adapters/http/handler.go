package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/zhairen/AItaluo/internal/domain"
	"github.com/zhairen/AItaluo/internal/metrics"
	"github.com/zhairen/AItaluo/web"
)

// Handler wires the HTTP surface: health, catalog, metrics, the WebSocket
// session endpoint and the embedded presentation layer.
type Handler struct {
	catalog   []domain.Card
	wsHandler http.Handler
	gatherer  prometheus.Gatherer
}

func NewHandler(catalog []domain.Card, wsHandler http.Handler, gatherer prometheus.Gatherer) *Handler {
	return &Handler{
		catalog:   catalog,
		wsHandler: wsHandler,
		gatherer:  gatherer,
	}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
	e.GET("/v1/catalog", h.Catalog)
	e.GET("/ws", echo.WrapHandler(h.wsHandler))
	e.GET("/metrics", echo.WrapHandler(metrics.Handler(h.gatherer)))
	e.GET("/*", echo.WrapHandler(web.Handler()))
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) Catalog(c echo.Context) error {
	cards := make([]CardResponse, len(h.catalog))
	for i, card := range h.catalog {
		cards[i] = CardResponse{
			ID:        card.ID,
			Name:      card.Name,
			LocalName: card.LocalName,
			Arcana:    card.Arcana,
			Suit:      card.Suit,
			Rank:      card.Rank,
			Keywords:  card.Keywords,
			Image:     card.Image,
		}
	}
	return c.JSON(http.StatusOK, CatalogResponse{Cards: cards})
}
