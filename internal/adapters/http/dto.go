package http

import "github.com/zhairen/AItaluo/internal/domain"

// CatalogResponse is the JSON shape returned by GET /v1/catalog.
type CatalogResponse struct {
	Cards []CardResponse `json:"cards"`
}

type CardResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	LocalName string        `json:"local_name"`
	Arcana    domain.Arcana `json:"arcana"`
	Suit      domain.Suit   `json:"suit,omitempty"`
	Rank      int           `json:"rank,omitempty"`
	Keywords  []string      `json:"keywords"`
	Image     string        `json:"image"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
