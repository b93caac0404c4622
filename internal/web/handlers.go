package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/gamestore/internal/catalog"
	"github.com/JonMunkholm/gamestore/internal/core"
	"github.com/JonMunkholm/gamestore/internal/media"
)

type packListResponse struct {
	Packs []catalog.Pack `json:"packs"`
	Count int            `json:"count"`
}

type unitItem struct {
	catalog.Unit
	Slug string `json:"slug"`
}

type unitListResponse struct {
	Units []unitItem `json:"units"`
	Count int        `json:"count"`
}

// packDetail is a pack with what its detail page needs. Images holds one
// cover per game, "" where none is known.
type packDetail struct {
	catalog.Pack
	Cover       string   `json:"cover"`
	Images      []string `json:"images"`
	PurchaseURL string   `json:"purchase_url"`
}

type unitDetail struct {
	catalog.Unit
	Slug        string `json:"slug"`
	Cover       string `json:"cover"`
	TrailerID   string `json:"trailer_id"`
	EmbedURL    string `json:"embed_url"`
	SpaceLabel  string `json:"space_label"`
	PurchaseURL string `json:"purchase_url"`
}

type healthResponse struct {
	Status  string                  `json:"status"`
	Cache   bool                    `json:"cache"`
	Fetches core.FetchLimiterStatus `json:"fetches"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Cache:   s.service.CacheEnabled(),
		Fetches: s.service.Limiter().Status(),
	})
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	home, err := s.service.Home(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, home)
}

func (s *Server) handleListPacks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := catalog.PackQuery{
		Q:   query.Get("q"),
		Min: catalog.ParseBound(query.Get("min")),
		Max: catalog.ParseBound(query.Get("max")),
	}

	packs, err := s.service.SearchPacks(r.Context(), q)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, packListResponse{Packs: packs, Count: len(packs)})
}

func (s *Server) handleGetPack(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		respondError(w, r, catalog.ErrPackNotFound)
		return
	}

	pack, err := s.service.Pack(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	images := make([]string, len(pack.Games))
	for i, g := range pack.Games {
		images[i] = s.opts.Images.Lookup(g)
	}

	writeJSON(w, http.StatusOK, packDetail{
		Pack:        pack,
		Cover:       s.opts.Images.LookupFirst(firstN(pack.Games, 3)...),
		Images:      images,
		PurchaseURL: s.purchaseLink(media.PackMessage(pack)),
	})
}

func (s *Server) handleListUnits(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := catalog.UnitQuery{
		Q:          query.Get("q"),
		Min:        catalog.ParseBound(query.Get("min")),
		Max:        catalog.ParseBound(query.Get("max")),
		OnSaleOnly: isTruthy(query.Get("ofertas")),
	}

	units, err := s.service.SearchUnits(r.Context(), q)
	if err != nil {
		respondError(w, r, err)
		return
	}

	items := make([]unitItem, len(units))
	for i, u := range units {
		items[i] = unitItem{Unit: u, Slug: u.Slug()}
	}
	writeJSON(w, http.StatusOK, unitListResponse{Units: items, Count: len(items)})
}

func (s *Server) handleGetUnit(w http.ResponseWriter, r *http.Request) {
	unit, err := s.service.Unit(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	cover := unit.Image
	if cover == "" {
		cover = s.opts.Images.Lookup(unit.Title)
	}

	writeJSON(w, http.StatusOK, unitDetail{
		Unit:        unit,
		Slug:        unit.Slug(),
		Cover:       cover,
		TrailerID:   media.TrailerID(unit.Trailer),
		EmbedURL:    media.EmbedURL(unit.Trailer),
		SpaceLabel:  media.SpaceLabel(unit.Space),
		PurchaseURL: s.purchaseLink(media.UnitMessage(unit)),
	})
}

func (s *Server) purchaseLink(text string) string {
	if s.opts.WhatsAppPhone == "" {
		return ""
	}
	return media.PurchaseLink(s.opts.WhatsAppPhone, text)
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "si", "yes":
		return true
	}
	return false
}

func firstN(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
