package server

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/KaramelBytes/reviewlens/internal/analysis"
	"github.com/KaramelBytes/reviewlens/internal/dataset"
	"github.com/KaramelBytes/reviewlens/internal/utils"
)

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// ProductCount is one entry of the product listing.
type ProductCount struct {
	ID      string `json:"id"`
	Reviews int    `json:"reviews"`
}

func (s *Server) routes() {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	s.mux.Handle("/metrics", s.metrics.Handler())
	s.mux.Route("/v1", func(r chi.Router) {
		r.Get("/products", s.listProducts)
		r.Get("/summary", s.getSummary)
		r.Get("/overview", s.getOverview)
		r.Get("/insights", s.listInsights)
		r.Get("/insights/{id}", s.getInsight)
		r.Get("/attributes", s.getAttributes)
		r.Get("/report", s.getReport)
		r.Get("/export.csv", s.exportCSV)
	})
}

func (s *Server) view(r *http.Request) *dataset.Dataset {
	return s.ds.ForProduct(r.URL.Query().Get("product"))
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeJSON marshals v once, tags it with a weak ETag and honours
// If-None-Match.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "encode response")
		return
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	w.Header().Set("ETag", etag)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("write body failed")
	}
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	counts := map[string]int{}
	for i := range s.ds.Reviews {
		counts[s.ds.Reviews[i].ProductID]++
	}
	out := []ProductCount{}
	for _, id := range s.ds.Products() {
		out = append(out, ProductCount{ID: id, Reviews: counts[id]})
	}
	writeJSON(w, r, map[string]any{"products": out})
}

func (s *Server) getSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, analysis.Summarize(s.view(r)))
}

func (s *Server) getOverview(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	res := analysis.ComputeOverview(s.view(r), s.cfg.Options)
	s.metrics.observeCompute("overview", time.Since(start))
	writeJSON(w, r, res)
}

func (s *Server) listInsights(w http.ResponseWriter, r *http.Request) {
	view := s.view(r)
	var out []analysis.InsightResult
	for _, in := range analysis.Insights() {
		start := time.Now()
		out = append(out, in.Compute(view, s.cfg.Options))
		s.metrics.observeCompute(in.Key, time.Since(start))
	}
	writeJSON(w, r, map[string]any{"product": view.Product, "insights": out})
}

func (s *Server) getInsight(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "insight id must be a number between 1 and 10")
		return
	}
	in, err := analysis.InsightByID(id)
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
		return
	}
	start := time.Now()
	res := in.Compute(s.view(r), s.cfg.Options)
	s.metrics.observeCompute(in.Key, time.Since(start))
	writeJSON(w, r, res)
}

func (s *Server) getAttributes(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	res := analysis.ComputeAttributeTable(s.view(r), s.cfg.Options)
	s.metrics.observeCompute("attributes", time.Since(start))
	writeJSON(w, r, res)
}

func (s *Server) getReport(w http.ResponseWriter, r *http.Request) {
	format := analysis.FormatJSON
	if q := r.URL.Query().Get("format"); q != "" {
		f, err := analysis.ParseFormat(q)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
			return
		}
		format = f
	}
	start := time.Now()
	rep, err := analysis.Run(r.Context(), s.view(r), s.cfg.Options)
	if err != nil {
		writeProblem(w, http.StatusServiceUnavailable, "Service Unavailable", err.Error())
		return
	}
	s.metrics.observeCompute("report", time.Since(start))
	if format == analysis.FormatJSON {
		writeJSON(w, r, rep)
		return
	}
	body, err := rep.Render(format)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", err.Error())
		return
	}
	switch format {
	case analysis.FormatYAML:
		w.Header().Set("Content-Type", "application/yaml")
	case analysis.FormatXLSX:
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", reportFilename(rep)+".xlsx"))
	default:
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("write report failed")
	}
}

func (s *Server) exportCSV(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var months []int
	for _, v := range splitList(q["month"]) {
		m, err := strconv.Atoi(v)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Bad Request", fmt.Sprintf("invalid month %q", v))
			return
		}
		months = append(months, m)
	}
	filter, err := dataset.NewFilter(months, splitList(q["sentiment"]), splitList(q["skin_type"]))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	view := s.view(r).Filtered(filter)
	sum := analysis.Summarize(view)
	name := "reviews"
	if view.Product != "" {
		if slug := utils.Slug(view.Product); slug != "" {
			name += "_" + slug
		}
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".csv"))
	w.Header().Set("X-Review-Count", strconv.Itoa(sum.TotalReviews))
	w.Header().Set("X-Positive-Ratio", sum.PositiveRatio)
	if err := dataset.WriteCSV(w, view); err != nil {
		log.Error().Err(err).Msg("export csv failed")
	}
}

// splitList flattens repeated and comma-separated query values.
func splitList(vals []string) []string {
	var out []string
	for _, v := range vals {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func reportFilename(rep *analysis.Report) string {
	if rep.Product == "" {
		return "report"
	}
	if slug := utils.Slug(rep.Product); slug != "" {
		return "report_" + slug
	}
	return "report"
}
