// Package server exposes the enhancement planner over a small HTTP API. The
// catalog and market snapshot are loaded once at startup; requests upload a
// YAML document with character stats and queries.
package server

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/enhance-forecast/internal/config"
	"github.com/iwvelando/enhance-forecast/internal/enhance"
	"github.com/iwvelando/enhance-forecast/pkg/constants"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger        *zap.Logger
	planner       *enhance.Planner
	maxUploadSize int64
	version       string
	planCache     *gocache.Cache
}

// planRequest is the YAML document accepted by the plan endpoint.
type planRequest struct {
	Character config.CharacterConfig `yaml:"character"`
	Queries   []config.QueryConfig   `yaml:"queries"`
}

// planResponse is the JSON answer for one plan request.
type planResponse struct {
	Plans    []enhance.PathResult `json:"plans"`
	Skipped  []string             `json:"skipped,omitempty"`
	CacheHit bool                 `json:"cacheHit,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewHandler constructs the HTTP handler that serves the plan API.
func NewHandler(logger *zap.Logger, planner *enhance.Planner, maxUploadSize int64, version string, cacheTTL time.Duration) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}
	if cacheTTL <= 0 {
		cacheTTL = time.Duration(constants.DefaultPlanCacheTTLSeconds) * time.Second
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		planner:       planner,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
		planCache:     gocache.New(cacheTTL, 2*cacheTTL),
	}

	mux := http.NewServeMux()

	// Plan API endpoint (file upload)
	mux.HandleFunc("/api/plan", h.handlePlan)

	// Version endpoint for client metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

func (h *handler) handlePlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer func() {
		_ = file.Close()
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to read upload: %v", err))
		return
	}

	// Plans are pure functions of the upload and the loaded snapshots, so the
	// upload digest is a sufficient cache key until the TTL expires.
	key := cacheKey(data)
	if cached, found := h.planCache.Get(key); found {
		resp := cached.(planResponse)
		resp.CacheHit = true
		h.respondJSON(w, http.StatusOK, resp)
		return
	}

	var req planRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid YAML: %v", err))
		return
	}
	if len(req.Queries) == 0 {
		h.respondError(w, http.StatusBadRequest, "no queries in request")
		return
	}

	params := enhance.Parameters{
		EnhancingLevel: req.Character.EnhancingLevel,
		HouseLevel:     req.Character.HouseLevel,
		ToolBonus:      req.Character.ToolBonus,
		SpeedBonus:     req.Character.SpeedBonus,
		BlessedTea:     req.Character.BlessedTea,
		GuzzlingBonus:  req.Character.GuzzlingBonus,
	}

	resp := planResponse{}
	for _, query := range req.Queries {
		result := h.planner.CalculateEnhancementPath(query.QueryHrid(), query.TargetLevel, params)
		if result == nil {
			resp.Skipped = append(resp.Skipped, fmt.Sprintf("%s+%d", query.ItemHrid, query.TargetLevel))
			continue
		}
		resp.Plans = append(resp.Plans, *result)
	}

	h.planCache.SetDefault(key, resp)

	h.logger.Info("computed enhancement plans",
		zap.String("op", "server.handlePlan"),
		zap.Int("plans", len(resp.Plans)),
		zap.Int("skipped", len(resp.Skipped)),
	)

	h.respondJSON(w, http.StatusOK, resp)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

func (h *handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Warn("failed to encode response",
			zap.String("op", "server.respondJSON"),
			zap.Error(err),
		)
	}
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string) {
	h.respondJSON(w, status, errorResponse{Error: msg})
}

func cacheKey(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
