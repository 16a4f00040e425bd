package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/draft-league/internal/platform/logging"
	"github.com/riskibarqy/draft-league/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type Handler struct {
	leagues   *usecase.LeagueService
	members   *usecase.MembershipService
	drafts    *usecase.DraftService
	schedules *usecase.ScheduleService
	standings *usecase.StandingsService
	rosters   *usecase.RosterService
	logger    *logging.Logger
	validator *validator.Validate
}

func NewHandler(
	leagues *usecase.LeagueService,
	members *usecase.MembershipService,
	drafts *usecase.DraftService,
	schedules *usecase.ScheduleService,
	standings *usecase.StandingsService,
	rosters *usecase.RosterService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		leagues:   leagues,
		members:   members,
		drafts:    drafts,
		schedules: schedules,
		standings: standings,
		rosters:   rosters,
		logger:    logger,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// decodeJSON reads a bounded JSON body into dst and validates it.
func (h *Handler) decodeJSON(ctx context.Context, w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

// fail logs at a level matching the outcome and writes the error envelope.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, op string, err error, args ...any) {
	args = append(args, "error", err)
	if mapError(err).HTTPStatus >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, op+" failed", args...)
	} else {
		h.logger.WarnContext(ctx, op+" failed", args...)
	}
	writeError(ctx, w, err)
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", usecase.ErrInvalidInput, key)
	}
	return v, nil
}

func queryBool(r *http.Request, key string) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean", usecase.ErrInvalidInput, key)
	}
	return v, nil
}

func pathInt(r *http.Request, key string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(r.PathValue(key)))
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, key)
	}
	return v, nil
}
