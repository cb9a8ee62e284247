// Package api exposes HTTP handlers for the workout log service.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"example.com/workoutlog/internal/auth"
	"example.com/workoutlog/internal/domain"
	"example.com/workoutlog/internal/persistence"
)

// Handler coordinates HTTP requests with the domain services.
type Handler struct {
	accounts  *domain.AccountService
	lifecycle *domain.LifecycleService
	workouts  *domain.WorkoutService
	stats     *domain.StatsService
	tokens    auth.Config
	validate  *validator.Validate
	pageSize  int
	topN      int
}

// NewHandler builds a Handler.
func NewHandler(
	accounts *domain.AccountService,
	lifecycle *domain.LifecycleService,
	workouts *domain.WorkoutService,
	stats *domain.StatsService,
	tokens auth.Config,
	pageSize, topN int,
) *Handler {
	return &Handler{
		accounts:  accounts,
		lifecycle: lifecycle,
		workouts:  workouts,
		stats:     stats,
		tokens:    tokens,
		validate:  validator.New(),
		pageSize:  pageSize,
		topN:      topN,
	}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/auth/register", h.register)
	mux.HandleFunc("POST /v1/auth/login", h.login)
	mux.HandleFunc("GET /v1/exercises/{muscle_group}", h.exercises)
	mux.HandleFunc("POST /v1/sessions/start", h.startSession)
	mux.HandleFunc("POST /v1/sessions/end", h.endSession)
	mux.HandleFunc("GET /v1/sessions/current", h.currentSession)
	mux.HandleFunc("GET /v1/sessions", h.listSessions)
	mux.HandleFunc("GET /v1/workouts", h.listWorkouts)
	mux.HandleFunc("POST /v1/workouts", h.createWorkout)
	mux.HandleFunc("GET /v1/workouts/export", h.exportWorkouts)
	mux.HandleFunc("GET /v1/stats/user", h.userStats)
	mux.HandleFunc("GET /v1/stats/global", h.globalStats)
	mux.HandleFunc("GET /v1/admin/users", h.listUsers)
	mux.HandleFunc("DELETE /v1/admin/users/{id}", h.deleteUser)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, err := h.accounts.Register(r.Context(), domain.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserView(*user))
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, err := h.accounts.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	token, err := auth.IssueToken(*user, h.tokens)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, LoginResponse{Token: token, User: toUserView(*user)})
}

func (h *Handler) exercises(w http.ResponseWriter, r *http.Request) {
	group := r.PathValue("muscle_group")
	exercises, ok := domain.ExercisesFor(group)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "unknown muscle group")
		return
	}
	writeJSON(w, http.StatusOK, ExercisesResponse{MuscleGroup: group, Exercises: exercises})
}

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	session, err := h.lifecycle.StartSession(r.Context(), actor)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSessionView(*session))
}

func (h *Handler) endSession(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	session, err := h.lifecycle.EndSession(r.Context(), actor)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionView(*session))
}

func (h *Handler) currentSession(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	session, err := h.lifecycle.CurrentSession(r.Context(), actor)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if session == nil {
		writeError(w, http.StatusNotFound, "not_found", "no open session")
		return
	}
	writeJSON(w, http.StatusOK, toSessionView(*session))
}

func (h *Handler) listSessions(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	sessions, err := h.lifecycle.ListSessions(r.Context(), actor, r.URL.Query().Get("user_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	items := make([]SessionView, 0, len(sessions))
	for _, session := range sessions {
		items = append(items, toSessionView(session))
	}
	writeJSON(w, http.StatusOK, ListSessionsResponse{Items: items})
}

func (h *Handler) createWorkout(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req CreateWorkoutRequest
	if !h.decode(w, r, &req) {
		return
	}

	input := domain.CreateWorkoutInput{
		MuscleGroup: req.MuscleGroup,
		Exercise:    req.Exercise,
		Sets:        make([]domain.SetInput, 0, len(req.Sets)),
	}
	for _, set := range req.Sets {
		input.Sets = append(input.Sets, domain.SetInput{Reps: set.Reps, WeightKG: set.WeightKG})
	}

	workout, err := h.workouts.CreateWorkout(r.Context(), actor, input)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toWorkoutView(*workout))
}

func (h *Handler) listWorkouts(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	limit := h.pageSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	cursor, err := persistence.DecodeCursor(r.URL.Query().Get("cursor"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", "invalid cursor")
		return
	}

	workouts, next, err := h.workouts.ListWorkouts(r.Context(), actor, r.URL.Query().Get("user_id"), cursor, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	items := make([]WorkoutView, 0, len(workouts))
	for _, workout := range workouts {
		items = append(items, toWorkoutView(workout))
	}
	writeJSON(w, http.StatusOK, ListWorkoutsResponse{Items: items, NextCursor: persistence.EncodeCursor(next)})
}

func (h *Handler) exportWorkouts(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	scope := domain.ExportScope(r.URL.Query().Get("scope"))
	if scope == "" {
		scope = domain.ExportScopeOwn
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="workouts.csv"`)
	if err := h.workouts.ExportCSV(r.Context(), actor, scope, w); err != nil {
		// Nothing has been written yet on the error paths the service
		// returns before streaming, so the error response is still clean.
		w.Header().Del("Content-Disposition")
		w.Header().Del("Content-Type")
		writeDomainError(w, err)
	}
}

func (h *Handler) userStats(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	stats, err := h.stats.UserStats(r.Context(), actor, r.URL.Query().Get("user_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserStatsView(stats))
}

func (h *Handler) globalStats(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	topN := h.topN
	if raw := r.URL.Query().Get("top"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			topN = parsed
		}
	}

	stats, err := h.stats.GlobalStats(r.Context(), actor, topN)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGlobalStatsView(stats))
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	users, err := h.accounts.ListUsers(r.Context(), actor)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	items := make([]UserView, 0, len(users))
	for _, user := range users {
		items = append(items, toUserView(user))
	}
	writeJSON(w, http.StatusOK, ListUsersResponse{Items: items})
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	if err := h.accounts.DeleteUser(r.Context(), actor, r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decode parses the JSON body into req and applies its validator tags,
// answering 400 with field-level detail on failure.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return false
	}
	if err := h.validate.Struct(req); err != nil {
		writeValidationError(w, extractFieldErrors(err))
		return false
	}
	return true
}

func actorFrom(w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
	actor, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return domain.Actor{}, false
	}
	return actor, true
}

// extractFieldErrors converts validator tag failures into field errors.
func extractFieldErrors(err error) []FieldErrorView {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []FieldErrorView{{Field: "body", Message: "is invalid"}}
	}

	out := make([]FieldErrorView, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		field := strings.ToLower(fieldErr.Field())
		var msg string
		switch fieldErr.Tag() {
		case "required":
			msg = "is required"
		case "email":
			msg = "must be a valid email address"
		case "min":
			msg = "must be at least " + fieldErr.Param()
		case "eqfield":
			msg = "must match " + strings.ToLower(fieldErr.Param())
		default:
			msg = "is invalid"
		}
		out = append(out, FieldErrorView{Field: field, Message: msg})
	}
	return out
}

func writeDomainError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		fields := make([]FieldErrorView, 0, len(validationErr.Fields))
		for _, f := range validationErr.Fields {
			fields = append(fields, FieldErrorView{Field: f.Field, Message: f.Message})
		}
		writeValidationError(w, fields)
		return
	}

	switch {
	case errors.Is(err, domain.ErrUsernameTaken):
		writeValidationError(w, []FieldErrorView{{Field: "username", Message: "is already taken"}})
	case errors.Is(err, domain.ErrEmailTaken):
		writeValidationError(w, []FieldErrorView{{Field: "email", Message: "is already registered"}})
	case errors.Is(err, domain.ErrWeakPassword):
		writeValidationError(w, []FieldErrorView{{Field: "password", Message: domain.ErrWeakPassword.Error()}})
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials", domain.ErrInvalidCredentials.Error())
	case errors.Is(err, domain.ErrForbidden):
		// Deliberately generic so the response does not confirm whether
		// the targeted data exists.
		writeError(w, http.StatusForbidden, "forbidden", "forbidden")
	case errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "not_found", "user not found")
	case errors.Is(err, domain.ErrSelfDeletion):
		writeError(w, http.StatusConflict, "self_deletion", "an admin cannot delete their own account")
	case errors.Is(err, domain.ErrNoOpenSession):
		writeError(w, http.StatusConflict, "no_open_session", "start a session before logging workouts")
	case errors.Is(err, domain.ErrSessionAlreadyOpen):
		writeError(w, http.StatusConflict, "session_already_open", "a session is already open; end it first")
	case errors.Is(err, domain.ErrNoSessionToEnd):
		writeError(w, http.StatusConflict, "no_session_to_end", "there is no open session to end")
	default:
		writeError(w, http.StatusInternalServerError, "server_error", "internal error")
	}
}

func writeValidationError(w http.ResponseWriter, fields []FieldErrorView) {
	writeJSON(w, http.StatusBadRequest, ValidationErrorResponse{
		Type:   "validation_failed",
		Detail: "validation failed",
		Fields: fields,
	})
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
