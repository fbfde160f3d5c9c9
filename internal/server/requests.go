package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"fitness-tracker-backend/db"
)

// Fields that must be supplied are pointers so that "required" checks
// presence only: an explicit 0 or "" is accepted.

type createUserRequest struct {
	Name     *string `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	GoogleID *string `json:"google_id" validate:"omitempty,min=1"`
}

func (req createUserRequest) toModel() *db.User {
	return &db.User{Name: *req.Name, Email: normalizeEmail(req.Email), GoogleID: req.GoogleID}
}

// normalizeEmail lowercases the domain. The local part is kept as typed since
// mailbox names may be case sensitive.
func normalizeEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

type createWorkoutRequest struct {
	UserID      *uint               `json:"user_id" validate:"required"`
	Type        *string             `json:"type" validate:"required"`
	DurationMin *int                `json:"duration_min" validate:"required"`
	DistanceKm  decimal.NullDecimal `json:"distance_km"`
	AvgPace     decimal.NullDecimal `json:"avg_pace"`
	Date        *db.Date            `json:"date" validate:"required"`
	IsStarred   bool                `json:"is_starred"`
}

func (req createWorkoutRequest) toModel() *db.Workout {
	return &db.Workout{
		UserID:      *req.UserID,
		Type:        *req.Type,
		DurationMin: *req.DurationMin,
		DistanceKm:  req.DistanceKm,
		AvgPace:     req.AvgPace,
		Date:        *req.Date,
		IsStarred:   req.IsStarred,
	}
}

type createExerciseRequest struct {
	WorkoutID *uint            `json:"workout_id" validate:"required"`
	Name      *string          `json:"name" validate:"required"`
	Sets      *int             `json:"sets" validate:"required"`
	Reps      *int             `json:"reps" validate:"required"`
	Weight    *decimal.Decimal `json:"weight" validate:"required"`
}

func (req createExerciseRequest) toModel() *db.Exercise {
	return &db.Exercise{
		WorkoutID: *req.WorkoutID,
		Name:      *req.Name,
		Sets:      *req.Sets,
		Reps:      *req.Reps,
		Weight:    *req.Weight,
	}
}

type createMealRequest struct {
	UserID   *uint            `json:"user_id" validate:"required"`
	Name     *string          `json:"name" validate:"required"`
	Calories *int             `json:"calories" validate:"required"`
	Protein  *decimal.Decimal `json:"protein" validate:"required"`
	Carbs    *decimal.Decimal `json:"carbs" validate:"required"`
	Fat      *decimal.Decimal `json:"fat" validate:"required"`
	Date     *db.Date         `json:"date" validate:"required"`
}

func (req createMealRequest) toModel() *db.Meal {
	return &db.Meal{
		UserID:   *req.UserID,
		Name:     *req.Name,
		Calories: *req.Calories,
		Protein:  *req.Protein,
		Carbs:    *req.Carbs,
		Fat:      *req.Fat,
		Date:     *req.Date,
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decode reads a JSON body into dst and validates it. On failure the response
// has already been written and false is returned.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+decodeMessage(err))
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		writeError(w, http.StatusUnprocessableEntity, validationMessage(err))
		return false
	}
	return true
}

func decodeMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type)
	}
	return err.Error()
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "email":
			msgs = append(msgs, fe.Field()+" must be a valid email address")
		case "min":
			msgs = append(msgs, fe.Field()+" must not be empty")
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

func parseID(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return uint(id), nil
}

// parseFilter returns nil when the parameter is absent. A present value,
// including 0, always filters.
func parseFilter(r *http.Request, name string) (*uint, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 0)
	if err != nil {
		return nil, fmt.Errorf("%s must be a non-negative integer", name)
	}
	id := uint(v)
	return &id, nil
}

// parsePage reads offset (or its alias skip) and limit, defaulting to 0/100.
func parsePage(r *http.Request) (db.Page, error) {
	page := db.DefaultPage()
	q := r.URL.Query()

	offsetKey := "offset"
	if q.Get(offsetKey) == "" && q.Get("skip") != "" {
		offsetKey = "skip"
	}
	if raw := q.Get(offsetKey); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return page, fmt.Errorf("%s must be a non-negative integer", offsetKey)
		}
		page.Offset = v
	}
	if raw := q.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return page, fmt.Errorf("limit must be a non-negative integer")
		}
		page.Limit = v
	}
	return page, nil
}
