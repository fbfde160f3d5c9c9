package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()
	conn, err := Connect(Config{
		Driver:   DriverSQLite,
		DSN:      filepath.Join(t.TempDir(), "fitness.db"),
		LogLevel: gormlogger.Silent,
	})
	require.NoError(t, err)

	store := NewStore(conn)
	t.Cleanup(func() { _ = store.Close() })
	return store, conn
}

func mustUser(t *testing.T, s *Store, email string) *User {
	t.Helper()
	u := &User{Name: "Ann", Email: email}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

func mustWorkout(t *testing.T, s *Store, userID uint) *Workout {
	t.Helper()
	w := &Workout{UserID: userID, Type: "lift", DurationMin: 45, Date: NewDate(2024, 1, 1)}
	require.NoError(t, s.CreateWorkout(context.Background(), w))
	return w
}

func mustExercise(t *testing.T, s *Store, workoutID uint) *Exercise {
	t.Helper()
	e := &Exercise{WorkoutID: workoutID, Name: "squat", Sets: 5, Reps: 5, Weight: decimal.RequireFromString("100.5")}
	require.NoError(t, s.CreateExercise(context.Background(), e))
	return e
}

func mustMeal(t *testing.T, s *Store, userID uint) *Meal {
	t.Helper()
	m := &Meal{
		UserID:   userID,
		Name:     "oats",
		Calories: 350,
		Protein:  decimal.RequireFromString("12.5"),
		Carbs:    decimal.RequireFromString("60"),
		Fat:      decimal.RequireFromString("6.25"),
		Date:     NewDate(2024, 1, 1),
	}
	require.NoError(t, s.CreateMeal(context.Background(), m))
	return m
}

func countRows(t *testing.T, conn *gorm.DB, model any, where string, args ...any) int64 {
	t.Helper()
	var n int64
	q := conn.Model(model)
	if where != "" {
		q = q.Where(where, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}

func TestCreateUserAssignsGeneratedFields(t *testing.T) {
	s, _ := newTestStore(t)

	u := mustUser(t, s, "ann@x.com")
	assert.Equal(t, uint(1), u.ID)
	assert.False(t, u.CreatedAt.IsZero())
	assert.Nil(t, u.GoogleID)

	got, err := s.GetUser(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", got.Email)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s, conn := newTestStore(t)
	ctx := context.Background()

	first := mustUser(t, s, "ann@x.com")

	err := s.CreateUser(ctx, &User{Name: "Other Ann", Email: "ann@x.com"})
	require.ErrorIs(t, err, ErrDuplicateEmail)

	assert.Equal(t, int64(1), countRows(t, conn, &User{}, ""))
	got, err := s.GetUser(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.Name)
}

func TestCreateUserDuplicateGoogleID(t *testing.T) {
	s, conn := newTestStore(t)
	ctx := context.Background()
	gid := "google-123"

	require.NoError(t, s.CreateUser(ctx, &User{Name: "Ann", Email: "ann@x.com", GoogleID: &gid}))
	err := s.CreateUser(ctx, &User{Name: "Bob", Email: "bob@x.com", GoogleID: &gid})
	require.ErrorIs(t, err, ErrDuplicateGoogleID)

	// Users without a linked account never collide.
	mustUser(t, s, "cat@x.com")
	mustUser(t, s, "dan@x.com")
	assert.Equal(t, int64(3), countRows(t, conn, &User{}, ""))
}

func TestUniqueEmailEnforcedByEngine(t *testing.T) {
	_, conn := newTestStore(t)

	require.NoError(t, conn.Create(&User{Name: "Ann", Email: "ann@x.com"}).Error)
	err := conn.Create(&User{Name: "Ann", Email: "ann@x.com"}).Error
	require.Error(t, err)
	assert.ErrorIs(t, translate(err), ErrDuplicateEmail)
}

func TestCreateWorkoutDefaults(t *testing.T) {
	s, _ := newTestStore(t)
	u := mustUser(t, s, "ann@x.com")

	w := &Workout{UserID: u.ID, Type: "run", DurationMin: 30, Date: NewDate(2024, 1, 1)}
	require.NoError(t, s.CreateWorkout(context.Background(), w))

	assert.NotZero(t, w.ID)
	assert.False(t, w.IsStarred)
	assert.False(t, w.DistanceKm.Valid)
	assert.False(t, w.AvgPace.Valid)
	assert.Equal(t, "2024-01-01", w.Date.String())
}

func TestCreateWithMissingParent(t *testing.T) {
	s, conn := newTestStore(t)
	ctx := context.Background()

	err := s.CreateWorkout(ctx, &Workout{UserID: 42, Type: "run", DurationMin: 30, Date: NewDate(2024, 1, 1)})
	require.ErrorIs(t, err, ErrParentNotFound)

	err = s.CreateExercise(ctx, &Exercise{WorkoutID: 42, Name: "pushup", Sets: 3, Reps: 10})
	require.ErrorIs(t, err, ErrParentNotFound)

	err = s.CreateMeal(ctx, &Meal{UserID: 42, Name: "oats", Date: NewDate(2024, 1, 1)})
	require.ErrorIs(t, err, ErrParentNotFound)

	assert.Zero(t, countRows(t, conn, &Workout{}, ""))
	assert.Zero(t, countRows(t, conn, &Exercise{}, ""))
	assert.Zero(t, countRows(t, conn, &Meal{}, ""))
}

func TestForeignKeyEnforcedByEngine(t *testing.T) {
	_, conn := newTestStore(t)

	err := conn.Create(&Workout{UserID: 7, Type: "run", DurationMin: 10, Date: NewDate(2024, 1, 1)}).Error
	require.Error(t, err)
	assert.ErrorIs(t, translate(err), ErrParentNotFound)
}

func TestDeleteUserCascades(t *testing.T) {
	s, conn := newTestStore(t)
	ctx := context.Background()

	ann := mustUser(t, s, "ann@x.com")
	bob := mustUser(t, s, "bob@x.com")

	for i := 0; i < 2; i++ {
		w := mustWorkout(t, s, ann.ID)
		mustExercise(t, s, w.ID)
		mustExercise(t, s, w.ID)
		mustMeal(t, s, ann.ID)
	}
	bobWorkout := mustWorkout(t, s, bob.ID)
	bobExercise := mustExercise(t, s, bobWorkout.ID)
	bobMeal := mustMeal(t, s, bob.ID)

	require.NoError(t, s.DeleteUser(ctx, ann.ID))

	_, err := s.GetUser(ctx, ann.ID)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, countRows(t, conn, &Workout{}, "user_id = ?", ann.ID))
	assert.Zero(t, countRows(t, conn, &Meal{}, "user_id = ?", ann.ID))
	assert.Zero(t, countRows(t, conn, &Exercise{}, "workout_id NOT IN (SELECT id FROM workouts)"))

	// Bob's data is untouched.
	assert.Equal(t, int64(1), countRows(t, conn, &Workout{}, ""))
	assert.Equal(t, int64(1), countRows(t, conn, &Exercise{}, ""))
	assert.Equal(t, int64(1), countRows(t, conn, &Meal{}, ""))
	_, err = s.GetExercise(ctx, bobExercise.ID)
	require.NoError(t, err)
	_, err = s.GetMeal(ctx, bobMeal.ID)
	require.NoError(t, err)
}

func TestCascadeHoldsForDirectDeletes(t *testing.T) {
	s, conn := newTestStore(t)

	u := mustUser(t, s, "ann@x.com")
	w := mustWorkout(t, s, u.ID)
	mustExercise(t, s, w.ID)
	mustMeal(t, s, u.ID)

	require.NoError(t, conn.Exec("DELETE FROM users WHERE id = ?", u.ID).Error)

	assert.Zero(t, countRows(t, conn, &Workout{}, ""))
	assert.Zero(t, countRows(t, conn, &Exercise{}, ""))
	assert.Zero(t, countRows(t, conn, &Meal{}, ""))
}

func TestDeleteWorkoutCascadesExercises(t *testing.T) {
	s, conn := newTestStore(t)
	ctx := context.Background()

	u := mustUser(t, s, "ann@x.com")
	w := mustWorkout(t, s, u.ID)
	keep := mustWorkout(t, s, u.ID)
	e := mustExercise(t, s, w.ID)
	mustExercise(t, s, keep.ID)

	require.NoError(t, s.DeleteWorkout(ctx, w.ID))

	_, err := s.GetExercise(ctx, e.ID)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int64(1), countRows(t, conn, &Exercise{}, ""))
	_, err = s.GetUser(ctx, u.ID)
	require.NoError(t, err)
}

func TestDeleteMissingRows(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.ErrorIs(t, s.DeleteUser(ctx, 1), ErrNotFound)
	require.ErrorIs(t, s.DeleteWorkout(ctx, 1), ErrNotFound)
	require.ErrorIs(t, s.DeleteExercise(ctx, 1), ErrNotFound)
	require.ErrorIs(t, s.DeleteMeal(ctx, 1), ErrNotFound)
}

func TestGetMissingRows(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.GetUser(ctx, 9)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetWorkout(ctx, 9)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetMeal(ctx, 9)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateWorkoutChangesOnlySuppliedFields(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	u := mustUser(t, s, "ann@x.com")
	w := &Workout{
		UserID:      u.ID,
		Type:        "run",
		DurationMin: 30,
		DistanceKm:  decimal.NewNullDecimal(decimal.RequireFromString("5.2")),
		Date:        NewDate(2024, 1, 1),
	}
	require.NoError(t, s.CreateWorkout(ctx, w))

	updated, err := s.UpdateWorkout(ctx, w.ID, WorkoutPatch{
		DurationMin: Some(42),
		IsStarred:   Some(true),
	})
	require.NoError(t, err)
	assert.Equal(t, 42, updated.DurationMin)
	assert.True(t, updated.IsStarred)

	got, err := s.GetWorkout(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "run", got.Type)
	assert.Equal(t, 42, got.DurationMin)
	assert.True(t, got.IsStarred)
	assert.Equal(t, "2024-01-01", got.Date.String())
	require.True(t, got.DistanceKm.Valid)
	assert.True(t, got.DistanceKm.Decimal.Equal(decimal.RequireFromString("5.2")))
	assert.False(t, got.AvgPace.Valid)
	assert.Equal(t, u.ID, got.UserID)
}

func TestUpdateWorkoutClearsOptionalField(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	u := mustUser(t, s, "ann@x.com")
	w := &Workout{
		UserID:      u.ID,
		Type:        "run",
		DurationMin: 30,
		AvgPace:     decimal.NewNullDecimal(decimal.RequireFromString("5.5")),
		Date:        NewDate(2024, 1, 1),
	}
	require.NoError(t, s.CreateWorkout(ctx, w))

	updated, err := s.UpdateWorkout(ctx, w.ID, WorkoutPatch{
		AvgPace: Null[decimal.Decimal](),
		Date:    Some(NewDate(2024, 2, 29)),
	})
	require.NoError(t, err)
	assert.False(t, updated.AvgPace.Valid)
	assert.Equal(t, "2024-02-29", updated.Date.String())
	assert.Equal(t, 30, updated.DurationMin)
}

func TestUpdateWorkoutEmptyPatch(t *testing.T) {
	s, _ := newTestStore(t)
	u := mustUser(t, s, "ann@x.com")
	w := mustWorkout(t, s, u.ID)

	got, err := s.UpdateWorkout(context.Background(), w.ID, WorkoutPatch{})
	require.NoError(t, err)
	assert.Equal(t, w.Type, got.Type)
	assert.Equal(t, w.DurationMin, got.DurationMin)
}

func TestUpdateWorkoutRejectsNullRequiredField(t *testing.T) {
	s, _ := newTestStore(t)
	u := mustUser(t, s, "ann@x.com")
	w := mustWorkout(t, s, u.ID)

	_, err := s.UpdateWorkout(context.Background(), w.ID, WorkoutPatch{Type: Null[string]()})
	require.ErrorIs(t, err, ErrInvalidPatch)
}

func TestUpdateWorkoutNotFound(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.UpdateWorkout(context.Background(), 99, WorkoutPatch{DurationMin: Some(1)})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListFiltersByParent(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	ann := mustUser(t, s, "ann@x.com")
	bob := mustUser(t, s, "bob@x.com")
	aw := mustWorkout(t, s, ann.ID)
	bw := mustWorkout(t, s, bob.ID)
	mustWorkout(t, s, ann.ID)
	mustExercise(t, s, aw.ID)
	mustExercise(t, s, bw.ID)
	mustMeal(t, s, bob.ID)

	workouts, err := s.ListWorkouts(ctx, &ann.ID, DefaultPage())
	require.NoError(t, err)
	require.Len(t, workouts, 2)
	for _, w := range workouts {
		assert.Equal(t, ann.ID, w.UserID)
	}

	all, err := s.ListWorkouts(ctx, nil, DefaultPage())
	require.NoError(t, err)
	assert.Len(t, all, 3)

	exercises, err := s.ListExercises(ctx, &bw.ID, DefaultPage())
	require.NoError(t, err)
	require.Len(t, exercises, 1)
	assert.Equal(t, bw.ID, exercises[0].WorkoutID)

	meals, err := s.ListMeals(ctx, &ann.ID, DefaultPage())
	require.NoError(t, err)
	assert.Empty(t, meals)
	assert.NotNil(t, meals)

	zero := uint(0)
	none, err := s.ListWorkouts(ctx, &zero, DefaultPage())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListPagination(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	emails := []string{"a@x.com", "b@x.com", "c@x.com", "d@x.com", "e@x.com"}
	for _, e := range emails {
		mustUser(t, s, e)
	}

	page, err := s.ListUsers(ctx, Page{Offset: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "b@x.com", page[0].Email)
	assert.Equal(t, "c@x.com", page[1].Email)

	tail, err := s.ListUsers(ctx, Page{Offset: 4, Limit: 10})
	require.NoError(t, err)
	require.Len(t, tail, 1)
	assert.Equal(t, "e@x.com", tail[0].Email)

	beyond, err := s.ListUsers(ctx, Page{Offset: 50, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, beyond)

	none, err := s.ListUsers(ctx, Page{Offset: 0, Limit: 0})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPing(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.Ping(context.Background()))
}
