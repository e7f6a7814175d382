// internal/api/program_handler.go
package api

import (
	"fittrack/backend/internal/domain"
	"fittrack/backend/internal/service"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ProgramHandler serves the CRUD surface of the hierarchy:
// programs, weeks, workouts, exercises, and sets.
type ProgramHandler struct {
	programService service.ProgramService
}

// NewProgramHandler creates a new ProgramHandler.
func NewProgramHandler(programService service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programService: programService}
}

// --- Request DTOs ---
// Update requests use pointer fields: absent fields stay untouched, which is
// what makes every update a field-level partial update.

type CreateProgramRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

type UpdateProgramRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type ArchiveProgramRequest struct {
	Archived bool `json:"archived"`
}

type CreateWeekRequest struct {
	Name  string  `json:"name" binding:"required"`
	Order int     `json:"order"`
	Notes *string `json:"notes"`
}

type UpdateWeekRequest struct {
	Name  *string `json:"name"`
	Order *int    `json:"order"`
	Notes *string `json:"notes"`
}

type CreateWorkoutRequest struct {
	Name       string  `json:"name" binding:"required"`
	DayOfWeek  *int    `json:"dayOfWeek" binding:"omitempty,min=1,max=7"`
	OrderIndex int     `json:"orderIndex"`
	Notes      *string `json:"notes"`
}

type UpdateWorkoutRequest struct {
	Name       *string `json:"name"`
	DayOfWeek  *int    `json:"dayOfWeek" binding:"omitempty,min=1,max=7"`
	OrderIndex *int    `json:"orderIndex"`
	Notes      *string `json:"notes"`
}

type CreateExerciseRequest struct {
	Name         string              `json:"name" binding:"required"`
	ExerciseType domain.ExerciseType `json:"exerciseType" binding:"required,oneof=strength cardio timeBased bodyweight custom"`
	OrderIndex   int                 `json:"orderIndex"`
	Notes        *string             `json:"notes"`
}

type UpdateExerciseRequest struct {
	Name         *string              `json:"name"`
	ExerciseType *domain.ExerciseType `json:"exerciseType" binding:"omitempty,oneof=strength cardio timeBased bodyweight custom"`
	OrderIndex   *int                 `json:"orderIndex"`
	Notes        *string              `json:"notes"`
}

type CreateSetRequest struct {
	SetNumber int      `json:"setNumber" binding:"required,min=1"`
	Reps      *int     `json:"reps"`
	Weight    *float64 `json:"weight"`
	Duration  *int     `json:"duration"`
	Distance  *float64 `json:"distance"`
	RestTime  *int     `json:"restTime"`
	Notes     *string  `json:"notes"`
}

type UpdateSetRequest struct {
	SetNumber *int     `json:"setNumber" binding:"omitempty,min=1"`
	Reps      *int     `json:"reps"`
	Weight    *float64 `json:"weight"`
	Duration  *int     `json:"duration"`
	Distance  *float64 `json:"distance"`
	RestTime  *int     `json:"restTime"`
	Checked   *bool    `json:"checked"`
	Notes     *string  `json:"notes"`
}

// === Programs ===

// CreateProgram handles POST /programs
func (h *ProgramHandler) CreateProgram(c *gin.Context) {
	var req CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithCode(c, http.StatusBadRequest, CodeInvalidArgument, fmt.Sprintf("Validation error: %v", err))
		return
	}
	ownerID, err := getOwnerID(c)
	if err != nil {
		abortWithCode(c, http.StatusUnauthorized, CodeUnauthenticated, "Unable to identify caller from token")
		return
	}

	program, err := h.programService.CreateProgram(c.Request.Context(), ownerID, service.CreateProgramInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, program)
}

// GetPrograms handles GET /programs?includeArchived=true
func (h *ProgramHandler) GetPrograms(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		abortWithCode(c, http.StatusUnauthorized, CodeUnauthenticated, "Unable to identify caller from token")
		return
	}
	includeArchived := c.Query("includeArchived") == "true"

	programs, err := h.programService.GetPrograms(c.Request.Context(), ownerID, includeArchived)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if programs == nil {
		programs = []domain.Program{} // Return empty JSON array, not null
	}
	c.JSON(http.StatusOK, programs)
}

// GetProgram handles GET /programs/:programId
func (h *ProgramHandler) GetProgram(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		abortWithCode(c, http.StatusUnauthorized, CodeUnauthenticated, "Unable to identify caller from token")
		return
	}
	programID, ok := pathParamID(c, "programId")
	if !ok {
		return
	}

	program, err := h.programService.GetProgram(c.Request.Context(), ownerID, programID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, program)
}

// UpdateProgram handles PATCH /programs/:programId
func (h *ProgramHandler) UpdateProgram(c *gin.Context) {
	var req UpdateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithCode(c, http.StatusBadRequest, CodeInvalidArgument, fmt.Sprintf("Validation error: %v", err))
		return
	}
	ownerID, err := getOwnerID(c)
	if err != nil {
		abortWithCode(c, http.StatusUnauthorized, CodeUnauthenticated, "Unable to identify caller from token")
		return
	}
	programID, ok := pathParamID(c, "programId")
	if !ok {
		return
	}

	program, err := h.programService.UpdateProgram(c.Request.Context(), ownerID, programID, service.UpdateProgramInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, program)
}

// ArchiveProgram handles POST /programs/:programId/archive
func (h *ProgramHandler) ArchiveProgram(c *gin.Context) {
	var req ArchiveProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithCode(c, http.StatusBadRequest, CodeInvalidArgument, fmt.Sprintf("Validation error: %v", err))
		return
	}
	ownerID, err := getOwnerID(c)
	if err != nil {
		abortWithCode(c, http.StatusUnauthorized, CodeUnauthenticated, "Unable to identify caller from token")
		return
	}
	programID, ok := pathParamID(c, "programId")
	if !ok {
		return
	}

	if err := h.programService.SetProgramArchived(c.Request.Context(), ownerID, programID, req.Archived); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"archived": req.Archived})
}

// === Weeks ===

// CreateWeek handles POST /programs/:programId/weeks
func (h *ProgramHandler) CreateWeek(c *gin.Context) {
	var req CreateWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithCode(c, http.StatusBadRequest, CodeInvalidArgument, fmt.Sprintf("Validation error: %v", err))
		return
	}
	ownerID, err := getOwnerID(c)
	if err != nil {
		abortWithCode(c, http.StatusUnauthorized, CodeUnauthenticated, "Unable to identify caller from token")
		return
	}
	programID, ok := pathParamID(c, "programId")
	if !ok {
		return
	}

	week, err := h.programService.CreateWeek(c.Request.Context(), ownerID, programID, service.CreateWeekInput{
		Name:  req.Name,
		Order: req.Order,
		Notes: req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, week)
}

// GetWeeks handles GET /programs/:programId/weeks
func (h *ProgramHandler) GetWeeks(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		abortWithCode(c, http.StatusUnauthorized, CodeUnauthenticated, "Unable to identify caller from token")
		return
	}
	programID, ok := pathParamID(c, "programId")
	if !ok {
		return
	}

	weeks, err := h.programService.GetWeeks(c.Request.Context(), ownerID, programID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if weeks == nil {
		weeks = []domain.Week{}
	}
	c.JSON(http.StatusOK, weeks)
}

// UpdateWeek handles PATCH /programs/:programId/weeks/:weekId
func (h *ProgramHandler) UpdateWeek(c *gin.Context) {
	var req UpdateWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithCode(c, http.StatusBadRequest, CodeInvalidArgument, fmt.Sprintf("Validation error: %v", err))
		return
	}
	ownerID, err := getOwnerID(c)
	if err != nil {
		abortWithCode(c, http.StatusUnauthorized, CodeUnauthenticated, "Unable to identify caller from token")
		return
	}
	weekID, ok := pathParamID(c, "weekId")
	if !ok {
		return
	}

	week, err := h.programService.UpdateWeek(c.Request.Context(), ownerID, weekID, service.UpdateWeekInput{
		Name:  req.Name,
		Order: req.Order,
		Notes: req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, week)
}

// === Workouts ===

// CreateWorkout handles POST .../weeks/:weekId/workouts
func (h *ProgramHandler) CreateWorkout(c *gin.Context) {
	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithCode(c, http.StatusBadRequest, CodeInvalidArgument, fmt.Sprintf("Validation error: %v", err))
		return
	}
	ownerID, err := getOwnerID(c)
	if err != nil {
		abortWithCode(c, http.StatusUnauthorized, CodeUnauthenticated, "Unable to identify caller from token")
		return
	}
	weekID, ok := pathParamID(c, "weekId")
	if !ok {
		return
	}

	workout, err := h.programService.CreateWorkout(c.Request.Context(), ownerID, weekID, service.CreateWorkoutInput{
		Name:       req.Name,
		DayOfWeek:  req.DayOfWeek,
		OrderIndex: req.OrderIndex,
		Notes:      req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, workout)
}

// GetWorkouts handles GET .../weeks/:weekId/workouts
func (h *ProgramHandler) GetWorkouts(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		abortWithCode(c, http.StatusUnauthorized, CodeUnauthenticated, "Unable to identify caller from token")
		return
	}
	weekID, ok := pathParamID(c, "weekId")
	if !ok {
		return
	}

	workouts, err := h.programService.GetWorkouts(c.Request.Context(), ownerID, weekID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if workouts == nil {
		workouts = []domain.Workout{}
	}
	c.JSON(http.StatusOK, workouts)
}

// UpdateWorkout handles PATCH .../workouts/:workoutId
func (h *ProgramHandler) UpdateWorkout(c *gin.Context) {
	var req UpdateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithCode(c, http.StatusBadRequest, CodeInvalidArgument, fmt.Sprintf("Validation error: %v", err))
		return
	}
	ownerID, err := getOwnerID(c)
	if err != nil {
		abortWithCode(c, http.StatusUnauthorized, CodeUnauthenticated, "Unable to identify caller from token")
		return
	}
	workoutID, ok := pathParamID(c, "workoutId")
	if !ok {
		return
	}

	workout, err := h.programService.UpdateWorkout(c.Request.Context(), ownerID, workoutID, service.UpdateWorkoutInput{
		Name:       req.Name,
		DayOfWeek:  req.DayOfWeek,
		OrderIndex: req.OrderIndex,
		Notes:      req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

// === Exercises ===

// CreateExercise handles POST .../workouts/:workoutId/exercises
func (h *ProgramHandler) CreateExercise(c *gin.Context) {
	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithCode(c, http.StatusBadRequest, CodeInvalidArgument, fmt.Sprintf("Validation error: %v", err))
		return
	}
	ownerID, err := getOwnerID(c)
	if err != nil {
		abortWithCode(c, http.StatusUnauthorized, CodeUnauthenticated, "Unable to identify caller from token")
		return
	}
	workoutID, ok := pathParamID(c, "workoutId")
	if !ok {
		return
	}

	exercise, err := h.programService.CreateExercise(c.Request.Context(), ownerID, workoutID, service.CreateExerciseInput{
		Name:         req.Name,
		ExerciseType: req.ExerciseType,
		OrderIndex:   req.OrderIndex,
		Notes:        req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, exercise)
}

// GetExercises handles GET .../workouts/:workoutId/exercises
func (h *ProgramHandler) GetExercises(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		abortWithCode(c, http.StatusUnauthorized, CodeUnauthenticated, "Unable to identify caller from token")
		return
	}
	workoutID, ok := pathParamID(c, "workoutId")
	if !ok {
		return
	}

	exercises, err := h.programService.GetExercises(c.Request.Context(), ownerID, workoutID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if exercises == nil {
		exercises = []domain.Exercise{}
	}
	c.JSON(http.StatusOK, exercises)
}

// UpdateExercise handles PATCH .../exercises/:exerciseId
func (h *ProgramHandler) UpdateExercise(c *gin.Context) {
	var req UpdateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithCode(c, http.StatusBadRequest, CodeInvalidArgument, fmt.Sprintf("Validation error: %v", err))
		return
	}
	ownerID, err := getOwnerID(c)
	if err != nil {
		abortWithCode(c, http.StatusUnauthorized, CodeUnauthenticated, "Unable to identify caller from token")
		return
	}
	exerciseID, ok := pathParamID(c, "exerciseId")
	if !ok {
		return
	}

	exercise, err := h.programService.UpdateExercise(c.Request.Context(), ownerID, exerciseID, service.UpdateExerciseInput{
		Name:         req.Name,
		ExerciseType: req.ExerciseType,
		OrderIndex:   req.OrderIndex,
		Notes:        req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, exercise)
}

// === Sets ===

// CreateSet handles POST .../exercises/:exerciseId/sets
func (h *ProgramHandler) CreateSet(c *gin.Context) {
	var req CreateSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithCode(c, http.StatusBadRequest, CodeInvalidArgument, fmt.Sprintf("Validation error: %v", err))
		return
	}
	ownerID, err := getOwnerID(c)
	if err != nil {
		abortWithCode(c, http.StatusUnauthorized, CodeUnauthenticated, "Unable to identify caller from token")
		return
	}
	exerciseID, ok := pathParamID(c, "exerciseId")
	if !ok {
		return
	}

	set, err := h.programService.CreateSet(c.Request.Context(), ownerID, exerciseID, service.CreateSetInput{
		SetNumber: req.SetNumber,
		Reps:      req.Reps,
		Weight:    req.Weight,
		Duration:  req.Duration,
		Distance:  req.Distance,
		RestTime:  req.RestTime,
		Notes:     req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, set)
}

// GetSets handles GET .../exercises/:exerciseId/sets
func (h *ProgramHandler) GetSets(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		abortWithCode(c, http.StatusUnauthorized, CodeUnauthenticated, "Unable to identify caller from token")
		return
	}
	exerciseID, ok := pathParamID(c, "exerciseId")
	if !ok {
		return
	}

	sets, err := h.programService.GetSets(c.Request.Context(), ownerID, exerciseID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if sets == nil {
		sets = []domain.Set{}
	}
	c.JSON(http.StatusOK, sets)
}

// UpdateSet handles PATCH .../sets/:setId
func (h *ProgramHandler) UpdateSet(c *gin.Context) {
	var req UpdateSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithCode(c, http.StatusBadRequest, CodeInvalidArgument, fmt.Sprintf("Validation error: %v", err))
		return
	}
	ownerID, err := getOwnerID(c)
	if err != nil {
		abortWithCode(c, http.StatusUnauthorized, CodeUnauthenticated, "Unable to identify caller from token")
		return
	}
	setID, ok := pathParamID(c, "setId")
	if !ok {
		return
	}

	set, err := h.programService.UpdateSet(c.Request.Context(), ownerID, setID, service.UpdateSetInput{
		SetNumber: req.SetNumber,
		Reps:      req.Reps,
		Weight:    req.Weight,
		Duration:  req.Duration,
		Distance:  req.Distance,
		RestTime:  req.RestTime,
		Checked:   req.Checked,
		Notes:     req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, set)
}

// DeleteSet handles DELETE .../sets/:setId, a plain leaf delete with no cascade.
func (h *ProgramHandler) DeleteSet(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		abortWithCode(c, http.StatusUnauthorized, CodeUnauthenticated, "Unable to identify caller from token")
		return
	}
	setID, ok := pathParamID(c, "setId")
	if !ok {
		return
	}

	if err := h.programService.DeleteSet(c.Request.Context(), ownerID, setID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
