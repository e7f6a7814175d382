// internal/api/cascade_handler.go
package api

import (
	"fittrack/backend/internal/domain"
	"fittrack/backend/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CascadeHandler serves the subtree operations: week duplication, delete
// previews, and cascade deletes at every level above sets.
type CascadeHandler struct {
	cascadeService service.CascadeService
}

// NewCascadeHandler creates a new CascadeHandler.
func NewCascadeHandler(cascadeService service.CascadeService) *CascadeHandler {
	return &CascadeHandler{cascadeService: cascadeService}
}

// DuplicateWeekResponse is the payload returned after a successful week
// duplication. Mapping covers every document of the subtree, source id to
// new id, both as hex strings.
type DuplicateWeekResponse struct {
	Success bool                 `json:"success"`
	WeekID  string               `json:"weekId"`
	Name    string               `json:"name"`
	Mapping domain.IDMapping     `json:"mapping"`
	Counts  domain.CascadeCounts `json:"counts"`
}

// CascadeCountsResponse wraps counts for previews and delete results.
type CascadeCountsResponse struct {
	Counts domain.CascadeCounts `json:"counts"`
	Total  int                  `json:"total"`
}

// DuplicateWeek godoc
// @Summary Duplicate a week
// @Description Copies a week and all workouts, exercises, and sets under it into the same program.
// @Tags Cascade
// @Produce json
// @Param programId path string true "Program ID"
// @Param weekId path string true "Week ID"
// @Success 201 {object} DuplicateWeekResponse "Duplication result"
// @Failure 400 {object} gin.H "Week does not belong to the program"
// @Failure 403 {object} gin.H "Caller does not own the week"
// @Failure 404 {object} gin.H "Week not found"
// @Failure 500 {object} gin.H "Internal Server Error (writes may be partially applied)"
// @Router /programs/{programId}/weeks/{weekId}/duplicate [post]
func (h *CascadeHandler) DuplicateWeek(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		abortWithCode(c, http.StatusUnauthorized, CodeUnauthenticated, "Unable to identify caller from token")
		return
	}
	programID, ok := pathParamID(c, "programId")
	if !ok {
		return
	}
	weekID, ok := pathParamID(c, "weekId")
	if !ok {
		return
	}

	result, err := h.cascadeService.DuplicateWeek(c.Request.Context(), ownerID, programID, weekID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, DuplicateWeekResponse{
		Success: true,
		WeekID:  result.WeekID.Hex(),
		Name:    result.Name,
		Mapping: result.Mapping,
		Counts:  result.Counts,
	})
}

// PreviewDelete handles GET .../delete-preview at every cascade level. It
// reports what the matching DELETE would remove, without writing anything.
func (h *CascadeHandler) PreviewDelete(c *gin.Context) {
	target, ok := h.targetFromRoute(c)
	if !ok {
		return
	}

	counts, err := h.cascadeService.PreviewDelete(c.Request.Context(), target)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, CascadeCountsResponse{Counts: counts, Total: counts.Total()})
}

// DeleteCascade handles DELETE at program/week/workout/exercise level. The
// response reports what was removed. On an internal error the delete may be
// partially applied; the client should re-fetch.
func (h *CascadeHandler) DeleteCascade(c *gin.Context) {
	target, ok := h.targetFromRoute(c)
	if !ok {
		return
	}

	counts, err := h.cascadeService.DeleteCascade(c.Request.Context(), target)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, CascadeCountsResponse{Counts: counts, Total: counts.Total()})
}

// targetFromRoute assembles the entity path from whichever id params the
// matched route carries. The deepest id present decides the target level.
func (h *CascadeHandler) targetFromRoute(c *gin.Context) (domain.EntityPath, bool) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		abortWithCode(c, http.StatusUnauthorized, CodeUnauthenticated, "Unable to identify caller from token")
		return domain.EntityPath{}, false
	}

	target := domain.EntityPath{OwnerID: ownerID}
	for _, param := range []struct {
		name string
		dst  *primitive.ObjectID
	}{
		{"programId", &target.ProgramID},
		{"weekId", &target.WeekID},
		{"workoutId", &target.WorkoutID},
		{"exerciseId", &target.ExerciseID},
	} {
		if c.Param(param.name) == "" {
			continue
		}
		id, ok := pathParamID(c, param.name)
		if !ok {
			return domain.EntityPath{}, false
		}
		*param.dst = id
	}
	return target, true
}
