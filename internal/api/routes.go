package api

import (
	"fittrack/backend/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the full API surface. The hierarchy is addressed by
// nested paths, so every route below a program carries the full ancestor
// chain in its params; the cascade handlers rebuild entity paths from them.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	programService service.ProgramService,
	cascadeService service.CascadeService,
) {
	authHandler := NewAuthHandler(authService)
	programHandler := NewProgramHandler(programService)
	cascadeHandler := NewCascadeHandler(cascadeService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		// --- Programs ---
		programs := protected.Group("/programs")
		{
			programs.POST("", programHandler.CreateProgram)
			programs.GET("", programHandler.GetPrograms)
			programs.GET("/:programId", programHandler.GetProgram)
			programs.PATCH("/:programId", programHandler.UpdateProgram)
			programs.POST("/:programId/archive", programHandler.ArchiveProgram)
			programs.GET("/:programId/delete-preview", cascadeHandler.PreviewDelete)
			programs.DELETE("/:programId", cascadeHandler.DeleteCascade)

			// --- Weeks ---
			weeks := programs.Group("/:programId/weeks")
			{
				weeks.POST("", programHandler.CreateWeek)
				weeks.GET("", programHandler.GetWeeks)
				weeks.PATCH("/:weekId", programHandler.UpdateWeek)
				weeks.POST("/:weekId/duplicate", cascadeHandler.DuplicateWeek)
				weeks.GET("/:weekId/delete-preview", cascadeHandler.PreviewDelete)
				weeks.DELETE("/:weekId", cascadeHandler.DeleteCascade)

				// --- Workouts ---
				workouts := weeks.Group("/:weekId/workouts")
				{
					workouts.POST("", programHandler.CreateWorkout)
					workouts.GET("", programHandler.GetWorkouts)
					workouts.PATCH("/:workoutId", programHandler.UpdateWorkout)
					workouts.GET("/:workoutId/delete-preview", cascadeHandler.PreviewDelete)
					workouts.DELETE("/:workoutId", cascadeHandler.DeleteCascade)

					// --- Exercises ---
					exercises := workouts.Group("/:workoutId/exercises")
					{
						exercises.POST("", programHandler.CreateExercise)
						exercises.GET("", programHandler.GetExercises)
						exercises.PATCH("/:exerciseId", programHandler.UpdateExercise)
						exercises.GET("/:exerciseId/delete-preview", cascadeHandler.PreviewDelete)
						exercises.DELETE("/:exerciseId", cascadeHandler.DeleteCascade)

						// --- Sets (leaf level, plain deletes) ---
						sets := exercises.Group("/:exerciseId/sets")
						{
							sets.POST("", programHandler.CreateSet)
							sets.GET("", programHandler.GetSets)
							sets.PATCH("/:setId", programHandler.UpdateSet)
							sets.DELETE("/:setId", programHandler.DeleteSet)
						}
					}
				}
			}
		}
	}
}
