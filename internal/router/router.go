package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/easycd-api/internal/handler"
	"github.com/noah-isme/easycd-api/internal/middleware"
	"github.com/noah-isme/easycd-api/internal/models"
	"github.com/noah-isme/easycd-api/internal/service"
	"github.com/noah-isme/easycd-api/pkg/ratelimit"
)

// Handlers groups every HTTP handler mounted under the API prefix.
type Handlers struct {
	Auth                      *handler.AuthHandler
	User                      *handler.UserHandler
	Person                    *handler.PersonHandler
	Course                    *handler.CourseHandler
	CurriculumGride           *handler.CurriculumGrideHandler
	Subject                   *handler.SubjectHandler
	Classroom                 *handler.ClassroomHandler
	Enrollment                *handler.EnrollmentHandler
	ComplementaryActivityType *handler.ComplementaryActivityTypeHandler
	ComplementaryActivity     *handler.ComplementaryActivityHandler
	SolicitationType          *handler.SolicitationTypeHandler
	Solicitation              *handler.SolicitationHandler
	Metrics                   *handler.MetricsHandler
}

// Deps carries the cross-cutting pieces the routes need.
type Deps struct {
	Auth         middleware.Authenticator
	LoginLimiter ratelimit.Limiter
	Metrics      *service.MetricsService
	Logger       *zap.Logger
}

type crud interface {
	List(*gin.Context)
	Get(*gin.Context)
	Create(*gin.Context)
	Update(*gin.Context)
	Delete(*gin.Context)
}

// Register mounts health, metrics and API routes on r.
func Register(r *gin.Engine, prefix string, h Handlers, deps Deps) {
	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)

	api := r.Group(prefix)
	auth := middleware.JWT(deps.Auth)
	loggedIn := middleware.RequireRoles()
	admin := middleware.RequireRoles(models.RoleAdmin)
	teacher := middleware.RequireRoles(models.RoleTeacher)
	student := middleware.RequireRoles(models.RoleStudent)

	users := api.Group("/users")
	users.POST("/auth", middleware.RateLimit(deps.LoginLimiter, "login", deps.Metrics, deps.Logger), h.Auth.Login)
	users.POST("/re-auth", h.Auth.Refresh)
	users.POST("/logout", auth, h.Auth.Logout)
	users.GET("/me", auth, h.User.Me)
	mount(users, h.User, auth, loggedIn, admin, admin)

	people := api.Group("/people")
	people.GET("/:id/transcript", auth, loggedIn, h.Person.Transcript)
	people.GET("/:id/complementary-score", auth, loggedIn, h.Person.ComplementaryScore)
	mount(people, h.Person, auth, loggedIn, admin, admin)

	mount(api.Group("/courses"), h.Course, auth, loggedIn, admin, admin)
	mount(api.Group("/curriculum-grides"), h.CurriculumGride, auth, loggedIn, admin, admin)
	mount(api.Group("/subjects"), h.Subject, auth, loggedIn, admin, admin)
	mount(api.Group("/classrooms"), h.Classroom, auth, loggedIn, admin, admin)
	mount(api.Group("/enrollments"), h.Enrollment, auth, loggedIn, teacher, teacher)
	mount(api.Group("/complementary-activity-types"), h.ComplementaryActivityType, auth, loggedIn, admin, admin)
	mount(api.Group("/solicitation-types"), h.SolicitationType, auth, loggedIn, admin, admin)

	activities := api.Group("/complementary-activities")
	activities.GET("/:id/evidence", h.ComplementaryActivity.DownloadEvidence)
	activities.GET("/:id/evidence/url", auth, loggedIn, h.ComplementaryActivity.EvidenceURL)
	activities.POST("/:id/evidence", auth, loggedIn, h.ComplementaryActivity.UploadEvidence)
	activities.PUT("/:id/review", auth, teacher, h.ComplementaryActivity.Review)
	mount(activities, h.ComplementaryActivity, auth, loggedIn, student, loggedIn)

	solicitations := api.Group("/solicitations")
	solicitations.PUT("/:id/teacher-review", auth, teacher, h.Solicitation.TeacherReview)
	solicitations.PUT("/:id/coordinator-review", auth, teacher, h.Solicitation.CoordinatorReview)
	mount(solicitations, h.Solicitation, auth, loggedIn, student, loggedIn)
}

// mount registers the five CRUD routes. Create uses create; update and delete use write.
func mount(g *gin.RouterGroup, h crud, auth, read, create, write gin.HandlerFunc) {
	g.GET("", auth, read, h.List)
	g.GET("/:id", auth, read, h.Get)
	g.POST("", auth, create, h.Create)
	g.PUT("/:id", auth, write, h.Update)
	g.DELETE("/:id", auth, write, h.Delete)
}
