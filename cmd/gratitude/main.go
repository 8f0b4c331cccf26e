package main

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/oliverisaac/goli"
	"github.com/oliverisaac/gratitude/lib/feedback"
	"github.com/oliverisaac/gratitude/lib/journal"
	"github.com/oliverisaac/gratitude/lib/store"
	"github.com/oliverisaac/gratitude/static"
	"github.com/oliverisaac/gratitude/types"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

func init() {
	goli.InitLogrus(logrus.DebugLevel)
}

const SessionKey = "session"
const UserKey = "session-user"
const SessionUserIDKey = "userid"

func render(ctx echo.Context, status int, t templ.Component) error {
	ctx.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	ctx.Response().WriteHeader(status)

	err := t.Render(ctx.Request().Context(), ctx.Response().Writer)
	if err != nil {
		logrus.Error(err)
		return ctx.String(http.StatusInternalServerError, "failed to render response template")
	}

	return nil
}

func main() {
	err := run()
	if err != nil {
		logrus.Fatal(err)
	}
}

func run() error {
	err := godotenv.Load(".env")
	if err != nil {
		logrus.Error(errors.Wrap(err, "Failed to load .env"))
	}

	tz := os.Getenv("TZ")
	if tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return errors.Wrap(err, "failed to load timezone")
		}
		time.Local = loc
	}

	cfg, err := types.ConfigFromEnv()
	if err != nil {
		return errors.Wrap(err, "Loading config from env")
	}

	st, err := store.Open(cfg.DBPath, nil)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	generations := newFeedbackCounter(reg)

	generator := feedback.NewClient(feedback.Options{
		APIKey:      cfg.OpenAIKey,
		BaseURL:     cfg.OpenAIURL,
		Model:       cfg.OpenAIModel,
		MaxTokens:   cfg.OpenAIMaxTokens,
		Temperature: cfg.OpenAITemperature,
		Timeout:     cfg.OpenAITimeout,
		Locale:      cfg.Locale,
		Observe: func(outcome string) {
			generations.WithLabelValues(outcome).Inc()
		},
	})
	svc := journal.NewService(st, generator, feedback.Placeholder(cfg.Locale))

	if cfg.RemindersEnabled() {
		reminders, err := startReminderWorker(context.Background(), cfg, st)
		if err != nil {
			return errors.Wrap(err, "starting reminder worker")
		}
		defer reminders.Stop()
	}

	e := newServer(cfg, st, svc, reg)
	return e.Start(cfg.ListenAddr)
}

func newFeedbackCounter(reg prometheus.Registerer) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gratitude",
			Subsystem: "feedback",
			Name:      "generations_total",
			Help:      "Total number of AI feedback generations by outcome.",
		},
		[]string{"outcome"},
	)
	reg.MustRegister(c)
	return c
}

func newServer(cfg types.Config, st *store.Store, svc *journal.Service, reg *prometheus.Registry) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.StaticFS("/static", static.FS)

	origErrHandler := e.HTTPErrorHandler
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		logrus.Error(err)
		origErrHandler(err, c)
	}

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		Skipper:           middleware.DefaultSkipper,
		StackSize:         4 << 10, // 4 KB
		DisableStackAll:   false,
		DisablePrintStack: false,
		LogLevel:          log.ERROR,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logrus.Error(errors.Wrap(err, "recovered panic:"))
			for _, l := range strings.Split(string(stack), "\n") {
				logrus.Errorf("stack: %s", strings.ReplaceAll(l, "\t", "  "))
			}
			return nil
		},
		DisableErrorHandler: false,
	}))

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	e.Use(middleware.Secure())

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "id=${id}, method=${method}, uri=${uri}, status=${status}\n",
		Skipper: func(c echo.Context) bool {
			p := c.Request().URL.Path
			return p == "/healthz" || p == "/metrics"
		},
	}))

	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "gratitude",
		Registerer: reg,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	cookieStore := sessions.NewCookieStore(cfg.CookeSecret)
	e.Use(session.Middleware(cookieStore))
	e.Use(UserMiddleware(st))

	e.GET("/serviceWorker.js", func(c echo.Context) error {
		sw, err := static.FS.ReadFile("serviceWorker.js")
		if err != nil {
			return errors.Wrap(err, "reading service worker from embed fs")
		}
		return c.Blob(http.StatusOK, "application/javascript", sw)
	})

	// Pages
	e.GET("/", homePageHandler(cfg))
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg}))

	// Auth
	var limit []echo.MiddlewareFunc
	if cfg.AuthRateLimit > 0 {
		limit = append(limit, middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Store: middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.AuthRateLimit)),
		}))
	}
	e.GET("/auth/sign-in", signIn(cfg))
	e.POST("/auth/sign-in", signInWithUsernameAndPassword(st, cfg), limit...)
	if cfg.AllowSignup {
		e.GET("/auth/sign-up", signUp(cfg))
		e.POST("/auth/sign-up", signUpWithUsernameAndPassword(st, cfg), limit...)
	}
	e.POST("/auth/sign-out", signOut())

	// Students
	seal := newPreviewSeal(cfg.CookeSecret)
	students := e.Group("/journal", RequireRole(types.RoleStudent))
	students.GET("", writePage(cfg))
	students.POST("", saveEntries(cfg, svc, seal))
	students.POST("/feedback", previewFeedback(cfg, svc, seal))
	students.GET("/calendar", calendarPage(cfg, st, svc))
	students.GET("/shared", sharedPage(cfg, st))
	students.GET("/stats", statsPage(cfg, st))

	// Teachers
	teachers := e.Group("/teacher", RequireRole(types.RoleTeacher))
	teachers.GET("", teacherPage(cfg, st))
	teachers.GET("/export", exportEntries(cfg, st))

	// push
	push := e.Group("/push", RequireRole(types.RoleStudent))
	push.POST("/subscribe", saveSubscription(st))
	push.POST("/unsubscribe", removeSubscription(st))

	return e
}

func UserMiddleware(st *store.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, _ := session.Get(SessionKey, c)
			if sess != nil && sess.Values[SessionUserIDKey] != nil {
				userID, _ := sess.Values[SessionUserIDKey].(uint)
				user, err := st.UserByID(c.Request().Context(), userID)
				if err != nil {
					logrus.Warn(errors.Wrapf(err, "session user %d not found", userID))
				} else {
					c.Set(UserKey, user)
				}
			}
			return next(c)
		}
	}
}

func GetSessionUser(c echo.Context) (types.User, bool) {
	u := c.Get(UserKey)
	if u != nil {
		user := u.(types.User)
		logrus.Debugf("Found session user %s", user.Username)
		return user, true
	}
	return types.User{}, false
}

// RequireRole sends anonymous visitors to the sign-in page and refuses users
// with any other role.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := GetSessionUser(c)
			if !ok {
				return c.Redirect(http.StatusFound, "/auth/sign-in")
			}
			if user.Role != role {
				return c.String(http.StatusForbidden, "forbidden, must be "+role)
			}
			return next(c)
		}
	}
}
