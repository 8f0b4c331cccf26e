package main

import (
	errs "errors"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/oliverisaac/gratitude/lib/store"
	"github.com/oliverisaac/gratitude/types"
	"github.com/oliverisaac/gratitude/views"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func signUp(cfg types.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		return render(c, 200, views.SignUpForm(types.NewPageData(cfg, views.TabSignUp)))
	}
}

func signUpWithUsernameAndPassword(st *store.Store, cfg types.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		username := strings.TrimSpace(c.FormValue("username"))
		password := c.FormValue("password")
		role := c.FormValue("role")
		if role == "" {
			role = types.RoleStudent
		}

		page := types.NewPageData(cfg, views.TabSignUp)

		if username == "" || password == "" {
			return render(c, 422, views.SignUpForm(page.WithError(errs.New(views.T(cfg.Locale, "Username and password are required")))))
		}

		ok, err := st.Register(c.Request().Context(), username, password, role)
		if errs.Is(err, store.ErrUnknownRole) {
			return render(c, 422, views.SignUpForm(page.WithError(errs.New(views.T(cfg.Locale, "Pick either student or teacher")))))
		}
		if err != nil {
			logrus.Error(err)
			return render(c, 500, views.SignUpForm(page.WithError(errors.Wrap(err, views.T(cfg.Locale, "Internal server error")))))
		}
		if !ok {
			return render(c, 422, views.SignUpForm(page.WithError(errs.New(views.T(cfg.Locale, "That username already exists")))))
		}

		logrus.Infof("Registered %s as %s", username, role)
		page = types.NewPageData(cfg, views.TabSignIn).WithNotice(views.T(cfg.Locale, "Sign up complete. You can sign in now."))
		return render(c, 200, views.SignInForm(page))
	}
}

func signIn(cfg types.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		return render(c, 200, views.SignInForm(types.NewPageData(cfg, views.TabSignIn)))
	}
}

func signInWithUsernameAndPassword(st *store.Store, cfg types.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		username := strings.TrimSpace(c.FormValue("username"))
		password := c.FormValue("password")
		page := types.NewPageData(cfg, views.TabSignIn)

		user, ok, err := st.Authenticate(c.Request().Context(), username, password)
		if err != nil {
			logrus.Error(err)
			return render(c, 500, views.SignInForm(page.WithError(errors.Wrap(err, views.T(cfg.Locale, "Internal server error")))))
		}
		if !ok {
			return render(c, 422, views.SignInForm(page.WithError(errs.New(views.T(cfg.Locale, "Invalid username or password")))))
		}

		sess, _ := session.Get(SessionKey, c)
		sess.Options = &sessions.Options{
			Path:     "/",
			MaxAge:   3600 * 24 * 30,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		}

		sess.Values[SessionUserIDKey] = user.ID

		err = sess.Save(c.Request(), c.Response())
		if err != nil {
			return render(c, 500, views.SignInForm(page.WithError(errors.Wrap(err, views.T(cfg.Locale, "Internal server error")))))
		}

		return c.Redirect(http.StatusFound, "/")
	}
}

func signOut() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, _ := session.Get(SessionKey, c)
		sess.Options = &sessions.Options{Path: "/", MaxAge: -1}
		delete(sess.Values, SessionUserIDKey)
		err := sess.Save(c.Request(), c.Response())
		if err != nil {
			return errors.Wrap(err, "saving session")
		}

		return c.Redirect(http.StatusFound, "/")
	}
}
