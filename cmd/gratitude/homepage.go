package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oliverisaac/gratitude/types"
	"github.com/oliverisaac/gratitude/views"
	"github.com/sirupsen/logrus"
)

func homePageHandler(cfg types.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := GetSessionUser(c)
		if !ok {
			logrus.Debug("Generating anonymous homepage")
			return render(c, 200, views.SignInForm(types.NewPageData(cfg, views.TabSignIn)))
		}

		logrus.Infof("Generating homepage for user %s", user.Username)
		if user.IsTeacher() {
			return c.Redirect(http.StatusFound, "/teacher")
		}
		return c.Redirect(http.StatusFound, "/journal")
	}
}
