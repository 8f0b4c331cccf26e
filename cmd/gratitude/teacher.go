package main

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oliverisaac/gratitude/lib/export"
	"github.com/oliverisaac/gratitude/lib/store"
	"github.com/oliverisaac/gratitude/types"
	"github.com/oliverisaac/gratitude/views"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func teacherPage(cfg types.Config, st *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, _ := GetSessionUser(c)
		ctx := c.Request().Context()
		page := types.NewPageData(cfg, views.TabTeacher).WithUser(user)

		counts, err := st.PerStudentDayCounts(ctx)
		if err != nil {
			return err
		}

		page.SelectedStudent = c.QueryParam("student")
		rows, err := st.EntriesForExport(ctx, page.SelectedStudent)
		if err != nil {
			return err
		}

		page.DayCounts = counts
		page.ExportRows = rows
		return render(c, 200, views.Teacher(page))
	}
}

func exportEntries(cfg types.Config, st *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, _ := GetSessionUser(c)
		student := c.QueryParam("student")

		rows, err := st.EntriesForExport(c.Request().Context(), student)
		if err != nil {
			return err
		}
		logrus.WithField("user", user.Username).Infof("Exporting %d rows (student filter %q)", len(rows), student)

		resp := c.Response()
		resp.Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
		resp.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", export.Filename))
		resp.WriteHeader(http.StatusOK)

		if err := export.WriteCSV(resp, rows, export.LabelsFor(cfg.Locale)); err != nil {
			return errors.Wrap(err, "writing csv export")
		}
		return nil
	}
}
