package main

import (
	errs "errors"
	"fmt"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oliverisaac/gratitude/lib/journal"
	"github.com/oliverisaac/gratitude/lib/store"
	"github.com/oliverisaac/gratitude/types"
	"github.com/oliverisaac/gratitude/views"
	"github.com/sirupsen/logrus"
)

func studentPage(c echo.Context, cfg types.Config, tab string) types.PageData {
	user, _ := GetSessionUser(c)
	return types.NewPageData(cfg, tab).WithUser(user)
}

// submissionFromForm reads the numbered target/content/feedback fields of the
// write form. Feedback fields only count when their signature checks out.
func submissionFromForm(c echo.Context, seal previewSeal) journal.Submission {
	sub := journal.Submission{Shared: c.FormValue("shared") == "on"}
	for i := 1; i <= types.MaxEntriesPerSubmission; i++ {
		n := strconv.Itoa(i)
		previewedFor, fb := seal.open(c.FormValue("feedback" + n))
		sub.Items = append(sub.Items, journal.Item{
			Target:      c.FormValue("target" + n),
			Content:     c.FormValue("content" + n),
			Feedback:    fb,
			FeedbackFor: previewedFor,
		})
	}
	return sub
}

func formFromSubmission(sub journal.Submission, seal previewSeal) types.WriteForm {
	form := types.NewWriteForm()
	form.Shared = sub.Shared
	for i, item := range sub.Items {
		if i >= len(form.Slots) {
			break
		}
		form.Slots[i].Target = item.Target
		form.Slots[i].Content = item.Content
		form.Slots[i].Feedback = item.Feedback
		form.Slots[i].FeedbackToken = seal.seal(item)
	}
	return form
}

func writePage(cfg types.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		page := studentPage(c, cfg, views.TabWrite).WithForm(types.NewWriteForm())
		return render(c, 200, views.Write(page))
	}
}

func previewFeedback(cfg types.Config, svc *journal.Service, seal previewSeal) echo.HandlerFunc {
	return func(c echo.Context) error {
		page := studentPage(c, cfg, views.TabWrite)
		sub := submissionFromForm(c, seal)

		previewed, err := svc.Preview(c.Request().Context(), sub)
		if errs.Is(err, journal.ErrEmptySubmission) {
			form := formFromSubmission(sub, seal).WithError(errs.New(views.T(cfg.Locale, "Write something first")))
			return render(c, 422, views.Write(page.WithForm(form)))
		}
		if err != nil {
			return render(c, 422, views.Write(page.WithForm(formFromSubmission(sub, seal).WithError(err))))
		}

		return render(c, 200, views.Write(page.WithForm(formFromSubmission(previewed, seal))))
	}
}

func saveEntries(cfg types.Config, svc *journal.Service, seal previewSeal) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := GetSessionUser(c)
		if !ok {
			return fmt.Errorf("You must be logged in to write an entry")
		}
		page := studentPage(c, cfg, views.TabWrite)
		sub := submissionFromForm(c, seal)

		saved, err := svc.Save(c.Request().Context(), user, sub)
		if errs.Is(err, journal.ErrEmptySubmission) {
			form := formFromSubmission(sub, seal).WithError(errs.New(views.T(cfg.Locale, "Write something first")))
			return render(c, 422, views.Write(page.WithForm(form)))
		}
		if err != nil {
			logrus.Error(err)
			form := formFromSubmission(sub, seal).WithError(err)
			return render(c, 500, views.Write(page.WithForm(form)))
		}

		page = page.
			WithForm(types.NewWriteForm()).
			WithNotice(views.Tf(cfg.Locale, "Saved %d gratitude entries. Well done!", len(saved))).
			WithEntries(saved)
		return render(c, 200, views.Write(page))
	}
}

func calendarPage(cfg types.Config, st *store.Store, svc *journal.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, _ := GetSessionUser(c)
		ctx := c.Request().Context()
		page := studentPage(c, cfg, views.TabCalendar)

		today := svc.Today()
		selected := c.QueryParam("date")
		if _, err := time.ParseInLocation(types.DateLayout, selected, time.Local); err != nil {
			selected = today
		}

		month, err := time.ParseInLocation("2006-01", c.QueryParam("month"), time.Local)
		if err != nil {
			month, _ = time.ParseInLocation(types.DateLayout, selected, time.Local)
		}

		dates, err := st.ListDatesForStudent(ctx, user.ID)
		if err != nil {
			return err
		}
		entries, err := st.ListEntriesForStudentOnDate(ctx, user.ID, selected)
		if err != nil {
			return err
		}

		todayTime, _ := time.ParseInLocation(types.DateLayout, today, time.Local)
		page.Calendar = types.NewCalendarMonth(month, dates, selected, todayTime)
		return render(c, 200, views.Calendar(page.WithEntries(entries)))
	}
}

func sharedPage(cfg types.Config, st *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		page := studentPage(c, cfg, views.TabShared)
		entries, err := st.ListSharedEntries(c.Request().Context())
		if err != nil {
			return err
		}
		return render(c, 200, views.Shared(page.WithEntries(entries)))
	}
}

func statsPage(cfg types.Config, st *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, _ := GetSessionUser(c)
		ctx := c.Request().Context()
		page := studentPage(c, cfg, views.TabStats)

		var err error
		page.DayCount, err = st.CountDistinctDates(ctx, user.ID)
		if err != nil {
			return err
		}
		page.EntryCount, err = st.CountEntries(ctx, user.ID)
		if err != nil {
			return err
		}
		return render(c, 200, views.Stats(page))
	}
}
