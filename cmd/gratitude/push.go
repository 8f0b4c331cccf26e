package main

import (
	"context"
	"encoding/json"
	errs "errors"
	"fmt"
	"io"
	"net/http"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/labstack/echo/v4"
	"github.com/oliverisaac/gratitude/lib/store"
	"github.com/oliverisaac/gratitude/types"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

type pushSender func(message []byte, s *webpush.Subscription, options *webpush.Options) (*http.Response, error)

type reminder struct {
	cfg  types.Config
	st   *store.Store
	send pushSender
	now  func() time.Time
}

func startReminderWorker(ctx context.Context, cfg types.Config, st *store.Store) (*cron.Cron, error) {
	r := reminder{cfg: cfg, st: st, send: webpush.SendNotification, now: time.Now}

	c := cron.New(cron.WithLocation(time.Local))
	_, err := c.AddFunc(cfg.ReminderSchedule, func() {
		sent, err := r.remindAll(ctx)
		if err != nil {
			logrus.Error(errors.Wrap(err, "sending reminders"))
		}
		logrus.Infof("Sent %d journal reminders", sent)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "parsing reminder schedule %q", cfg.ReminderSchedule)
	}
	c.Start()
	logrus.Infof("Reminder worker scheduled with %q", cfg.ReminderSchedule)
	return c, nil
}

// remindAll notifies every subscribed student who has not written today. It
// returns the number of students notified.
func (r reminder) remindAll(ctx context.Context) (int, error) {
	logrus.Info("Triggering journal reminders for all students")
	students, err := r.st.Students(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "getting all students")
	}

	today := r.now().Format(types.DateLayout)
	sent := 0
	var retErr error
	for _, user := range students {
		if len(user.PushSubscriptions) == 0 {
			continue
		}
		written, err := r.st.HasEntryOn(ctx, user.ID, today)
		if err != nil {
			retErr = errs.Join(retErr, err)
			continue
		}
		if written {
			continue
		}
		if err := r.remindUser(ctx, user); err != nil {
			retErr = errs.Join(retErr, errors.Wrapf(err, "reminding %s", user.Username))
			continue
		}
		sent++
	}
	return sent, retErr
}

func (r reminder) remindUser(ctx context.Context, user types.User) error {
	logrus := logrus.WithField("user", user.Username)
	var retErr error
	for _, subData := range user.PushSubscriptions {
		logrus := logrus.WithField("subdata", subData.ID)
		sub := &webpush.Subscription{
			Endpoint: subData.Endpoint,
			Keys: webpush.Keys{
				P256dh: subData.P256DH,
				Auth:   subData.Auth,
			},
		}

		pushPayload, err := json.Marshal(map[string]interface{}{
			"title": "Gratitude Journal",
			"body":  "What are you grateful for today?",
			"data": map[string]string{
				"url": fmt.Sprintf("https://%s/journal", r.cfg.Hostname),
			},
		})
		if err != nil {
			return errors.Wrap(err, "marshalling push payload")
		}

		logrus.Debugf("sending push notification: %s", string(pushPayload))
		resp, err := r.send(pushPayload, sub, &webpush.Options{
			Topic:           "gratitude-daily-reminder",
			VAPIDPublicKey:  r.cfg.VapidPublicKey,
			VAPIDPrivateKey: r.cfg.VapidPrivateKey,
			TTL:             12 * 3600,
			Urgency:         webpush.UrgencyNormal,
		})
		if err != nil {
			retErr = errs.Join(retErr, errors.Wrap(err, "sending push notification"))
			continue
		}
		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusGone {
			logrus.Info("Subscriber no longer active")
			if err := r.st.DeleteSubscription(ctx, subData); err != nil {
				retErr = errs.Join(retErr, err)
			}
			continue
		}
		if resp.StatusCode != http.StatusCreated {
			retErr = errs.Join(retErr, fmt.Errorf("Got status code %d: %s", resp.StatusCode, string(respBody)))
			continue
		}

		logrus.Info("Sent push notification to user")
	}
	return retErr
}

func removeSubscription(st *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, _ := GetSessionUser(c)

		if err := st.RemoveSubscriptions(c.Request().Context(), user.ID); err != nil {
			return err
		}

		return c.String(http.StatusOK, "subscription removed")
	}
}

func saveSubscription(st *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, _ := GetSessionUser(c)

		var sub webpush.Subscription
		if err := c.Bind(&sub); err != nil {
			return errors.Wrap(err, "binding subscription")
		}
		if sub.Endpoint == "" {
			return c.String(http.StatusBadRequest, "missing endpoint")
		}

		keys, err := json.Marshal(sub.Keys)
		if err != nil {
			return errors.Wrap(err, "marshalling subscription keys")
		}

		pushSubscription := types.PushSubscription{
			UserID:   user.ID,
			Endpoint: sub.Endpoint,
			P256DH:   sub.Keys.P256dh,
			Auth:     sub.Keys.Auth,
			Keys:     string(keys),
		}

		if err := st.SaveSubscription(c.Request().Context(), &pushSubscription); err != nil {
			return err
		}

		return c.String(http.StatusOK, "subscription saved")
	}
}
