package types

import (
	errs "errors"
	"fmt"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/oliverisaac/goli"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Hostname    string
	ListenAddr  string
	AllowSignup bool
	CookeSecret []byte
	DBPath      string
	Locale      string

	OpenAIKey         string
	OpenAIURL         string
	OpenAIModel       string
	OpenAIMaxTokens   int
	OpenAITemperature float64
	OpenAITimeout     time.Duration

	VapidPublicKey   string
	VapidPrivateKey  string
	ReminderSchedule string

	AuthRateLimit float64
}

// RemindersEnabled reports whether both VAPID keys are present.
func (c Config) RemindersEnabled() bool {
	return c.VapidPublicKey != "" && c.VapidPrivateKey != ""
}

func ConfigFromEnv() (Config, error) {
	ret := Config{}
	var retErr error
	var err error

	ret.AllowSignup, err = strconv.ParseBool(goli.DefaultEnv("GRATITUDE_ALLOW_SIGNUP", "true"))
	if err != nil {
		retErr = errs.Join(retErr, errors.Wrap(err, "parsing GRATITUDE_ALLOW_SIGNUP"))
	}

	cookieSecret, ok := os.LookupEnv("GRATITUDE_COOKIE_STORE_SECRET")
	if !ok {
		retErr = errs.Join(retErr, fmt.Errorf("You must define env GRATITUDE_COOKIE_STORE_SECRET"))
	} else {
		ret.CookeSecret = []byte(cookieSecret)
	}

	ret.DBPath, ok = os.LookupEnv("GRATITUDE_DB_PATH")
	if !ok {
		retErr = errs.Join(retErr, fmt.Errorf("You must define env GRATITUDE_DB_PATH"))
	} else if _, err := os.Stat(path.Dir(ret.DBPath)); err != nil {
		retErr = errs.Join(retErr, errors.Wrap(err, "Directory for GRATITUDE_DB_PATH must exist"))
	}

	ret.Locale = goli.DefaultEnv("GRATITUDE_LOCALE", "en")
	if ret.Locale != "en" && ret.Locale != "ko" {
		retErr = errs.Join(retErr, fmt.Errorf("GRATITUDE_LOCALE must be en or ko, got %q", ret.Locale))
	}

	ret.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	if ret.OpenAIKey == "" {
		logrus.Warn("OPENAI_API_KEY is not set, AI feedback will be unavailable")
	}
	ret.OpenAIURL = goli.DefaultEnv("GRATITUDE_OPENAI_URL", "https://api.openai.com/v1")
	ret.OpenAIModel = goli.DefaultEnv("GRATITUDE_OPENAI_MODEL", "gpt-4o")

	ret.OpenAIMaxTokens, err = strconv.Atoi(goli.DefaultEnv("GRATITUDE_OPENAI_MAX_TOKENS", "100"))
	if err != nil {
		retErr = errs.Join(retErr, errors.Wrap(err, "parsing GRATITUDE_OPENAI_MAX_TOKENS"))
	}

	ret.OpenAITemperature, err = strconv.ParseFloat(goli.DefaultEnv("GRATITUDE_OPENAI_TEMPERATURE", "0.7"), 64)
	if err != nil {
		retErr = errs.Join(retErr, errors.Wrap(err, "parsing GRATITUDE_OPENAI_TEMPERATURE"))
	}

	ret.OpenAITimeout, err = time.ParseDuration(goli.DefaultEnv("GRATITUDE_OPENAI_TIMEOUT", "30s"))
	if err != nil {
		retErr = errs.Join(retErr, errors.Wrap(err, "parsing GRATITUDE_OPENAI_TIMEOUT"))
	}

	ret.VapidPrivateKey = os.Getenv("VAPID_PRIVATE_KEY")
	ret.VapidPublicKey = os.Getenv("VAPID_PUBLIC_KEY")
	if !ret.RemindersEnabled() {
		logrus.Info("VAPID keys not set, daily reminders are disabled")
	}
	ret.ReminderSchedule = goli.DefaultEnv("GRATITUDE_REMINDER_SCHEDULE", "0 21 * * *")

	ret.AuthRateLimit, err = strconv.ParseFloat(goli.DefaultEnv("GRATITUDE_AUTH_RATE_LIMIT", "5"), 64)
	if err != nil {
		retErr = errs.Join(retErr, errors.Wrap(err, "parsing GRATITUDE_AUTH_RATE_LIMIT"))
	}

	ret.Hostname = goli.DefaultEnv("GRATITUDE_HOSTNAME", "localhost")
	ret.ListenAddr = goli.DefaultEnv("GRATITUDE_LISTEN_ADDR", ":8080")

	return ret, retErr
}
